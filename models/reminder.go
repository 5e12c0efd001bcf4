// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RecurrencePattern tells how often a recurring reminder fires.
type RecurrencePattern string

const (
	RecurrenceOnce    RecurrencePattern = "once"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceYearly  RecurrencePattern = "yearly"
)

// IsValid reports whether p is one of the known patterns.
func (p RecurrencePattern) IsValid() bool {
	switch p {
	case RecurrenceOnce, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	default:
		return false
	}
}

// next returns the occurrence that follows at. Monthly and yearly steps use
// calendar arithmetic, so Jan 31 is followed by Mar 3 (or Mar 2).
func (p RecurrencePattern) next(at time.Time) (time.Time, bool) {
	switch p {
	case RecurrenceDaily:
		return at.AddDate(0, 0, 1), true
	case RecurrenceWeekly:
		return at.AddDate(0, 0, 7), true
	case RecurrenceMonthly:
		return at.AddDate(0, 1, 0), true
	case RecurrenceYearly:
		return at.AddDate(1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// Reminder is a dated note of a user, optionally pointing at one of the
// user's files.
type Reminder struct {
	ReminderID  int64  `json:"id"`
	UserID      int64  `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// RemindAt is the first (or only) occurrence, stored in UTC.
	RemindAt time.Time `json:"remind_at"`

	IsRecurring       bool              `json:"is_recurring"`
	RecurrencePattern RecurrencePattern `json:"recurrence_pattern"`

	// RecurrenceEndDate bounds a recurring reminder; nil repeats forever.
	RecurrenceEndDate *time.Time `json:"recurrence_end_date"`

	// FileID links the reminder to a file. The link is cleared when the
	// file is deleted.
	FileID *int64 `json:"file_id"`

	// IsActive is flipped by the toggle call. Inactive reminders are never
	// upcoming.
	IsActive bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NextOccurrence returns the first occurrence at or after now. It reports
// false when the reminder has no occurrence left: a one-off in the past or
// a recurring reminder whose end date has passed. IsActive is not looked at.
func (r Reminder) NextOccurrence(now time.Time) (time.Time, bool) {
	at := r.RemindAt
	if !r.IsRecurring {
		return at, !at.Before(now)
	}

	for at.Before(now) {
		var ok bool
		if at, ok = r.RecurrencePattern.next(at); !ok {
			return time.Time{}, false
		}
	}
	if r.RecurrenceEndDate != nil && at.After(*r.RecurrenceEndDate) {
		return time.Time{}, false
	}
	return at, true
}

// TableName returns the name of the database table
// associated with the Reminder model.
func (r Reminder) TableName() string {
	return "reminders"
}

// ReminderRequest is the body of reminder create and update calls. On
// update nil fields are left unchanged and a FileID of 0 unlinks the file.
type ReminderRequest struct {
	Title             *string            `json:"title,omitempty"`
	Description       *string            `json:"description,omitempty"`
	RemindAt          *time.Time         `json:"remind_at,omitempty"`
	IsRecurring       *bool              `json:"is_recurring,omitempty"`
	RecurrencePattern *RecurrencePattern `json:"recurrence_pattern,omitempty"`
	RecurrenceEndDate *time.Time         `json:"recurrence_end_date,omitempty"`
	FileID            *int64             `json:"file_id,omitempty"`
}
