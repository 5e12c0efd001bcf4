package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminder_NextOccurrence(t *testing.T) {
	at := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	endBeforeNext := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		reminder Reminder
		want     time.Time
		wantOK   bool
	}{
		{
			name:     "one-off in the future",
			reminder: Reminder{RemindAt: now.Add(time.Hour)},
			want:     now.Add(time.Hour),
			wantOK:   true,
		},
		{
			name:     "one-off exactly now",
			reminder: Reminder{RemindAt: now},
			want:     now,
			wantOK:   true,
		},
		{
			name:     "one-off in the past",
			reminder: Reminder{RemindAt: at},
		},
		{
			name:     "daily steps to today or later",
			reminder: Reminder{RemindAt: at, IsRecurring: true, RecurrencePattern: RecurrenceDaily},
			want:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "weekly",
			reminder: Reminder{RemindAt: at, IsRecurring: true, RecurrencePattern: RecurrenceWeekly},
			want:     time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "monthly normalizes short months",
			reminder: Reminder{RemindAt: at, IsRecurring: true, RecurrencePattern: RecurrenceMonthly},
			want:     time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "yearly",
			reminder: Reminder{RemindAt: at, IsRecurring: true, RecurrencePattern: RecurrenceYearly},
			want:     time.Date(2027, 1, 31, 9, 0, 0, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "end date before the next occurrence",
			reminder: Reminder{RemindAt: at, IsRecurring: true, RecurrencePattern: RecurrenceYearly, RecurrenceEndDate: &endBeforeNext},
		},
		{
			name:     "recurring with once pattern behaves as a one-off",
			reminder: Reminder{RemindAt: at, IsRecurring: true, RecurrencePattern: RecurrenceOnce},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.reminder.NextOccurrence(now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecurrencePattern_IsValid(t *testing.T) {
	for _, p := range []RecurrencePattern{RecurrenceOnce, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly} {
		assert.True(t, p.IsValid(), string(p))
	}
	assert.False(t, RecurrencePattern("hourly").IsValid())
	assert.False(t, RecurrencePattern("").IsValid())
}
