package validators

import (
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-file-keeper/models"
)

// validateProfileRequest checks the fields a profile update may change.
// Password is not looked at here: the service rejects it before.
func (v *FileKeeperValidator) validateProfileRequest(request models.ProfileRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdate}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdate:
			if request.Login == nil && request.Name == nil {
				return ErrNoFieldsToUpdate
			}
			if request.Login != nil {
				if err := validateLogin(*request.Login); err != nil {
					return err
				}
			}
			if request.Name != nil && utf8.RuneCountInString(*request.Name) > MaxNameLength {
				return ErrDisplayNameTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateReminderRequest checks the shape of a create or update body.
// Cross-field rules are left to the merged reminder.
func (v *FileKeeperValidator) validateReminderRequest(request models.ReminderRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCreate}
	}

	for _, f := range fields {
		switch f {
		case FieldCreate:
			if request.Title == nil {
				return ErrEmptyTitle
			}
			if request.RemindAt == nil {
				return ErrEmptyRemindAt
			}
		case FieldUpdate:
			if request == (models.ReminderRequest{}) {
				return ErrNoFieldsToUpdate
			}
		default:
			return ErrUnknownField
		}
	}

	if request.Title != nil {
		if err := validateTitle(*request.Title); err != nil {
			return err
		}
	}
	if request.RecurrencePattern != nil && !request.RecurrencePattern.IsValid() {
		return ErrInvalidRecurrence
	}
	return nil
}

func (v *FileKeeperValidator) validateReminder(reminder models.Reminder, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldDescription, FieldRemindAt, FieldRecurrence}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := validateTitle(reminder.Title); err != nil {
				return err
			}
		case FieldDescription:
			if utf8.RuneCountInString(reminder.Description) > MaxDescriptionLength {
				return ErrDescriptionTooLong
			}
		case FieldRemindAt:
			if reminder.RemindAt.IsZero() {
				return ErrEmptyRemindAt
			}
		case FieldRecurrence:
			if !reminder.RecurrencePattern.IsValid() {
				return ErrInvalidRecurrence
			}
			if reminder.IsRecurring && reminder.RecurrencePattern == models.RecurrenceOnce {
				return ErrRecurrenceNeedsStep
			}
			if reminder.RecurrenceEndDate != nil && reminder.RecurrenceEndDate.Before(reminder.RemindAt) {
				return ErrRecurrenceEnd
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
