package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLogin       = errors.New("login is required")
	ErrLoginTooLong     = errors.New("login is too long")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrEmptyName        = errors.New("name is required")
	ErrNameTooLong      = errors.New("name is too long")
	ErrInvalidName      = errors.New("name contains a path separator or is a dot entry")
	ErrEmptyTag         = errors.New("tags cannot contain empty values")
	ErrTooManyTags      = errors.New("too many tags")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrNoFiles          = errors.New("no files provided")
	ErrTooManyFiles     = errors.New("too many files in one upload")

	ErrDisplayNameTooLong = errors.New("display name is too long")

	ErrEmptyTitle          = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title is too long")
	ErrDescriptionTooLong  = errors.New("description is too long")
	ErrEmptyRemindAt       = errors.New("remind_at is required")
	ErrInvalidRecurrence   = errors.New("unknown recurrence pattern")
	ErrRecurrenceNeedsStep = errors.New("recurring reminder needs a repeating pattern")
	ErrRecurrenceEnd       = errors.New("recurrence end date is before the reminder time")
)
