package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-file-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldLogin targets the login of a user.
	FieldLogin = "login"

	// FieldPassword targets the plaintext password of a user.
	FieldPassword = "password"

	// FieldName targets a folder or file name. On a FolderRequest the name
	// is required.
	FieldName = "name"

	// FieldTags targets the tag list of a folder request or of an upload.
	FieldTags = "tags"

	// FieldUpdate requires a FolderRequest to change at least one field. A
	// name, when present, must still be valid.
	FieldUpdate = "update"

	// FieldFiles targets the batch size of an upload.
	FieldFiles = "files"

	// FieldCreate requires a ReminderRequest to carry a title and a
	// reminder time.
	FieldCreate = "create"

	// FieldTitle, FieldDescription, FieldRemindAt and FieldRecurrence target
	// the parts of a stored reminder.
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldRemindAt    = "remind_at"
	FieldRecurrence  = "recurrence"
)

const (
	MaxLoginLength    = 255
	MinPasswordLength = 8
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
	MaxNameLength     = 255
	MaxTags           = 32
	MaxFilesPerUpload = 5

	MaxTitleLength       = 255
	MaxDescriptionLength = 2000
)

// FileKeeperValidator implements [Validator] for users, folder requests and
// file uploads. Both value and pointer forms are accepted.
type FileKeeperValidator struct {
}

// NewFileKeeperValidator constructs a new FileKeeperValidator and returns it
// as the Validator interface.
func NewFileKeeperValidator() Validator {
	return &FileKeeperValidator{}
}

// Validate dispatches on the dynamic type of obj:
//   - models.User / *models.User: login and password (default both)
//   - models.FolderRequest / *models.FolderRequest: name and tags (default both)
//   - models.FileUpload / *models.FileUpload: name
//   - []models.FileUpload: batch size and every upload
//   - models.Tags: count and blank values
//   - models.ProfileRequest / *models.ProfileRequest: login and name
//   - models.ReminderRequest / *models.ReminderRequest: create or update shape
//   - models.Reminder / *models.Reminder: the merged reminder before it is stored
//
// Returns ErrUnsupportedType for anything else and ErrUnknownField for a
// field the type does not have.
func (v *FileKeeperValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.FolderRequest:
		return v.validateFolderRequest(value, fields...)
	case *models.FolderRequest:
		return v.validateFolderRequest(*value, fields...)

	case models.FileUpload:
		return v.validateFileUpload(value, fields...)
	case *models.FileUpload:
		return v.validateFileUpload(*value, fields...)

	case []models.FileUpload:
		return v.validateUploadBatch(value, fields...)

	case models.Tags:
		return v.validateTags(value, fields...)

	case models.ProfileRequest:
		return v.validateProfileRequest(value, fields...)
	case *models.ProfileRequest:
		return v.validateProfileRequest(*value, fields...)

	case models.ReminderRequest:
		return v.validateReminderRequest(value, fields...)
	case *models.ReminderRequest:
		return v.validateReminderRequest(*value, fields...)

	case models.Reminder:
		return v.validateReminder(value, fields...)
	case *models.Reminder:
		return v.validateReminder(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *FileKeeperValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if err := validateLogin(user.Login); err != nil {
				return err
			}
		case FieldPassword:
			if utf8.RuneCountInString(user.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
			if len(user.Password) > MaxPasswordLength {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FileKeeperValidator) validateFolderRequest(request models.FolderRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldTags}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if request.Name == nil {
				return ErrEmptyName
			}
			if err := validateName(*request.Name); err != nil {
				return err
			}
		case FieldTags:
			if request.Tags == nil {
				continue
			}
			if err := checkTags(*request.Tags); err != nil {
				return err
			}
		case FieldUpdate:
			if request.Name == nil && request.Tags == nil {
				return ErrNoFieldsToUpdate
			}
			if request.Name != nil {
				if err := validateName(*request.Name); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FileKeeperValidator) validateTags(tags models.Tags, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTags}
	}

	for _, f := range fields {
		if f != FieldTags {
			return ErrUnknownField
		}
		if err := checkTags(tags); err != nil {
			return err
		}
	}

	return nil
}

func (v *FileKeeperValidator) validateFileUpload(upload models.FileUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := validateName(upload.Name); err != nil {
				return err
			}
			if strings.ContainsAny(upload.Name, `/\`) || upload.Name == "." || upload.Name == ".." {
				return ErrInvalidName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUploadBatch checks the batch size and then each upload with the
// default upload fields. The error names the index of the first bad upload.
func (v *FileKeeperValidator) validateUploadBatch(uploads []models.FileUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFiles}
	}

	for _, f := range fields {
		switch f {
		case FieldFiles:
			if len(uploads) == 0 {
				return ErrNoFiles
			}
			if len(uploads) > MaxFilesPerUpload {
				return ErrTooManyFiles
			}
			for i, upload := range uploads {
				if err := v.validateFileUpload(upload); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkTags(tags models.Tags) error {
	if len(tags) > MaxTags {
		return ErrTooManyTags
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return ErrEmptyTag
		}
	}
	return nil
}

func validateLogin(login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return ErrEmptyLogin
	}
	if utf8.RuneCountInString(login) > MaxLoginLength {
		return ErrLoginTooLong
	}
	return nil
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
