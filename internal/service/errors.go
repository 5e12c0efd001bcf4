package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAuthentication means the supplied secret does not open the
	// account: wrong password or wrapped key that fails to unwrap.
	ErrAuthentication = errors.New("authentication failed")

	// ErrKeyMismatch means the password hash accepted the secret but the
	// wrapped FEK did not. The stored credentials are inconsistent.
	ErrKeyMismatch = errors.New("password hash and key material disagree")

	ErrMalformedKeyMaterial = errors.New("malformed key material")
	ErrKeyMaterialExists    = errors.New("key material is already provisioned")

	// ErrObjectTampered is returned when a stored object fails its
	// integrity check on download.
	ErrObjectTampered = errors.New("stored object failed integrity check")

	ErrFolderNotTrashed    = errors.New("folder must be trashed before deletion")
	ErrTrashedFolderUpdate = errors.New("cannot update trashed folder")
	ErrParentNotFound      = errors.New("parent folder not found")
	ErrParentTrashed       = errors.New("parent folder is trashed")
	ErrMoveIntoDescendant  = errors.New("folder cannot be moved into itself or its descendant")

	// ErrPasswordUpdateNotAllowed is returned when a profile update carries
	// a password. Passwords change through ChangePassword only.
	ErrPasswordUpdateNotAllowed = errors.New("password cannot be changed here, use the password endpoint")

	// ErrLinkedFileNotFound is returned when a reminder points at a file the
	// user does not have.
	ErrLinkedFileNotFound = errors.New("linked file not found")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
