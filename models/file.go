package models

import "time"

// File is the metadata record of one encrypted object.
//
// The encrypted body lives in the object store under Location; the record
// itself carries no key material.
type File struct {
	FileID int64 `json:"id"`
	UserID int64 `json:"-"`

	Name        string `json:"name"`
	ContentType string `json:"content_type"`

	// Size is the plaintext size in bytes.
	Size int64 `json:"size"`

	// Location is the opaque object-store key of the encrypted body.
	Location string `json:"-"`

	ParentFolder *int64 `json:"parent_folder"`
	IsRoot       bool   `json:"is_root"`
	IsTrashed    bool   `json:"is_trashed"`
	IsDeleted    bool   `json:"-"`

	Tags Tags `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetParent moves the file under parent (nil means root) and updates IsRoot.
func (f *File) SetParent(parent *int64) {
	f.ParentFolder = parent
	f.IsRoot = parent == nil
}

// TableName returns the name of the database table
// associated with the File model.
func (f File) TableName() string {
	return "files"
}

// FileUpload is one plaintext file received from a client.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileDownload is a decrypted file body ready to be streamed back.
type FileDownload struct {
	File File
	Data []byte
}
