// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Folder is a node of the user's namespace that can contain files and
// other folders.
//
// A folder moves through active -> trashed -> deleted. Deleted folders are
// removed from storage, so a persisted folder is either active or trashed.
type Folder struct {
	// FolderID is the unique identifier assigned by the store.
	FolderID int64 `json:"id"`

	// UserID is the owner of the folder.
	UserID int64 `json:"-"`

	// Name is the display name; it is not required to be unique.
	Name string `json:"name"`

	// ParentFolder is the containing folder, nil for a root folder.
	ParentFolder *int64 `json:"parent_folder"`

	// IsRoot is true iff ParentFolder is nil. Use SetParent to keep the
	// two in sync.
	IsRoot bool `json:"is_root"`

	// IsTrashed marks the folder as soft-deleted.
	IsTrashed bool `json:"is_trashed"`

	Tags Tags `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetParent moves the folder under parent (nil means root) and updates
// IsRoot accordingly.
func (f *Folder) SetParent(parent *int64) {
	f.ParentFolder = parent
	f.IsRoot = parent == nil
}

// TableName returns the name of the database table
// associated with the Folder model.
func (f Folder) TableName() string {
	return "folders"
}

// FolderContents is a folder together with its direct children.
type FolderContents struct {
	Folder     Folder   `json:"folder"`
	Subfolders []Folder `json:"subfolders"`
	Files      []File   `json:"files"`
}

// FolderRequest is the body of folder create and update calls. On update
// nil fields are left unchanged.
type FolderRequest struct {
	Name         *string `json:"name,omitempty"`
	ParentFolder *int64  `json:"parent_folder,omitempty"`
	Tags         *Tags   `json:"tags,omitempty"`
}

// MoveRequest is the body of move calls. A nil ParentFolder moves the item
// to the root level.
type MoveRequest struct {
	ParentFolder *int64 `json:"parent_folder"`
}
