// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

import (
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-file-keeper/models"
)

// Kind tells folder nodes from file nodes.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// Node is one element of a [Forest]. Folder nodes own their children;
// file nodes are leaves and always have nil Children.
type Node struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Kind         Kind      `json:"kind"`
	ParentFolder *int64    `json:"parent_folder"`
	Size         int64     `json:"size,omitempty"`
	IsTrashed    bool      `json:"is_trashed"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Children     []*Node   `json:"children,omitempty"`
}

// MarshalJSON always emits children for folders, as [] when empty, and
// never for files.
func (n Node) MarshalJSON() ([]byte, error) {
	type plain Node
	out := struct {
		plain
		Children *[]*Node `json:"children,omitempty"`
	}{plain: plain(n)}

	if n.IsFolder() {
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		out.Children = &children
	}
	return json.Marshal(out)
}

// IsFolder reports whether n is a folder node.
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// FolderNode converts a folder record into a childless folder node.
func FolderNode(f models.Folder) *Node {
	return &Node{
		ID:           f.FolderID,
		Name:         f.Name,
		Kind:         KindFolder,
		ParentFolder: f.ParentFolder,
		IsTrashed:    f.IsTrashed,
		Tags:         f.Tags,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
		Children:     []*Node{},
	}
}

// FileNode converts a file record into a leaf node.
func FileNode(f models.File) *Node {
	return &Node{
		ID:           f.FileID,
		Name:         f.Name,
		Kind:         KindFile,
		ParentFolder: f.ParentFolder,
		Size:         f.Size,
		IsTrashed:    f.IsTrashed,
		Tags:         f.Tags,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
