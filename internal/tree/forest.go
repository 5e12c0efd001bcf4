// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

import (
	"github.com/MKhiriev/go-file-keeper/models"
)

// Forest is the list of root nodes of a user's hierarchy.
type Forest []*Node

// InsertResult tells whether an insert spliced the node into the forest.
type InsertResult int

const (
	// Inserted means the node was added under its parent (or at the root).
	Inserted InsertResult = iota
	// ParentNotFound means the declared parent folder is not part of the
	// forest; the forest is left unchanged.
	ParentNotFound
)

func (r InsertResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case ParentNotFound:
		return "parent not found"
	default:
		return "unknown"
	}
}

// Build composes a forest out of flat records.
//
// Folders and files are first grouped by parent id, then each folder's
// children are attached starting from the root group: subfolders first,
// then files, both in input order. Every record is visited a constant
// number of times, so Build runs in O(N+M).
//
// Records whose parent is not among folders, or that sit on a parent cycle,
// are not reachable from a root and are left out of the result.
func Build(folders []models.Folder, files []models.File) Forest {
	nodes := make(map[int64]*Node, len(folders))
	foldersByParent := make(map[int64][]*Node)
	filesByParent := make(map[int64][]*Node)
	var rootFolders, rootFiles []*Node

	for _, f := range folders {
		n := FolderNode(f)
		nodes[f.FolderID] = n
		if f.ParentFolder == nil {
			rootFolders = append(rootFolders, n)
			continue
		}
		foldersByParent[*f.ParentFolder] = append(foldersByParent[*f.ParentFolder], n)
	}

	for _, f := range files {
		n := FileNode(f)
		if f.ParentFolder == nil {
			rootFiles = append(rootFiles, n)
			continue
		}
		filesByParent[*f.ParentFolder] = append(filesByParent[*f.ParentFolder], n)
	}

	forest := make(Forest, 0, len(rootFolders)+len(rootFiles))
	forest = append(forest, rootFolders...)
	forest = append(forest, rootFiles...)

	// Explicit stack instead of recursion; each folder is pushed at most
	// once because it has a single declared parent.
	stack := make([]*Node, len(rootFolders))
	copy(stack, rootFolders)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		subfolders := foldersByParent[current.ID]
		current.Children = append(current.Children, subfolders...)
		current.Children = append(current.Children, filesByParent[current.ID]...)
		stack = append(stack, subfolders...)
	}

	return forest
}

// Walk calls fn for every node in depth-first pre-order together with its
// parent folder (nil for roots). Returning false from fn stops the walk.
func (f Forest) Walk(fn func(n, parent *Node) bool) {
	type frame struct {
		node, parent *Node
	}

	stack := make([]frame, 0, len(f))
	for i := len(f) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: f[i]})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(top.node, top.parent) {
			return
		}
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: top.node.Children[i], parent: top.node})
		}
	}
}

// Count returns the total number of nodes in the forest.
func (f Forest) Count() int {
	count := 0
	f.Walk(func(*Node, *Node) bool {
		count++
		return true
	})
	return count
}

// FindFolder returns the folder node with the given id, or nil.
func (f Forest) FindFolder(id int64) *Node {
	var found *Node
	f.Walk(func(n, _ *Node) bool {
		if n.IsFolder() && n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// InsertFolder splices a new folder node under its declared parent.
func (f *Forest) InsertFolder(folder models.Folder) InsertResult {
	return f.insert(FolderNode(folder))
}

// InsertFile splices a new file node under its declared parent.
func (f *Forest) InsertFile(file models.File) InsertResult {
	return f.insert(FileNode(file))
}

func (f *Forest) insert(n *Node) InsertResult {
	if n.ParentFolder == nil {
		*f = append(*f, n)
		return Inserted
	}

	parent := f.FindFolder(*n.ParentFolder)
	if parent == nil {
		return ParentNotFound
	}
	parent.Children = append(parent.Children, n)
	return Inserted
}

// RemoveFolder cuts the folder, with its whole subtree, out of its parent.
// It reports whether anything was removed; an unknown parent or id is a
// no-op.
func (f *Forest) RemoveFolder(folder models.Folder) bool {
	return f.remove(folder.FolderID, KindFolder, folder.ParentFolder)
}

// RemoveFile cuts the file out of its parent folder.
func (f *Forest) RemoveFile(file models.File) bool {
	return f.remove(file.FileID, KindFile, file.ParentFolder)
}

func (f *Forest) remove(id int64, kind Kind, parentID *int64) bool {
	if parentID == nil {
		var removed bool
		*f, removed = without(*f, id, kind)
		return removed
	}

	parent := f.FindFolder(*parentID)
	if parent == nil {
		return false
	}

	var removed bool
	parent.Children, removed = without(parent.Children, id, kind)
	return removed
}

func without(nodes []*Node, id int64, kind Kind) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == id && n.Kind == kind {
			return append(nodes[:i:i], nodes[i+1:]...), true
		}
	}
	return nodes, false
}
