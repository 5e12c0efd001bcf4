// Package tree builds and edits the in-memory folder/file hierarchy of a
// user.
//
// A [Forest] is produced from flat folder and file records with [Build] in
// a single grouping pass plus a single composition pass. The tree service
// rebuilds the forest on every request. [Forest.InsertFolder],
// [Forest.InsertFile], [Forest.RemoveFolder] and [Forest.RemoveFile] edit
// a forest that is kept between changes; nothing in the server does that
// today.
//
// The package does no I/O and holds no locks; a Forest must not be shared
// between goroutines without external synchronisation.
package tree
