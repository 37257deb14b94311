// Package filestore persists uploaded binaries and resolves them to
// public URLs. Handlers only see the FileStore interface, so swapping the
// disk implementation for an object-storage one is a startup concern.
package filestore

import "io"

type FileStore interface {
	// Store writes the contents of r under name.
	Store(name string, r io.Reader) error
	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(name string) error
	// URLFor resolves a stored name to the URL clients fetch it from.
	URLFor(name string) string
}
