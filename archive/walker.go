// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// Entry is a regular file found in archive.
type Entry struct {
	// Name is entry path inside archive, always with forward slashes. When
	// entry is not marked as UTF-8 and code page was given to Walk, name is
	// decoded from that code page.
	Name string
	File *zip.File
}

// WalkFunc is called for each file in archive visited by Walk. If an error is
// returned, processing stops.
type WalkFunc func(archive string, entry Entry) error

// Walk visits regular files of the archive whose names start with prefix, in
// archive order. Entries with absolute paths or ".." components are skipped.
// Cancellation of ctx is checked before each entry.
func Walk(ctx context.Context, archive, prefix string, cp encoding.Encoding, walkFn WalkFunc) error {
	// insecure names are dealt with below, entry by entry
	r, err := zip.OpenReader(archive)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			continue
		}
		name := entryName(f, cp)
		if !isSafePath(name) || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(archive, Entry{Name: name, File: f}); err != nil {
			return err
		}
	}
	return nil
}

// entryName returns decoded entry name, falling back to raw name when it
// cannot be decoded.
func entryName(f *zip.File, cp encoding.Encoding) string {
	name := f.Name
	if cp != nil && f.NonUTF8 {
		if n, err := cp.NewDecoder().String(name); err == nil {
			name = n
		}
	}
	return strings.ReplaceAll(name, `\`, "/")
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || (len(name) > 1 && name[1] == ':') {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
