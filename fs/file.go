// Package fs writes conversion outputs to the local file system.
package fs

import (
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// File is an output file with atomic update semantics. Writes go to a
// temporary file in the target directory, which is renamed over the target
// on Commit. A File that is never committed leaves the target untouched.
type File struct {
	f    *os.File
	path string
	done bool
}

// Create opens a temporary file for the output at p, creating parent
// directories as needed.
func Create(p string) (*File, error) {
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(p)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &File{f: f, path: p}, nil
}

// Write appends p to the temporary file.
func (f *File) Write(p []byte) (int, error) {
	if f.done {
		return 0, os.ErrClosed
	}
	return f.f.Write(p)
}

// Path returns the final path of the file.
func (f *File) Path() string {
	return f.path
}

// Commit moves the written content to the final path.
func (f *File) Commit() error {
	if f.done {
		return os.ErrClosed
	}
	f.done = true

	if err := f.f.Chmod(0644); err != nil {
		return errors.Join(err, f.remove())
	}
	if err := f.f.Close(); err != nil {
		return errors.Join(err, os.Remove(f.f.Name()))
	}
	if err := os.Rename(f.f.Name(), f.path); err != nil {
		return errors.Join(err, os.Remove(f.f.Name()))
	}
	return nil
}

// Abort discards the written content. It is a no-op after Commit, so it
// can be deferred.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	return f.remove()
}

func (f *File) remove() error {
	return errors.Join(f.f.Close(), os.Remove(f.f.Name()))
}

// extensions covers media types the detection database does not know.
var extensions = map[string]string{
	"text/markdown": ".md",
}

// OutputName derives a file name for a conversion of rawURL into
// mediaType. The last path segment of the URL, without extension, names
// the file; the root path becomes "index".
// Example: https://example.com/docs/guide.html, application/epub+zip → guide.epub
func OutputName(rawURL, mediaType string) string {
	base := "index"
	if u, err := url.Parse(rawURL); err == nil {
		if seg := path.Base(strings.TrimSuffix(u.Path, "/")); seg != "." && seg != "/" && seg != "" {
			base = strings.TrimSuffix(seg, path.Ext(seg))
		}
	}
	if base == "" {
		base = "index"
	}
	return base + extension(mediaType)
}

func extension(mediaType string) string {
	mt, _, _ := strings.Cut(mediaType, ";")
	mt = strings.TrimSpace(strings.ToLower(mt))
	if ext, ok := extensions[mt]; ok {
		return ext
	}
	if m := mimetype.Lookup(mt); m != nil {
		return m.Extension()
	}
	return ""
}
