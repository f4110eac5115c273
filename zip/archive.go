// Package zip routes the fan-out outputs of a transformation into the
// entries of a single zip archive.
package zip

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docconv"
	"github.com/google/uuid"
)

// MimetypeEntry is the EPUB media type entry. It is stored uncompressed so
// readers can sniff the container type from a fixed offset.
const MimetypeEntry = "mimetype"

// Entry describes one finished archive entry.
type Entry struct {
	// ID is the synthetic identifier of the output the entry was written through.
	ID string

	// Name is the entry path inside the archive.
	Name string

	// Size is the number of uncompressed bytes written.
	Size int64

	// Checksum is the xxhash64 digest of the uncompressed bytes.
	Checksum uint64
}

// Archive is an append-only zip stream shared by every resolver of one
// conversion. Exactly one entry is open at a time: opening an entry
// finalizes the previous one. Archive is safe for concurrent use, but
// writes are serialized and only reach the currently open entry.
type Archive struct {
	mu      sync.Mutex
	zw      *zip.Writer
	current *entryWriter
	entries []Entry
	closed  bool
}

// NewArchive creates an Archive that writes to w.
func NewArchive(w io.Writer) *Archive {
	return &Archive{zw: zip.NewWriter(w)}
}

// Entries returns the finished entries in the order they were opened.
// The entry currently open is not included until it is finalized.
func (a *Archive) Entries() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries := make([]Entry, len(a.entries))
	copy(entries, a.entries)
	return entries
}

// Close finalizes the open entry and writes the central directory.
// It does not close the underlying writer. Close is safe to call multiple times.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	a.finish()

	if err := a.zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// create opens a new entry named name, finalizing the previous one.
func (a *Archive) create(name string) (*entryWriter, error) {
	if name == "." || !fs.ValidPath(name) {
		return nil, docconv.Errorf(docconv.EINVALID, "invalid archive entry name %q", name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, docconv.Errorf(docconv.EINVALID, "archive is closed")
	}
	a.finish()

	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate}
	if name == MimetypeEntry {
		hdr.Method = zip.Store
	}
	w, err := a.zw.CreateHeader(hdr)
	if err != nil {
		return nil, fmt.Errorf("creating archive entry %q: %w", name, err)
	}

	a.current = &entryWriter{
		archive: a,
		w:       w,
		id:      uuid.NewString(),
		name:    name,
		digest:  xxhash.New(),
	}
	return a.current, nil
}

// finish records the open entry. Must be called with mu held.
func (a *Archive) finish() {
	e := a.current
	if e == nil {
		return
	}
	a.entries = append(a.entries, Entry{
		ID:       e.id,
		Name:     e.name,
		Size:     e.size,
		Checksum: e.digest.Sum64(),
	})
	a.current = nil
}

// entryWriter writes to one archive entry while it is the open one.
type entryWriter struct {
	archive *Archive
	w       io.Writer
	id      string
	name    string
	size    int64
	digest  *xxhash.Digest
}

func (e *entryWriter) Write(p []byte) (int, error) {
	e.archive.mu.Lock()
	defer e.archive.mu.Unlock()

	if e.archive.current != e {
		return 0, docconv.Errorf(docconv.EINVALID, "archive entry %q is no longer open", e.name)
	}

	n, err := e.w.Write(p)
	e.size += int64(n)
	_, _ = e.digest.Write(p[:n])
	if err != nil {
		return n, fmt.Errorf("writing archive entry %q: %w", e.name, err)
	}
	return n, nil
}
