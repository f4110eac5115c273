package zip

import "github.com/fwojciec/docconv"

// Ensure Resolver implements docconv.OutputResolver at compile time.
var _ docconv.OutputResolver = (*Resolver)(nil)

// Resolver maps every fan-out output of a transformation to a fresh entry
// of its Archive. Output names are used as entry names unchanged; the base
// location is ignored because the archive is flat relative to its root.
type Resolver struct {
	archive *Archive
}

// NewResolver creates a Resolver that writes to archive.
func NewResolver(archive *Archive) *Resolver {
	return &Resolver{archive: archive}
}

// Resolve opens the entry href and returns a sink bound to it.
func (r *Resolver) Resolve(href, base string) (*docconv.Output, error) {
	e, err := r.archive.create(href)
	if err != nil {
		return nil, err
	}
	return &docconv.Output{ID: e.id, Href: href, Writer: e}, nil
}

// Close is a no-op. Entries are finalized when the next one is opened or
// the archive is closed.
func (r *Resolver) Close(out *docconv.Output) error {
	return nil
}

// NewInstance returns a Resolver sharing the same archive.
func (r *Resolver) NewInstance() docconv.OutputResolver {
	return &Resolver{archive: r.archive}
}
