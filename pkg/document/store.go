package document

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotOpen is returned when a snapshot is requested for a document the
// store does not hold.
var ErrNotOpen = errors.New("document not open")

// Snapshot is an immutable view of one open document at request time.
type Snapshot struct {
	// URI identifies the document.
	URI string

	// Path is the filesystem path the URI names.
	Path string

	// Text is the full document text at snapshot time.
	Text string

	// Version increases each time the editor's copy of the document
	// changes. It detects staleness between computing a fix and applying it.
	Version int
}

// Store supplies document snapshots for lint and fix requests.
type Store interface {
	Snapshot(uri string) (Snapshot, error)
}

// MemStore is an in-memory Store fed by editor open/change/close events.
type MemStore struct {
	mu   sync.Mutex
	docs map[string]Snapshot
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string]Snapshot)}
}

// Open registers a document with its initial text and version.
func (s *MemStore) Open(uri, text string, version int) error {
	path, err := PathFromURI(uri)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = Snapshot{URI: uri, Path: path, Text: text, Version: version}
	return nil
}

// Change replaces a document's text. The new version must be greater than
// the stored one; the store enforces monotonicity so staleness checks stay
// meaningful.
func (s *MemStore) Change(uri, text string, version int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotOpen, uri)
	}
	if version <= doc.Version {
		return fmt.Errorf("document %s version %d is not newer than %d", uri, version, doc.Version)
	}

	doc.Text = text
	doc.Version = version
	s.docs[uri] = doc
	return nil
}

// Close forgets a document.
func (s *MemStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Snapshot returns the current view of a document.
func (s *MemStore) Snapshot(uri string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNotOpen, uri)
	}
	return doc, nil
}
