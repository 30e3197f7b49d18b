package documents

import "sync"

// Store is the authoritative in-memory registry of ingested documents.
// Insertion order is preserved and defines "last uploaded". Lookups are
// indexed by id and, as a compatibility fallback for deletion, by stored
// name. All mutating operations are serialized by the mutex; reads may run
// concurrently.
type Store struct {
	mu           sync.RWMutex
	docs         []Document
	byID         map[string]int
	byStoredName map[string]int
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		byID:         make(map[string]int),
		byStoredName: make(map[string]int),
	}
}

// Insert appends a document. It fails only on an id collision, which the
// generation scheme is expected to prevent.
func (s *Store) Insert(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[doc.ID]; ok {
		return ErrDuplicateID
	}
	s.docs = append(s.docs, doc)
	idx := len(s.docs) - 1
	s.byID[doc.ID] = idx
	if doc.StoredName != "" {
		s.byStoredName[doc.StoredName] = idx
	}
	return nil
}

// List returns all documents in insertion order with Content omitted. This
// is the only shape in which documents leave the store to a listing caller.
func (s *Store) List() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, len(s.docs))
	for i, doc := range s.docs {
		doc.Content = ""
		out[i] = doc
	}
	return out
}

// All returns every document including Content, in insertion order. Used by
// the chat context builder, which needs the full text.
func (s *Store) All() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Get returns the full record for an id, including Content.
func (s *Store) Get(id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return s.docs[idx], nil
}

// Remove deletes a document looked up by id or, as a fallback, by stored
// name, and returns the removed record. Not found is a distinct outcome.
func (s *Store) Remove(key string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[key]
	if !ok {
		idx, ok = s.byStoredName[key]
	}
	if !ok {
		return Document{}, ErrNotFound
	}

	doc := s.docs[idx]
	s.docs = append(s.docs[:idx], s.docs[idx+1:]...)
	s.reindex()
	return doc, nil
}

// Clear removes all documents and returns them so the caller can drop the
// backing artifacts.
func (s *Store) Clear() []Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.docs
	s.docs = nil
	s.byID = make(map[string]int)
	s.byStoredName = make(map[string]int)
	return removed
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) reindex() {
	s.byID = make(map[string]int, len(s.docs))
	s.byStoredName = make(map[string]int, len(s.docs))
	for i, doc := range s.docs {
		s.byID[doc.ID] = i
		if doc.StoredName != "" {
			s.byStoredName[doc.StoredName] = i
		}
	}
}
