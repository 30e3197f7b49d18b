package documents

import (
	"context"

	"docchat-backend/internal/shared/storage/object"
	"docchat-backend/internal/shared/telemetry"
)

// Service contains business logic for stored documents. It owns the
// in-memory registry and the backing artifact store.
type Service struct {
	Docs    *Store
	Objects object.ObjectStore
}

// NewService constructs a Service.
func NewService(docs *Store, objects object.ObjectStore) *Service {
	return &Service{Docs: docs, Objects: objects}
}

// List returns all documents, content-stripped, in insertion order.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Docs.List(), nil
}

// Get returns the full record for an id.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	return s.Docs.Get(id)
}

// Remove deletes a document by id or stored name and drops its backing
// artifact. A missing artifact is tolerated.
func (s *Service) Remove(ctx context.Context, key string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	doc, err := s.Docs.Remove(key)
	if err != nil {
		return Document{}, err
	}

	if err := s.Objects.Delete(ctx, doc.StoredName); err != nil {
		telemetry.Warn("documents.artifact_delete_failed", map[string]any{
			"document_id": doc.ID,
			"stored_name": doc.StoredName,
			"err":         err.Error(),
		})
	}
	return doc, nil
}

// Clear drops every document. Failures deleting individual backing artifacts
// are tolerated and logged; the in-memory records are removed regardless.
func (s *Service) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	removed := s.Docs.Clear()
	for _, doc := range removed {
		if err := s.Objects.Delete(ctx, doc.StoredName); err != nil {
			telemetry.Warn("documents.artifact_delete_failed", map[string]any{
				"document_id": doc.ID,
				"stored_name": doc.StoredName,
				"err":         err.Error(),
			})
		}
	}
	return len(removed), nil
}
