package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"docchat-backend/internal/analysis"
)

type fakeObjects struct {
	deletes []string
	failOn  string
}

func (f *fakeObjects) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, error) {
	data, _ := io.ReadAll(r)
	return "stored_" + fileName, int64(len(data)), nil
}

func (f *fakeObjects) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (f *fakeObjects) Delete(ctx context.Context, storedName string) error {
	f.deletes = append(f.deletes, storedName)
	if storedName == f.failOn {
		return errors.New("artifact delete failed")
	}
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *Store, *fakeObjects) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := NewStore()
	objects := &fakeObjects{}
	handler := NewHandler(NewService(store, objects))

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api"))
	return r, store, objects
}

func seed(t *testing.T, store *Store, id, storedName, filename, content string) {
	t.Helper()
	err := store.Insert(Document{
		ID:         id,
		StoredName: storedName,
		Filename:   filename,
		SizeBytes:  int64(len(content)),
		TypeTag:    TypeTagFor(filename),
		UploadedAt: time.Now().UTC(),
		Content:    content,
		WordCount:  2,
		Analysis:   analysis.Default(),
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestListOmitsContent(t *testing.T) {
	r, store, _ := newTestRouter(t)
	seed(t, store, "d1", "sn1", "a.txt", "secret body")

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var parsed struct {
		Documents []map[string]any `json:"documents"`
		Count     int              `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Count != 1 || len(parsed.Documents) != 1 {
		t.Fatalf("unexpected listing: %+v", parsed)
	}
	if _, ok := parsed.Documents[0]["content"]; ok {
		t.Fatal("listing must not include content")
	}
	if parsed.Documents[0]["analysis"] == nil {
		t.Fatal("listing must include analysis")
	}
}

func TestGetIncludesContent(t *testing.T) {
	r, store, _ := newTestRouter(t)
	seed(t, store, "d1", "sn1", "a.txt", "full text here")

	req := httptest.NewRequest(http.MethodGet, "/api/documents/d1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed["content"] != "full text here" {
		t.Fatalf("detail must include content, got %v", parsed["content"])
	}
}

func TestGetUnknownReturns404(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/nope", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDeleteByIDAndByStoredName(t *testing.T) {
	r, store, objects := newTestRouter(t)
	seed(t, store, "d1", "stored-1", "a.txt", "x")
	seed(t, store, "d2", "stored-2", "b.txt", "y")

	// Delete by logical id.
	req := httptest.NewRequest(http.MethodDelete, "/api/documents/d1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete by id: expected 200, got %d", resp.Code)
	}

	// Delete by stored name fallback.
	req = httptest.NewRequest(http.MethodDelete, "/api/documents/stored-2", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete by stored name: expected 200, got %d", resp.Code)
	}

	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
	if len(objects.deletes) != 2 {
		t.Fatalf("expected 2 artifact deletions, got %v", objects.deletes)
	}

	// Unknown key is a distinct not-found outcome.
	req = httptest.NewRequest(http.MethodDelete, "/api/documents/unknown", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestClearToleratesArtifactFailures(t *testing.T) {
	r, store, objects := newTestRouter(t)
	objects.failOn = "stored-1"
	seed(t, store, "d1", "stored-1", "a.txt", "x")
	seed(t, store, "d2", "stored-2", "b.txt", "y")

	req := httptest.NewRequest(http.MethodDelete, "/api/documents", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var parsed struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Count != 2 {
		t.Fatalf("expected 2 removed, got %d", parsed.Count)
	}
	// In-memory records are dropped even when an artifact delete fails.
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}
