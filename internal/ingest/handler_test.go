package ingest

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"docchat-backend/internal/analysis"
	"docchat-backend/internal/documents"
)

func newTestRouter(t *testing.T) (*gin.Engine, *documents.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := documents.NewStore()
	proc := NewProcessor(newFakeObjectStore(), analysis.NewAnalyzer(&fakeLLM{reply: `{"summary":"s"}`}), store)

	r := gin.New()
	NewHandler(proc).RegisterRoutes(r.Group("/api"))
	return r, store
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range files {
		fw, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	r, store := newTestRouter(t)

	body, contentType := multipartBody(t, map[string][]byte{
		"notes.txt": []byte("hello upload world"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var parsed struct {
		Documents []map[string]any `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(parsed.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(parsed.Documents))
	}
	if _, ok := parsed.Documents[0]["content"]; ok {
		t.Fatal("upload response must not include content")
	}
	if parsed.Documents[0]["wordCount"].(float64) != 3 {
		t.Fatalf("unexpected word count: %v", parsed.Documents[0]["wordCount"])
	}
	if store.Len() != 1 {
		t.Fatalf("store should hold 1 document, has %d", store.Len())
	}
}

func TestUpload_OversizeRequestBodyRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := documents.NewStore()
	proc := NewProcessor(newFakeObjectStore(), analysis.NewAnalyzer(&fakeLLM{reply: `{"summary":"s"}`}), store)
	h := NewHandler(proc)
	h.bodyLimit = 1 << 10

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))

	body, contentType := multipartBody(t, map[string][]byte{
		"big.txt": bytes.Repeat([]byte("a"), 4<<10),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if store.Len() != 0 {
		t.Fatal("oversize request must not reach the store")
	}
}

func TestUpload_NoFilesRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUpload_DisallowedExtensionRejected(t *testing.T) {
	r, store := newTestRouter(t)

	body, contentType := multipartBody(t, map[string][]byte{
		"malware.exe": []byte("mz"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if store.Len() != 0 {
		t.Fatal("rejected batch must not reach the store")
	}
}

func TestUpload_ImageAcceptedWithEmptyText(t *testing.T) {
	r, store := newTestRouter(t)

	body, contentType := multipartBody(t, map[string][]byte{
		"scan.png": {0x89, 0x50, 0x4e, 0x47},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if store.Len() != 1 {
		t.Fatalf("image upload must still yield a document, store has %d", store.Len())
	}
	doc := store.List()[0]
	if doc.WordCount != 0 {
		t.Fatalf("expected 0 words for image, got %d", doc.WordCount)
	}
	if doc.Analysis.Summary != analysis.SummaryNoText {
		t.Fatalf("expected no-text placeholder, got %q", doc.Analysis.Summary)
	}
}
