package ingest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"docchat-backend/internal/documents"
	"docchat-backend/internal/shared/server/respond"
)

const (
	maxFilesPerBatch = 10
	maxFileBytes     = 50 << 20 // 50MB

	// maxRequestBytes caps the whole multipart body before parsing so an
	// oversize upload is cut off mid-read instead of being spooled to disk
	// first. Sized for a full batch of maximum files plus form overhead.
	maxRequestBytes = maxFilesPerBatch*maxFileBytes + (1 << 20)
)

// allowedExtensions is the upload filter. Image types are accepted even
// though no text can be extracted from them; they flow through the normal
// empty-text path.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
	".csv":  {},
	".xlsx": {},
	".xls":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Handler exposes the batch upload endpoint.
type Handler struct {
	Proc *Processor

	bodyLimit int64
}

// NewHandler constructs a Handler.
func NewHandler(proc *Processor) *Handler {
	return &Handler{Proc: proc, bodyLimit: maxRequestBytes}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.bodyLimit)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Upload too large.", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form", nil)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No files selected", nil)
		return
	}
	if len(headers) > maxFilesPerBatch {
		respond.Error(c, http.StatusBadRequest, "validation_error",
			fmt.Sprintf("too many files: maximum is %d per upload", maxFilesPerBatch), nil)
		return
	}

	files := make([]UploadedFile, 0, len(headers))
	for _, header := range headers {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if _, ok := allowedExtensions[ext]; !ok {
			respond.Error(c, http.StatusBadRequest, "validation_error",
				fmt.Sprintf("Unsupported file type: %s", ext), nil)
			return
		}
		if header.Size > maxFileBytes {
			respond.Error(c, http.StatusBadRequest, "validation_error",
				"File too large. Maximum size is 50MB.", nil)
			return
		}

		f, err := header.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, maxFileBytes+1))
		f.Close()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}
		if int64(len(data)) > maxFileBytes {
			respond.Error(c, http.StatusBadRequest, "validation_error",
				"File too large. Maximum size is 50MB.", nil)
			return
		}

		files = append(files, UploadedFile{Filename: header.Filename, Data: data})
	}

	docs, err := h.Proc.Ingest(c.Request.Context(), files)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyBatch):
			respond.Error(c, http.StatusBadRequest, "validation_error", "No files selected", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "upload failed", nil)
		}
		return
	}

	resp := make([]documents.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, documents.ToResponse(doc))
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Successfully uploaded and analyzed %d document(s)", len(resp)),
		"documents": resp,
	})
}
