package documents

import (
	"time"

	"docchat-backend/internal/analysis"
)

// DocumentResponse is the outward-facing representation of a document with
// the extracted content omitted.
type DocumentResponse struct {
	ID         string            `json:"id"`
	Filename   string            `json:"filename"`
	StoredName string            `json:"storedName"`
	SizeBytes  int64             `json:"sizeBytes"`
	TypeTag    string            `json:"type"`
	UploadedAt time.Time         `json:"uploadedAt"`
	WordCount  int               `json:"wordCount"`
	Analysis   analysis.Analysis `json:"analysis"`
}

// DocumentDetailResponse is the full record, content included.
type DocumentDetailResponse struct {
	DocumentResponse
	Content string `json:"content"`
}

// ToResponse converts a document to its content-stripped wire shape.
func ToResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:         doc.ID,
		Filename:   doc.Filename,
		StoredName: doc.StoredName,
		SizeBytes:  doc.SizeBytes,
		TypeTag:    doc.TypeTag,
		UploadedAt: doc.UploadedAt,
		WordCount:  doc.WordCount,
		Analysis:   doc.Analysis,
	}
}

// ToDetailResponse converts a document to its full wire shape.
func ToDetailResponse(doc Document) DocumentDetailResponse {
	return DocumentDetailResponse{
		DocumentResponse: ToResponse(doc),
		Content:          doc.Content,
	}
}
