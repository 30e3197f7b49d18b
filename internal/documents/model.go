package documents

import (
	"path/filepath"
	"strings"
	"time"

	"docchat-backend/internal/analysis"
)

// Document represents an ingested document. Content holds the full extracted
// text and is owned by the store; listings never carry it.
type Document struct {
	ID         string
	StoredName string
	Filename   string
	SizeBytes  int64
	TypeTag    string
	UploadedAt time.Time
	Content    string
	WordCount  int
	Analysis   analysis.Analysis
}

// TypeTagFor derives the informational type tag from a file name, e.g.
// "report.pdf" -> "PDF".
func TypeTagFor(fileName string) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	return strings.ToUpper(ext)
}
