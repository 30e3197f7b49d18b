package ingest

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"docchat-backend/internal/analysis"
	"docchat-backend/internal/documents"
	"docchat-backend/internal/extract"
	"docchat-backend/internal/shared/storage/object"
	"docchat-backend/internal/shared/telemetry"
)

// ErrEmptyBatch indicates an ingestion call with no files.
var ErrEmptyBatch = errors.New("no files supplied")

// UploadedFile is one file of an upload batch, validated by the upload
// boundary before it reaches the processor.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// Processor runs the per-file ingestion pipeline: persist bytes, extract
// text, analyze, commit to the store.
type Processor struct {
	Objects  object.ObjectStore
	Analyzer *analysis.Analyzer
	Docs     *documents.Store

	newID func() string
}

// NewProcessor constructs a Processor.
func NewProcessor(objects object.ObjectStore, analyzer *analysis.Analyzer, docs *documents.Store) *Processor {
	return &Processor{Objects: objects, Analyzer: analyzer, Docs: docs, newID: uuid.NewString}
}

// Ingest processes the batch strictly sequentially, in upload order. A
// failure inside one file's pipeline degrades that file to best-effort
// defaults and never aborts the rest of the batch; every supplied file
// yields a Document. The batch itself fails only when empty.
func (p *Processor) Ingest(ctx context.Context, files []UploadedFile) ([]documents.Document, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}

	processed := make([]documents.Document, 0, len(files))
	for _, file := range files {
		doc := p.processOne(ctx, file)
		// An id collision must not drop the file from the batch; re-key
		// and retry until the insert lands.
		for {
			err := p.Docs.Insert(doc)
			if err == nil {
				break
			}
			if !errors.Is(err, documents.ErrDuplicateID) {
				telemetry.Error("ingest.insert_failed", map[string]any{
					"document_id": doc.ID,
					"file":        file.Filename,
					"err":         err.Error(),
				})
				break
			}
			telemetry.Warn("ingest.id_collision", map[string]any{
				"document_id": doc.ID,
				"file":        file.Filename,
			})
			doc.ID = p.newID()
		}
		processed = append(processed, doc)
	}
	return processed, nil
}

func (p *Processor) processOne(ctx context.Context, file UploadedFile) documents.Document {
	doc := documents.Document{
		ID:         p.newID(),
		Filename:   file.Filename,
		TypeTag:    documents.TypeTagFor(file.Filename),
		UploadedAt: time.Now().UTC(),
		Analysis:   analysis.Default(),
	}

	storedName, size, err := p.Objects.Save(ctx, file.Filename, bytes.NewReader(file.Data))
	if err != nil {
		telemetry.Warn("ingest.save_failed", map[string]any{
			"file": file.Filename,
			"err":  err.Error(),
		})
	} else {
		doc.StoredName = storedName
		doc.SizeBytes = size
	}

	doc.Content = extract.Text(ctx, file.Data, file.Filename)
	doc.WordCount = len(strings.Fields(doc.Content))
	if doc.Content == "" {
		telemetry.Warn("ingest.no_text", map[string]any{"file": file.Filename})
	} else {
		telemetry.Info("ingest.extracted", map[string]any{
			"file":  file.Filename,
			"chars": len(doc.Content),
		})
	}

	doc.Analysis = p.Analyzer.Analyze(ctx, doc.Content)
	return doc
}
