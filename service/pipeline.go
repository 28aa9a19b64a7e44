package service

import (
	"context"

	"github.com/vedant-codes/legalMindAI-Backend/model"
	"github.com/vedant-codes/legalMindAI-Backend/pkg/logger"
)

// Processor runs the background half of the upload pipeline: extraction,
// classification and risk scoring, mutating the registry as it goes.
type Processor struct {
	store *DocumentStore
	files FileStore
}

func NewProcessor(store *DocumentStore, files FileStore) *Processor {
	return &Processor{store: store, files: files}
}

// Process takes a registered document through extraction and analysis. It is
// meant to run on its own goroutine after upload has already responded;
// every failure ends in the registry, not in a return value. Runs to
// completion once started: there is no cancellation handle.
func (p *Processor) Process(ctx context.Context, doc model.Document) {
	ctx = logger.WithFileID(ctx, doc.ID)

	p.store.SetStage(doc.ID, model.StageExtracting, model.ProgressExtracting)
	logger.Info(ctx, "extracting text", "mime_type", doc.MimeType)

	path, cleanup, err := p.files.LocalPath(ctx, doc.StoragePath)
	if err != nil {
		logger.Error(ctx, "failed to access stored file", "error", err)
		p.store.Fail(doc.ID, err.Error())
		return
	}
	defer cleanup()

	extracted, err := ExtractText(path, doc.MimeType)
	if err != nil {
		logger.Error(ctx, "extraction failed", "error", err)
		p.store.Fail(doc.ID, err.Error())
		return
	}

	p.store.SetStage(doc.ID, model.StageAnalyzing, model.ProgressAnalyzing)
	logger.Info(ctx, "analyzing content", "word_count", extracted.WordCount)

	docType := ClassifyDocument(extracted.Text)
	riskScore := RiskScore(extracted.Text)

	p.store.Complete(doc.ID, extracted.Text, docType, riskScore, extracted.WordCount, extracted.PageCount)
	logger.Info(ctx, "processing complete",
		"document_type", docType,
		"risk_score", riskScore,
		"word_count", extracted.WordCount,
	)
}

// ReleaseFile removes a document's stored file, tolerating files that are
// already gone.
func (p *Processor) ReleaseFile(ctx context.Context, doc model.Document) {
	if err := p.files.Remove(ctx, doc.StoragePath); err != nil {
		logger.Warn(ctx, "failed to remove stored file",
			"file_id", doc.ID,
			"storage_path", doc.StoragePath,
			"error", err,
		)
	}
}
