package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vedant-codes/legalMindAI-Backend/config"
	"github.com/vedant-codes/legalMindAI-Backend/model"
)

// Record pairs a document with its processing status.
type Record struct {
	Document model.Document `json:"document"`
	Status   model.Status   `json:"status"`
}

// DocumentStore is the in-memory processing registry. It is the single
// source of truth for upload/extraction/analysis progress. Records live only
// in process memory and are lost on restart.
type DocumentStore struct {
	mu           sync.RWMutex
	records      map[string]*Record
	maxDocuments int // terminal records to keep, 0 = unlimited

	// OnEvict, when set, is called with a copy of each evicted record so the
	// owner can release the stored file. Invoked on a separate goroutine; it
	// must not call back into the store.
	OnEvict func(rec Record)
}

// NewDocumentStore creates a registry. Callers own the instance and inject it
// where needed; there is no package-level singleton.
func NewDocumentStore(cfg *config.StoreConfig) *DocumentStore {
	maxDocuments := 0
	if cfg != nil && cfg.MaxDocuments > 0 {
		maxDocuments = cfg.MaxDocuments
	}
	return &DocumentStore{
		records:      make(map[string]*Record),
		maxDocuments: maxDocuments,
	}
}

// Create registers a new document with stage "processing" and progress 0.
func (s *DocumentStore) Create(doc model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[doc.ID] = &Record{
		Document: doc,
		Status: model.Status{
			Stage:     model.StageProcessing,
			Progress:  model.ProgressQueued,
			UpdatedAt: time.Now(),
		},
	}

	s.evictIfNeeded()
}

// Get returns a copy of the record, or nil if unknown. Copies keep callers
// from mutating registry state outside the lock.
func (s *DocumentStore) Get(id string) *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil
	}
	copied := *r
	return &copied
}

// SetStage advances a record to the given stage and progress. Progress never
// regresses and terminal records are never reopened.
func (s *DocumentStore) SetStage(id, stage string, progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.Status.Terminal() {
		return
	}
	if progress < r.Status.Progress {
		progress = r.Status.Progress
	}
	r.Status.Stage = stage
	r.Status.Progress = progress
	r.Status.UpdatedAt = time.Now()
}

// Complete transitions a record to "done" and sets all analysis results in a
// single critical section, so a reader never observes text without its
// derived type and score.
func (s *DocumentStore) Complete(id, text, documentType string, riskScore, wordCount, pageCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.Status.Terminal() {
		return
	}
	r.Status.Stage = model.StageDone
	r.Status.Progress = model.ProgressDone
	r.Status.Text = text
	r.Status.DocumentType = documentType
	r.Status.RiskScore = riskScore
	r.Status.WordCount = wordCount
	r.Status.PageCount = pageCount
	r.Status.UpdatedAt = time.Now()
}

// Fail transitions a record to "error" with the failure message.
func (s *DocumentStore) Fail(id, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.Status.Terminal() {
		return
	}
	r.Status.Stage = model.StageError
	r.Status.Error = errMsg
	r.Status.UpdatedAt = time.Now()
}

// Delete removes a record. It reports whether the record existed; releasing
// the stored file is the caller's job.
func (s *DocumentStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[id]
	delete(s.records, id)
	return ok
}

// ListCompleted returns copies of all records that reached "done". Iteration
// order is unspecified.
func (s *DocumentStore) ListCompleted() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Record
	for _, r := range s.records {
		if r.Status.Stage == model.StageDone {
			copied := *r
			result = append(result, &copied)
		}
	}
	return result
}

// Count returns the number of records in the registry.
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// evictIfNeeded removes the oldest terminal records when the registry
// exceeds maxDocuments. In-flight records are never evicted, so the cap can
// be temporarily overshot by concurrent uploads.
// Must be called with lock held.
func (s *DocumentStore) evictIfNeeded() {
	if s.maxDocuments <= 0 || len(s.records) <= s.maxDocuments {
		return
	}

	var terminal []*Record
	ids := make(map[*Record]string, len(s.records))
	for id, r := range s.records {
		if r.Status.Terminal() {
			terminal = append(terminal, r)
			ids[r] = id
		}
	}
	sort.Slice(terminal, func(i, j int) bool {
		return terminal[i].Document.CreatedAt.Before(terminal[j].Document.CreatedAt)
	})

	excess := len(s.records) - s.maxDocuments
	for i := 0; i < excess && i < len(terminal); i++ {
		id := ids[terminal[i]]
		slog.Info("evicting old document record",
			"file_id", id,
			"created_at", terminal[i].Document.CreatedAt,
		)
		if s.OnEvict != nil {
			go s.OnEvict(*terminal[i])
		}
		delete(s.records, id)
	}
}
