package model

import (
	"time"
)

// Document represents an uploaded legal document. The record is immutable
// once created; its processing state lives in the accompanying Status.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// Processing stages, in happy-path order.
const (
	StageProcessing = "processing"
	StageExtracting = "extracting_text"
	StageAnalyzing  = "analyzing_content"
	StageDone       = "done"
	StageError      = "error"
)

// Progress checkpoints for each stage.
const (
	ProgressQueued     = 0
	ProgressExtracting = 20
	ProgressAnalyzing  = 70
	ProgressDone       = 100
)

// Status tracks a document through the background pipeline. Text,
// DocumentType, RiskScore and WordCount are only populated once the record
// reaches StageDone; Error only once it reaches StageError.
type Status struct {
	Stage        string    `json:"stage"`
	Progress     int       `json:"progress"`
	Text         string    `json:"text,omitempty"`
	DocumentType string    `json:"document_type,omitempty"`
	RiskScore    int       `json:"risk_score,omitempty"`
	WordCount    int       `json:"word_count,omitempty"`
	PageCount    int       `json:"page_count,omitempty"`
	Error        string    `json:"error,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Terminal reports whether the status has reached a final stage.
func (s *Status) Terminal() bool {
	return s.Stage == StageDone || s.Stage == StageError
}

// Party is a named participant in a contract.
type Party struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// KeyDate is a dated event mentioned in a contract.
type KeyDate struct {
	Date        string `json:"date"` // yyyy-mm-dd
	Description string `json:"description"`
}

// FinancialTerm is a monetary obligation mentioned in a contract.
type FinancialTerm struct {
	Amount      string `json:"amount"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description"`
}

// RiskyClause flags a clause the model considers risky.
type RiskyClause struct {
	Clause      string `json:"clause"`
	Description string `json:"description"`
	Risk        string `json:"risk"` // low, medium, high
}

// ContractSummary is the structured output of the summarization endpoint.
// Clients feed it back verbatim as the "schema" for Q&A and negotiation
// drafting, so field names must stay stable.
type ContractSummary struct {
	Summary        string          `json:"summary"`
	Parties        []Party         `json:"parties"`
	Dates          []KeyDate       `json:"dates"`
	FinancialTerms []FinancialTerm `json:"financial_terms"`
	Obligations    []Party         `json:"obligations"`
	RiskyClauses   []RiskyClause   `json:"risky_clauses"`
	RiskScore      int             `json:"risk_score"`
	ContractType   string          `json:"contract_type"`
}
