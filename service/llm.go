package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/vedant-codes/legalMindAI-Backend/config"
	"github.com/vedant-codes/legalMindAI-Backend/model"
)

// ErrGenerationFailed wraps any LLM call or response-parsing failure.
var ErrGenerationFailed = errors.New("generation failed")

const summaryPrompt = `You are a legal contract analyst. Analyze the contract below and respond with a single strict JSON object, no markdown, no commentary, with exactly these fields:
- "summary": plain-English summary of the contract (string)
- "parties": array of {"name", "role"}
- "dates": array of {"date" in yyyy-mm-dd, "description"}
- "financial_terms": array of {"amount", "date", "description"}
- "obligations": array of {"name", "role"}
- "risky_clauses": array of {"clause", "description", "risk"} where risk is one of "low", "medium", "high"
- "risk_score": integer between 0 and 100
- "contract_type": short label for the contract type

Contract text:
%s`

const qnaPrompt = `You are a legal assistant. Using only the structured contract data below, answer the user's question in plain English. If the data does not contain the answer, say so.

Contract data:
%s

Question: %s`

const negotiationPrompt = `You are a contract negotiation assistant. Using the structured contract data below, draft a negotiation email in a %s tone. Format the response as a complete email with greeting, body paragraphs and sign-off, preserving newlines. Do not add commentary outside the email.

Contract data:
%s`

// LLMService is a stateless gateway to the generative model. All three
// operations are independent: summarization parses the response as JSON,
// the other two return the model's raw text.
type LLMService struct {
	chatModel  einomodel.BaseChatModel
	configured bool
}

// NewLLMService builds the gateway on an OpenAI-compatible chat model. A
// missing API key is not an error here: the health endpoint reports it and
// calls fail downstream instead.
func NewLLMService(ctx context.Context, cfg *config.LLMConfig) (*LLMService, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &LLMService{
		chatModel:  chatModel,
		configured: cfg.APIKey != "",
	}, nil
}

// NewLLMServiceWithModel wires an existing chat model, mainly for tests.
func NewLLMServiceWithModel(m einomodel.BaseChatModel) *LLMService {
	return &LLMService{chatModel: m, configured: true}
}

// Configured reports whether an API credential was provided.
func (s *LLMService) Configured() bool {
	return s.configured
}

// Summarize sends contract text to the model and parses its strict-JSON
// answer into a ContractSummary. A parse failure discards the raw output.
func (s *LLMService) Summarize(ctx context.Context, contractText string) (*model.ContractSummary, error) {
	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(summaryPrompt, contractText)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	raw := stripCodeFence(resp.Content)

	var summary model.ContractSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in model response: %v", ErrGenerationFailed, err)
	}

	return &summary, nil
}

// AnswerQuestion embeds the caller-supplied schema object and the question
// into a prompt and returns the model's raw text. The schema's shape is not
// validated, only serialized.
func (s *LLMService) AnswerQuestion(ctx context.Context, contractSchema any, question string) (string, error) {
	serialized, err := json.Marshal(contractSchema)
	if err != nil {
		return "", fmt.Errorf("%w: failed to serialize schema: %v", ErrGenerationFailed, err)
	}

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(qnaPrompt, serialized, question)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return resp.Content, nil
}

// DraftNegotiationEmail returns an email-formatted response in the given
// tone, raw text with newlines preserved.
func (s *LLMService) DraftNegotiationEmail(ctx context.Context, contractSchema any, tone string) (string, error) {
	if tone == "" {
		tone = "professional"
	}

	serialized, err := json.Marshal(contractSchema)
	if err != nil {
		return "", fmt.Errorf("%w: failed to serialize schema: %v", ErrGenerationFailed, err)
	}

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(negotiationPrompt, tone, serialized)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return resp.Content, nil
}

// stripCodeFence removes a leading/trailing markdown fence if the model
// wrapped its JSON in one. Normalization only; the remainder must still
// parse.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
