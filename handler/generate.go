package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vedant-codes/legalMindAI-Backend/service"
)

type GenerateHandler struct {
	llm *service.LLMService
}

func NewGenerateHandler(llm *service.LLMService) *GenerateHandler {
	return &GenerateHandler{llm: llm}
}

// Health reports whether the LLM credential is configured. A missing key is
// only surfaced here; generation endpoints fail downstream instead.
func (h *GenerateHandler) Health(c *gin.Context) {
	if !h.llm.Configured() {
		c.JSON(http.StatusOK, gin.H{
			"message": "LegalMind AI backend is running, but no API key is configured",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "LegalMind AI backend is running"})
}

type summaryRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GenerateSummary turns raw contract text into a structured summary.
func (h *GenerateHandler) GenerateSummary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	summary, err := h.llm.Summarize(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate summary",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": summary})
}

type qnaRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Schema any    `json:"schema"`
}

// QnA answers a free-text question against a previously produced summary
// schema. The schema is serialized into the prompt as-is.
func (h *GenerateHandler) QnA(c *gin.Context) {
	var req qnaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	answer, err := h.llm.AnswerQuestion(c.Request.Context(), req.Schema, req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to answer question",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": answer})
}

type negotiationRequest struct {
	Schema any    `json:"schema"`
	Tone   string `json:"tone"`
}

// Negotiation drafts a negotiation email in the requested tone.
func (h *GenerateHandler) Negotiation(c *gin.Context) {
	var req negotiationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	email, err := h.llm.DraftNegotiationEmail(c.Request.Context(), req.Schema, req.Tone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to draft negotiation email",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": email})
}
