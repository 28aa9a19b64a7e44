package handler

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vedant-codes/legalMindAI-Backend/model"
	"github.com/vedant-codes/legalMindAI-Backend/service"
)

// extensionMime maps accepted upload extensions to their MIME types.
var extensionMime = map[string]string{
	".pdf":  service.MimePDF,
	".doc":  service.MimeDOC,
	".docx": service.MimeDOCX,
}

type DocumentHandler struct {
	store     *service.DocumentStore
	files     service.FileStore
	processor *service.Processor
	maxSize   int64
}

func NewDocumentHandler(store *service.DocumentStore, files service.FileStore, processor *service.Processor, maxSize int64) *DocumentHandler {
	return &DocumentHandler{
		store:     store,
		files:     files,
		processor: processor,
		maxSize:   maxSize,
	}
}

// Upload accepts a document, persists it and registers a status record, then
// responds immediately. Extraction and analysis continue on a background
// goroutine; clients observe them by polling the status endpoint.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No document provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	mimeType, ok := extensionMime[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, DOC and DOCX files are allowed"})
		return
	}

	if header.Size > h.maxSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File exceeds the %dMB size limit", h.maxSize>>20),
		})
		return
	}

	fileID := uuid.New().String()
	storedName := service.StoredName(fileID, header.Filename)

	storagePath, err := h.files.Save(c.Request.Context(), storedName, file, header.Size, mimeType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file: " + err.Error()})
		return
	}

	doc := model.Document{
		ID:          fileID,
		Filename:    header.Filename,
		MimeType:    mimeType,
		Size:        header.Size,
		StoragePath: storagePath,
		CreatedAt:   time.Now(),
	}
	h.store.Create(doc)

	// The request context dies with this response, so the pipeline gets a
	// fresh one. Once started it runs to completion or failure.
	go h.processor.Process(context.Background(), doc)

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"fileId":  fileID,
		"message": "File uploaded successfully. Processing started.",
		"file":    doc,
	})
}

// GetStatus returns the current processing status of a document.
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	id := c.Param("fileId")

	rec := h.store.Get(id)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fileId":        id,
		"stage":         rec.Status.Stage,
		"progress":      rec.Status.Progress,
		"document_type": rec.Status.DocumentType,
		"risk_score":    rec.Status.RiskScore,
		"word_count":    rec.Status.WordCount,
		"error":         rec.Status.Error,
		"updated_at":    rec.Status.UpdatedAt,
	})
}

// GetDocument returns the full analysis once processing is terminal, or a
// 202 with current progress while the pipeline is still running.
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("fileId")

	rec := h.store.Get(id)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if !rec.Status.Terminal() {
		c.JSON(http.StatusAccepted, gin.H{
			"fileId":   id,
			"stage":    rec.Status.Stage,
			"progress": rec.Status.Progress,
			"message":  "Document is still being processed",
		})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// List returns summaries of all fully processed documents.
func (h *DocumentHandler) List(c *gin.Context) {
	records := h.store.ListCompleted()

	result := make([]gin.H, len(records))
	for i, rec := range records {
		result[i] = gin.H{
			"id":            rec.Document.ID,
			"filename":      rec.Document.Filename,
			"size":          rec.Document.Size,
			"document_type": rec.Status.DocumentType,
			"risk_score":    rec.Status.RiskScore,
			"word_count":    rec.Status.WordCount,
			"created_at":    rec.Document.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, gin.H{"documents": result})
}

// Delete removes a document's stored file and registry record. Deleting the
// same identifier twice yields 404 on the second call.
func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("fileId")

	rec := h.store.Get(id)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	h.processor.ReleaseFile(c.Request.Context(), rec.Document)
	h.store.Delete(id)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Document deleted"})
}
