package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"rag-assistant/internal/app"
	"rag-assistant/internal/pkg/extract"
	"rag-assistant/internal/transport/http/response"
)

type DocumentHandler struct {
	docService     *app.DocumentService
	uploadDir      string
	maxUploadBytes int64
}

type CreateDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content" binding:"required"`
}

func NewDocumentHandler(docService *app.DocumentService, uploadDir string, maxUploadBytes int64) *DocumentHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &DocumentHandler{
		docService:     docService,
		uploadDir:      uploadDir,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create ingests raw text sent as JSON.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.docService.ProcessDocument(c.Request.Context(), app.IngestInput{
		Name:    req.Name,
		Content: req.Content,
	})
	if err != nil {
		writeIngestError(c, err)
		return
	}
	response.OK(c, result)
}

// Upload accepts a multipart form with "file" and optional "name", extracts
// plain text, and ingests it.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	text, err := extract.Text(f, file.Filename, h.uploadDir)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFormat, err.Error())
		} else {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to extract text: "+err.Error())
		}
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = file.Filename
		if base := strings.TrimSuffix(name, filepath.Ext(name)); base != "" {
			name = base
		}
	}

	result, err := h.docService.ProcessDocument(c.Request.Context(), app.IngestInput{
		Name:    name,
		Content: text,
	})
	if err != nil {
		writeIngestError(c, err)
		return
	}
	response.OK(c, result)
}

// Get returns one registry row by document id, 404 when unknown.
func (h *DocumentHandler) Get(c *gin.Context) {
	documentID := strings.TrimSpace(c.Param("id"))
	if documentID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document id")
		return
	}
	doc, err := h.docService.GetDocument(documentID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get document failed")
		return
	}
	if doc == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "document not found")
		return
	}
	response.OK(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docService.ListDocuments()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}
	response.OK(c, docs)
}

// IngestionHistory returns the audit records for one document.
func (h *DocumentHandler) IngestionHistory(c *gin.Context) {
	documentID := strings.TrimSpace(c.Param("id"))
	if documentID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document id")
		return
	}
	records, err := h.docService.IngestionHistory(documentID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list ingestion history failed")
		return
	}
	response.OK(c, records)
}

func writeIngestError(c *gin.Context, err error) {
	var ingErr *app.IngestError
	switch {
	case errors.Is(err, app.ErrEmptyDocument):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.As(err, &ingErr):
		response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, "ingest failed: "+ingErr.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ingest failed: "+err.Error())
	}
}
