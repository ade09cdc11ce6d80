package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/middleware"
	"github.com/mapleleaf/taxprep_backend/internal/platform/config"
)

// maxUploadBytes caps document uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// documentHandler handles document intake and pipeline requests.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers routes related to documents.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg *config.Config, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	rate, err := limiter.NewRateFromFormatted(cfg.UploadRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("30-M")
	}
	uploadLimiter := limiter.New(memory.NewStore(), rate)

	documents := rg.Group("/documents")
	{
		documents.POST("", middleware.RateLimit(uploadLimiter), h.uploadDocument)
		documents.GET("", h.listDocuments)
		documents.POST("/:id/reprocess", h.reprocessDocument)
	}
}

// uploadDocument godoc
// @Summary Upload a document
// @Description Stores an uploaded bank statement or receipt file and queues it for processing.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param engagementId formData string true "Engagement ID"
// @Param file formData file true "Document file"
// @Success 201 {object} domain.Document
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) uploadDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	engagementID := c.PostForm("engagementId")
	if engagementID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "engagementId is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file exceeds the 10MB upload limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read upload"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	doc, err := h.documentService.UploadDocument(c.Request.Context(), actor, engagementID, fileHeader.Filename, mimeType, data)
	if err != nil {
		respondError(c, err, "Failed to upload document")
		return
	}

	logger.Info("Document uploaded",
		slog.String("document_id", doc.DocumentID),
		slog.String("engagement_id", engagementID))
	c.JSON(http.StatusCreated, doc)
}

// listDocuments godoc
// @Summary List documents
// @Description Lists an engagement's documents, newest upload first.
// @Tags documents
// @Produce json
// @Param engagementId query string true "Engagement ID"
// @Success 200 {array} domain.Document
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	engagementID := c.Query("engagementId")
	if engagementID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "engagementId is required"})
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), engagementID)
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, docs)
}

// reprocessDocument godoc
// @Summary Re-queue document processing
// @Description Enqueues a fresh processing job for a document, the remediation for stuck or failed processing.
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 202 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id}/reprocess [post]
func (h *documentHandler) reprocessDocument(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	documentID := c.Param("id")
	if err := h.documentService.ReprocessDocument(c.Request.Context(), actor, documentID); err != nil {
		respondError(c, err, "Failed to reprocess document")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
