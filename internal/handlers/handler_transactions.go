package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/dto"
	"github.com/mapleleaf/taxprep_backend/internal/middleware"
)

// transactionHandler handles the review workflow over transactions.
type transactionHandler struct {
	reviewService portssvc.ReviewSvcFacade
	splitService  portssvc.SplitSvcFacade
}

func newTransactionHandler(rs portssvc.ReviewSvcFacade, ss portssvc.SplitSvcFacade) *transactionHandler {
	return &transactionHandler{
		reviewService: rs,
		splitService:  ss,
	}
}

// registerTransactionRoutes registers routes related to transaction review.
func registerTransactionRoutes(rg *gin.RouterGroup, reviewService portssvc.ReviewSvcFacade, splitService portssvc.SplitSvcFacade) {
	h := newTransactionHandler(reviewService, splitService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.PATCH("", h.bulkTransition)
		transactions.POST("/split", h.splitTransaction)
	}
}

// listTransactions godoc
// @Summary List transactions for review
// @Description Lists an engagement's parent transactions with classification history and split children, applying the requested filters.
// @Tags transactions
// @Produce json
// @Param engagementId query string true "Engagement ID"
// @Param state query string false "Transaction state filter" Enums(NEW, SUGGESTED, PREPARED, REVIEWED)
// @Param uncategorizedOnly query bool false "Only transactions whose latest category is Uncategorized"
// @Param lowConfidence query bool false "Only transactions with latest confidence below 70"
// @Param changedVsPriorYear query bool false "Only transactions whose latest category differs from the prior-year suggestion"
// @Success 200 {array} domain.TransactionWithDetail
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	transactions, err := h.reviewService.ListTransactions(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// bulkTransition godoc
// @Summary Apply a review action to a batch
// @Description Applies prepare, review or classify to a batch of transaction IDs. Missing IDs are skipped; a role violation rejects the whole batch.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transition body dto.BulkTransitionRequest true "Batch action"
// @Success 200 {object} dto.BulkTransitionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [patch]
func (h *transactionHandler) bulkTransition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.BulkTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.reviewService.BulkTransition(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to apply review action")
		return
	}

	logger.Info("Bulk transition applied",
		slog.String("action", req.Action),
		slog.Int("requested", len(req.IDs)),
		slog.Int("updated", len(updated)))
	c.JSON(http.StatusOK, dto.BulkTransitionResponse{Updated: updated})
}

// splitTransaction godoc
// @Summary Split a transaction
// @Description Splits one transaction into at least two children whose amounts must sum exactly to the parent's.
// @Tags transactions
// @Accept json
// @Produce json
// @Param split body dto.SplitRequest true "Split parts"
// @Success 201 {object} dto.SplitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/split [post]
func (h *transactionHandler) splitTransaction(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.splitService.SplitTransaction(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to split transaction")
		return
	}

	c.JSON(http.StatusCreated, resp)
}
