package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/middleware"
)

// clientHandler exposes the firm's client and engagement reads.
type clientHandler struct {
	engagementService portssvc.EngagementSvcFacade
}

func newClientHandler(es portssvc.EngagementSvcFacade) *clientHandler {
	return &clientHandler{engagementService: es}
}

// registerClientRoutes registers routes related to clients and engagements.
func registerClientRoutes(rg *gin.RouterGroup, engagementService portssvc.EngagementSvcFacade) {
	h := newClientHandler(engagementService)

	clients := rg.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.GET("/:id/engagements", h.listEngagements)
	}
}

// listClients godoc
// @Summary List clients
// @Description Lists the firm's clients ordered by name.
// @Tags clients
// @Produce json
// @Success 200 {array} domain.Client
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	clients, err := h.engagementService.ListClients(c.Request.Context(), actor.TenantID)
	if err != nil {
		respondError(c, err, "Failed to list clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// getClient godoc
// @Summary Get a client
// @Description Retrieves one client by ID, scoped to the caller's firm.
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} domain.Client
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.engagementService.GetClient(c.Request.Context(), actor.TenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// listEngagements godoc
// @Summary List a client's engagements
// @Description Lists a client's engagements with transaction and document counts, newest year first.
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} domain.EngagementSummary
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/engagements [get]
func (h *clientHandler) listEngagements(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summaries, err := h.engagementService.ListEngagements(c.Request.Context(), actor.TenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list engagements")
		return
	}

	c.JSON(http.StatusOK, summaries)
}
