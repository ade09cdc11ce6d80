package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/dto"
	"github.com/mapleleaf/taxprep_backend/internal/middleware"
)

// vendorRuleHandler manages the firm's vendor classification rules.
type vendorRuleHandler struct {
	vendorRuleService portssvc.VendorRuleSvcFacade
}

func newVendorRuleHandler(vs portssvc.VendorRuleSvcFacade) *vendorRuleHandler {
	return &vendorRuleHandler{vendorRuleService: vs}
}

// registerVendorRuleRoutes registers routes related to vendor rules.
func registerVendorRuleRoutes(rg *gin.RouterGroup, vendorRuleService portssvc.VendorRuleSvcFacade) {
	h := newVendorRuleHandler(vendorRuleService)

	rules := rg.Group("/vendor-rules")
	{
		rules.GET("", h.listRules)
		rules.POST("", h.createRule)
	}
}

// listRules godoc
// @Summary List vendor rules
// @Description Lists the firm's vendor rules in match order.
// @Tags vendor-rules
// @Produce json
// @Success 200 {array} domain.VendorRule
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendor-rules [get]
func (h *vendorRuleHandler) listRules(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rules, err := h.vendorRuleService.ListRules(c.Request.Context(), actor.TenantID)
	if err != nil {
		respondError(c, err, "Failed to list vendor rules")
		return
	}

	c.JSON(http.StatusOK, rules)
}

// createRule godoc
// @Summary Create a vendor rule
// @Description Adds a substring rule mapping vendor text to a category for future classification.
// @Tags vendor-rules
// @Accept json
// @Produce json
// @Param rule body dto.CreateVendorRuleRequest true "Rule details"
// @Success 201 {object} domain.VendorRule
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendor-rules [post]
func (h *vendorRuleHandler) createRule(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateVendorRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	rule, err := h.vendorRuleService.CreateRule(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create vendor rule")
		return
	}

	c.JSON(http.StatusCreated, rule)
}
