package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mapleleaf/taxprep_backend/internal/apperrors"
	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/dto"
)

// engagementService exposes client/engagement reads, always scoped to the
// acting tenant.
type engagementService struct {
	engagementRepo portsrepo.EngagementRepositoryFacade
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(engagementRepo portsrepo.EngagementRepositoryFacade) portssvc.EngagementSvcFacade {
	return &engagementService{engagementRepo: engagementRepo}
}

var _ portssvc.EngagementSvcFacade = (*engagementService)(nil)

func (s *engagementService) ListClients(ctx context.Context, tenantID string) ([]domain.Client, error) {
	clients, err := s.engagementRepo.ListClientsByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients for tenant %s: %w", tenantID, err)
	}
	return clients, nil
}

func (s *engagementService) GetClient(ctx context.Context, tenantID, clientID string) (*domain.Client, error) {
	client, err := s.engagementRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.TenantID != tenantID {
		// Obscure existence across tenants.
		return nil, apperrors.ErrNotFound
	}
	return client, nil
}

func (s *engagementService) ListEngagements(ctx context.Context, tenantID, clientID string) ([]domain.EngagementSummary, error) {
	if _, err := s.GetClient(ctx, tenantID, clientID); err != nil {
		return nil, err
	}
	summaries, err := s.engagementRepo.ListEngagementSummaries(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagements for client %s: %w", clientID, err)
	}
	return summaries, nil
}

// vendorRuleService manages the tenant vendor rules consulted by the cascade.
type vendorRuleService struct {
	ruleRepo portsrepo.VendorRuleRepositoryFacade
}

// NewVendorRuleService creates a new vendor rule service.
func NewVendorRuleService(ruleRepo portsrepo.VendorRuleRepositoryFacade) portssvc.VendorRuleSvcFacade {
	return &vendorRuleService{ruleRepo: ruleRepo}
}

var _ portssvc.VendorRuleSvcFacade = (*vendorRuleService)(nil)

func (s *vendorRuleService) ListRules(ctx context.Context, tenantID string) ([]domain.VendorRule, error) {
	rules, err := s.ruleRepo.ListRulesByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor rules for tenant %s: %w", tenantID, err)
	}
	return rules, nil
}

func (s *vendorRuleService) CreateRule(ctx context.Context, actor domain.Actor, req dto.CreateVendorRuleRequest) (*domain.VendorRule, error) {
	if !domain.IsValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, req.Category)
	}

	now := time.Now()
	rule := domain.VendorRule{
		RuleID:          uuid.NewString(),
		TenantID:        actor.TenantID,
		VendorContains:  req.VendorContains,
		Category:        req.Category,
		AppliesGlobally: req.AppliesGlobally,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to save vendor rule: %w", err)
	}
	return &rule, nil
}
