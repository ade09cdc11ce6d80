package services

import (
	"context"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

// ClassifierSvcFacade runs the layered classification cascade.
//
// The cascade is a pure function over the vendor text and the tenant's rule
// snapshot: prior-year keywords first, tenant vendor rules second, and a
// randomized AI-style fallback last. The caller persists the result.
type ClassifierSvcFacade interface {
	// Classify decides a category, provenance, confidence and explanation for
	// a raw vendor string. It cannot fail on valid input; an empty vendor
	// falls through to the AI fallback tier.
	Classify(ctx context.Context, vendorRaw string, tenantID string) (domain.ClassificationResult, error)
}
