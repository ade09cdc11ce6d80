package services

import (
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/platform/config"
	"github.com/mapleleaf/taxprep_backend/internal/platform/storage"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, store storage.Storage, classifierOpts ...ClassifierOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(repos.UserRepo, cfg)
	container.Classifier = NewClassifierService(repos.VendorRuleRepo, classifierOpts...)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.JobRepo, repos.EngagementRepo, store)
	container.Review = NewReviewService(repos.TransactionRepo, repos.AuditRepo)
	container.Split = NewSplitService(repos.TransactionRepo)
	container.Export = NewExportService(repos.TransactionRepo)
	container.Engagement = NewEngagementService(repos.EngagementRepo)
	container.VendorRules = NewVendorRuleService(repos.VendorRuleRepo)

	return container
}
