// Package services defines the service interfaces consumed by handlers and
// the worker. Implementations live in internal/core/services.
package services

// ServiceContainer holds all the services handlers and the worker depend on.
type ServiceContainer struct {
	Auth        AuthSvcFacade
	Classifier  ClassifierSvcFacade
	Document    DocumentSvcFacade
	Review      ReviewSvcFacade
	Split       SplitSvcFacade
	Export      ExportSvcFacade
	Engagement  EngagementSvcFacade
	VendorRules VendorRuleSvcFacade
}
