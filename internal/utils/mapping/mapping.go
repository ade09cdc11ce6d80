// Package mapping converts between database models and core domain types.
package mapping

import (
	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	"github.com/mapleleaf/taxprep_backend/internal/models"
)

func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

func toModelAudit(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainDocument converts a document row to its domain form.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:   m.DocumentID,
		EngagementID: m.EngagementID,
		Filename:     m.Filename,
		StoragePath:  m.StoragePath,
		MimeType:     m.MimeType,
		Status:       domain.DocumentStatus(m.Status),
		UploadedAt:   m.UploadedAt,
	}
}

// ToModelDocument converts a domain document to its row form.
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:   d.DocumentID,
		EngagementID: d.EngagementID,
		Filename:     d.Filename,
		StoragePath:  d.StoragePath,
		MimeType:     d.MimeType,
		Status:       string(d.Status),
		UploadedAt:   d.UploadedAt,
	}
}

// ToDomainTransaction converts a transaction row to its domain form.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		EngagementID:  m.EngagementID,
		DocumentID:    m.DocumentID,
		ParentID:      m.ParentID,
		Date:          m.Date,
		VendorRaw:     m.VendorRaw,
		VendorNorm:    m.VendorNorm,
		AmountCents:   m.AmountCents,
		Currency:      m.Currency,
		Description:   m.Description,
		State:         domain.TransactionState(m.State),
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToModelTransaction converts a domain transaction to its row form.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		EngagementID:  d.EngagementID,
		DocumentID:    d.DocumentID,
		ParentID:      d.ParentID,
		Date:          d.Date,
		VendorRaw:     d.VendorRaw,
		VendorNorm:    d.VendorNorm,
		AmountCents:   d.AmountCents,
		Currency:      d.Currency,
		Description:   d.Description,
		State:         string(d.State),
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainClassification converts a classification row to its domain form.
func ToDomainClassification(m models.Classification) domain.Classification {
	return domain.Classification{
		ClassificationID: m.ClassificationID,
		TransactionID:    m.TransactionID,
		Category:         m.Category,
		Source:           domain.ClassificationSource(m.Source),
		Confidence:       m.Confidence,
		Explanation:      m.Explanation,
		CreatedAt:        m.CreatedAt,
	}
}

// ToModelClassification converts a domain classification to its row form.
func ToModelClassification(d domain.Classification) models.Classification {
	return models.Classification{
		ClassificationID: d.ClassificationID,
		TransactionID:    d.TransactionID,
		Category:         d.Category,
		Source:           string(d.Source),
		Confidence:       d.Confidence,
		Explanation:      d.Explanation,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainVendorRule converts a vendor rule row to its domain form.
func ToDomainVendorRule(m models.VendorRule) domain.VendorRule {
	return domain.VendorRule{
		RuleID:          m.RuleID,
		TenantID:        m.TenantID,
		VendorContains:  m.VendorContains,
		Category:        m.Category,
		AppliesGlobally: m.AppliesGlobally,
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

// ToDomainUser converts a user row to its domain form.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		TenantID:     m.TenantID,
		Email:        m.Email,
		Name:         m.Name,
		Role:         domain.UserRole(m.Role),
		PasswordHash: m.PasswordHash,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

// ToDomainClient converts a client row to its domain form.
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:      m.ClientID,
		TenantID:      m.TenantID,
		Name:          m.Name,
		EntityType:    domain.ClientEntityType(m.EntityType),
		Province:      m.Province,
		GSTRegistered: m.GSTRegistered,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToDomainEngagement converts an engagement row to its domain form.
func ToDomainEngagement(m models.Engagement) domain.Engagement {
	return domain.Engagement{
		EngagementID: m.EngagementID,
		ClientID:     m.ClientID,
		Year:         m.Year,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}
