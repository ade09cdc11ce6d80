package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
)

const exportHeader = "Date,Vendor,Amount,Currency,Category,Description"

// exportService flattens reviewed transactions into tabular CSV for the
// firm's downstream tooling.
type exportService struct {
	txnRepo portsrepo.TransactionReader
}

// NewExportService creates a new export service.
func NewExportService(txnRepo portsrepo.TransactionReader) portssvc.ExportSvcFacade {
	return &exportService{txnRepo: txnRepo}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// ExportReviewedCSV renders one CSV row per leaf transaction: a childless
// REVIEWED parent exports itself; a split parent is superseded by its
// children, each carrying its own category and description.
func (s *exportService) ExportReviewedCSV(ctx context.Context, engagementID string) (string, error) {
	reviewed := domain.TxnReviewed
	txns, err := s.txnRepo.ListTransactionDetail(ctx, engagementID, &reviewed)
	if err != nil {
		return "", fmt.Errorf("failed to load reviewed transactions for engagement %s: %w", engagementID, err)
	}

	var b strings.Builder
	b.WriteString(exportHeader)

	for i := range txns {
		txn := &txns[i]
		if len(txn.Children) > 0 {
			for j := range txn.Children {
				child := &txn.Children[j]
				writeExportRow(&b, txn, child.LatestClassification(), child.AmountCents, child.Description)
			}
			continue
		}
		writeExportRow(&b, txn, txn.LatestClassification(), txn.AmountCents, txn.Description)
	}

	return b.String(), nil
}

func writeExportRow(b *strings.Builder, parent *domain.TransactionWithDetail, latest *domain.Classification, amountCents int64, description string) {
	category := domain.CategoryUncategorized
	if latest != nil {
		category = latest.Category
	}

	vendor := parent.VendorNorm
	if vendor == "" {
		vendor = parent.VendorRaw
	}

	amount := decimal.NewFromInt(amountCents).Div(decimal.NewFromInt(100)).StringFixed(2)

	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		parent.Date.Format("2006-01-02"),
		csvEscape(vendor),
		amount,
		parent.Currency,
		csvEscape(category),
		csvEscape(description),
	}, ","))
}

// csvEscape quotes a field when it contains a comma, quote or newline.
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
