package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/core/services"
)

type ExportServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.ExportSvcFacade
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewExportService(suite.mockTxnRepo)
}

func exportTxn(id, vendorNorm string, amountCents int64, day int) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		EngagementID:  "e1",
		VendorNorm:    vendorNorm,
		AmountCents:   amountCents,
		Currency:      "CAD",
		Description:   "desc " + id,
		State:         domain.TxnReviewed,
		Date:          time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *ExportServiceTestSuite) TestExportReviewedCSV_PlainAndSplitRows() {
	ctx := context.Background()
	reviewed := domain.TxnReviewed

	parentID := "tx2"
	child1 := domain.TransactionWithDetail{
		Transaction: domain.Transaction{
			TransactionID: "tx2a",
			ParentID:      &parentID,
			AmountCents:   4000,
			Description:   "Supplies",
		},
		Classifications: []domain.Classification{{Category: "Office Expenses", Source: domain.SourceManual, Confidence: 100}},
	}
	child2 := domain.TransactionWithDetail{
		Transaction: domain.Transaction{
			TransactionID: "tx2b",
			ParentID:      &parentID,
			AmountCents:   8499,
			Description:   "Snacks, drinks",
		},
	}

	txns := []domain.TransactionWithDetail{
		{
			Transaction:     exportTxn("tx1", "Tim Hortons", 1245, 3),
			Classifications: []domain.Classification{{Category: "Meals & Entertainment", Source: domain.SourcePriorYear, Confidence: 95}},
		},
		{
			Transaction:     exportTxn("tx2", "Costco Wholesale", 12499, 5),
			Classifications: []domain.Classification{{Category: "Office Expenses", Source: domain.SourceAI, Confidence: 44}},
			Children:        []domain.TransactionWithDetail{child1, child2},
		},
	}
	suite.mockTxnRepo.On("ListTransactionDetail", ctx, "e1", &reviewed).Return(txns, nil).Once()

	csv, err := suite.service.ExportReviewedCSV(ctx, "e1")

	suite.Require().NoError(err)
	lines := strings.Split(csv, "\n")
	suite.Require().Len(lines, 4)
	suite.Equal("Date,Vendor,Amount,Currency,Category,Description", lines[0])
	suite.Equal("2025-01-03,Tim Hortons,12.45,CAD,Meals & Entertainment,desc tx1", lines[1])
	// Split parent is superseded by its children; each child carries its own
	// category and description under the parent's date and vendor.
	suite.Equal("2025-01-05,Costco Wholesale,40.00,CAD,Office Expenses,Supplies", lines[2])
	suite.Equal(`2025-01-05,Costco Wholesale,84.99,CAD,Uncategorized,"Snacks, drinks"`, lines[3])
}

func (suite *ExportServiceTestSuite) TestExportReviewedCSV_EmptyEngagement() {
	ctx := context.Background()
	reviewed := domain.TxnReviewed
	suite.mockTxnRepo.On("ListTransactionDetail", ctx, "e1", &reviewed).Return([]domain.TransactionWithDetail{}, nil).Once()

	csv, err := suite.service.ExportReviewedCSV(ctx, "e1")

	suite.Require().NoError(err)
	suite.Equal("Date,Vendor,Amount,Currency,Category,Description", csv)
}

func (suite *ExportServiceTestSuite) TestExportReviewedCSV_QuotesEmbeddedDelimiters() {
	ctx := context.Background()
	reviewed := domain.TxnReviewed
	txn := exportTxn("tx1", `Bob's "Best" Deli`, 500, 7)
	txn.Description = "lunch, team"
	txns := []domain.TransactionWithDetail{{
		Transaction:     txn,
		Classifications: []domain.Classification{{Category: "Meals & Entertainment"}},
	}}
	suite.mockTxnRepo.On("ListTransactionDetail", ctx, "e1", &reviewed).Return(txns, nil).Once()

	csv, err := suite.service.ExportReviewedCSV(ctx, "e1")

	suite.Require().NoError(err)
	suite.Contains(csv, `"Bob's ""Best"" Deli"`)
	suite.Contains(csv, `"lunch, team"`)
}

func (suite *ExportServiceTestSuite) TestExportReviewedCSV_NegativeAmount() {
	ctx := context.Background()
	reviewed := domain.TxnReviewed
	txns := []domain.TransactionWithDetail{{
		Transaction:     exportTxn("tx1", "Refund Co", -2500, 9),
		Classifications: []domain.Classification{{Category: "Office Expenses"}},
	}}
	suite.mockTxnRepo.On("ListTransactionDetail", ctx, "e1", &reviewed).Return(txns, nil).Once()

	csv, err := suite.service.ExportReviewedCSV(ctx, "e1")

	suite.Require().NoError(err)
	suite.Contains(csv, "-25.00")
}

func TestExportService(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}
