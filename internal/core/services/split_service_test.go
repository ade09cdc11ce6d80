package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mapleleaf/taxprep_backend/internal/apperrors"
	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/core/services"
	"github.com/mapleleaf/taxprep_backend/internal/dto"
)

type SplitServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.SplitSvcFacade
	actor       domain.Actor
}

func (suite *SplitServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewSplitService(suite.mockTxnRepo)
	suite.actor = domain.Actor{UserID: "u1", TenantID: "t1", Name: "Sarah Chen", Role: domain.RoleJunior}
}

func (suite *SplitServiceTestSuite) parentTransaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionID: "parent-1",
		EngagementID:  "e1",
		DocumentID:    "d1",
		VendorRaw:     "Costco Wholesale #123",
		VendorNorm:    "Costco Wholesale",
		AmountCents:   10000,
		Currency:      "CAD",
		Description:   "Mixed purchase",
		State:         domain.TxnSuggested,
	}
}

func (suite *SplitServiceTestSuite) TestSplitTransaction_Success() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "parent-1").Return(suite.parentTransaction(), nil).Once()
	suite.mockTxnRepo.On("CreateSplit", ctx,
		mock.MatchedBy(func(children []domain.Transaction) bool {
			if len(children) != 2 {
				return false
			}
			for _, c := range children {
				if c.State != domain.TxnNew || c.ParentID == nil || *c.ParentID != "parent-1" {
					return false
				}
				if c.VendorRaw != "Costco Wholesale #123" || c.Currency != "CAD" {
					return false
				}
			}
			return children[0].AmountCents == 4000 && children[1].AmountCents == 6000
		}),
		mock.MatchedBy(func(cls []domain.Classification) bool {
			// Only the part with a category gets an immediate classification.
			return len(cls) == 1 &&
				cls[0].Category == "Office Expenses" &&
				cls[0].Source == domain.SourceManual &&
				cls[0].Confidence == 100 &&
				cls[0].Explanation == "Split transaction classified by Sarah Chen"
		}),
	).Return(nil).Once()

	resp, err := suite.service.SplitTransaction(ctx, suite.actor, dto.SplitRequest{
		TransactionID: "parent-1",
		Splits: []dto.SplitPart{
			{AmountCents: 4000, Category: "Office Expenses", Description: "Supplies"},
			{AmountCents: 6000},
		},
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("parent-1", resp.ParentID)
	suite.Len(resp.ChildIDs, 2)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *SplitServiceTestSuite) TestSplitTransaction_ChildDescriptionDefaultsToParent() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "parent-1").Return(suite.parentTransaction(), nil).Once()
	suite.mockTxnRepo.On("CreateSplit", ctx,
		mock.MatchedBy(func(children []domain.Transaction) bool {
			return children[0].Description == "Mixed purchase" && children[1].Description == "Half two"
		}),
		mock.AnythingOfType("[]domain.Classification"),
	).Return(nil).Once()

	_, err := suite.service.SplitTransaction(ctx, suite.actor, dto.SplitRequest{
		TransactionID: "parent-1",
		Splits: []dto.SplitPart{
			{AmountCents: 5000},
			{AmountCents: 5000, Description: "Half two"},
		},
	})

	suite.Require().NoError(err)
}

func (suite *SplitServiceTestSuite) TestSplitTransaction_AmountMismatchRejected() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "parent-1").Return(suite.parentTransaction(), nil).Once()

	resp, err := suite.service.SplitTransaction(ctx, suite.actor, dto.SplitRequest{
		TransactionID: "parent-1",
		Splits: []dto.SplitPart{
			{AmountCents: 4000},
			{AmountCents: 5900},
		},
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateSplit")
}

func (suite *SplitServiceTestSuite) TestSplitTransaction_TooFewParts() {
	ctx := context.Background()

	resp, err := suite.service.SplitTransaction(ctx, suite.actor, dto.SplitRequest{
		TransactionID: "parent-1",
		Splits:        []dto.SplitPart{{AmountCents: 10000}},
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionByID")
}

func (suite *SplitServiceTestSuite) TestSplitTransaction_ParentNotFound() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "gone").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.SplitTransaction(ctx, suite.actor, dto.SplitRequest{
		TransactionID: "gone",
		Splits: []dto.SplitPart{
			{AmountCents: 4000},
			{AmountCents: 6000},
		},
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
}

func (suite *SplitServiceTestSuite) TestSplitTransaction_NegativeAmountsStillConserve() {
	ctx := context.Background()
	parent := suite.parentTransaction()
	parent.AmountCents = 2000
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "parent-1").Return(parent, nil).Once()
	suite.mockTxnRepo.On("CreateSplit", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("[]domain.Classification")).Return(nil).Once()

	resp, err := suite.service.SplitTransaction(ctx, suite.actor, dto.SplitRequest{
		TransactionID: "parent-1",
		Splits: []dto.SplitPart{
			{AmountCents: 3000},
			{AmountCents: -1000},
		},
	})

	suite.Require().NoError(err)
	suite.Len(resp.ChildIDs, 2)
}

func TestSplitService(t *testing.T) {
	suite.Run(t, new(SplitServiceTestSuite))
}
