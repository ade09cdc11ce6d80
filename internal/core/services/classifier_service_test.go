package services_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	"github.com/mapleleaf/taxprep_backend/internal/core/services"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
)

type ClassifierServiceTestSuite struct {
	suite.Suite
	mockRules *MockVendorRuleRepository
	service   portssvc.ClassifierSvcFacade
}

func (suite *ClassifierServiceTestSuite) SetupTest() {
	suite.mockRules = new(MockVendorRuleRepository)
	suite.service = services.NewClassifierService(
		suite.mockRules,
		services.WithRandSource(rand.New(rand.NewSource(1))),
	)
}

func (suite *ClassifierServiceTestSuite) TestClassify_PriorYearMatch() {
	ctx := context.Background()

	result, err := suite.service.Classify(ctx, "Amazon.ca Marketplace", "tenant-1")

	suite.Require().NoError(err)
	suite.Equal("Office Expenses", result.Category)
	suite.Equal(domain.SourcePriorYear, result.Source)
	suite.Equal(95, result.Confidence)
	suite.Equal(`Matched prior-year mapping: "amazon" → Office Expenses`, result.Explanation)

	// Tier 1 matched, so the rule tier was never consulted.
	suite.mockRules.AssertNotCalled(suite.T(), "ListRulesByTenant")
}

func (suite *ClassifierServiceTestSuite) TestClassify_PriorYearIsCaseInsensitive() {
	ctx := context.Background()

	result, err := suite.service.Classify(ctx, "TIM HORTONS #4521", "tenant-1")

	suite.Require().NoError(err)
	suite.Equal("Meals & Entertainment", result.Category)
	suite.Equal(domain.SourcePriorYear, result.Source)
}

func (suite *ClassifierServiceTestSuite) TestClassify_VendorRuleMatch() {
	ctx := context.Background()
	rules := []domain.VendorRule{
		{RuleID: "r1", TenantID: "tenant-1", VendorContains: "shopify", Category: "Software / Subscriptions"},
	}
	suite.mockRules.On("ListRulesByTenant", ctx, "tenant-1").Return(rules, nil).Once()

	result, err := suite.service.Classify(ctx, "Shopify Monthly", "tenant-1")

	suite.Require().NoError(err)
	suite.Equal("Software / Subscriptions", result.Category)
	suite.Equal(domain.SourceRule, result.Source)
	suite.Equal(85, result.Confidence)
	suite.Equal(`Matched vendor rule: "shopify" → Software / Subscriptions`, result.Explanation)
	suite.mockRules.AssertExpectations(suite.T())
}

func (suite *ClassifierServiceTestSuite) TestClassify_FirstRuleWinsInCreationOrder() {
	ctx := context.Background()
	rules := []domain.VendorRule{
		{RuleID: "r1", TenantID: "tenant-1", VendorContains: "print", Category: "Advertising"},
		{RuleID: "r2", TenantID: "tenant-1", VendorContains: "quick print", Category: "Office Expenses"},
	}
	suite.mockRules.On("ListRulesByTenant", ctx, "tenant-1").Return(rules, nil).Once()

	result, err := suite.service.Classify(ctx, "Quick Print Express", "tenant-1")

	suite.Require().NoError(err)
	suite.Equal("Advertising", result.Category)
}

func (suite *ClassifierServiceTestSuite) TestClassify_IgnoresOtherTenantRules() {
	ctx := context.Background()
	rules := []domain.VendorRule{
		{RuleID: "r1", TenantID: "tenant-2", VendorContains: "shopify", Category: "Advertising", AppliesGlobally: true},
	}
	suite.mockRules.On("ListRulesByTenant", ctx, "tenant-1").Return(rules, nil).Once()

	result, err := suite.service.Classify(ctx, "Shopify Monthly", "tenant-1")

	suite.Require().NoError(err)
	suite.NotEqual(domain.SourceRule, result.Source)
	suite.Equal(domain.SourceAI, result.Source)
	suite.mockRules.AssertExpectations(suite.T())
}

func (suite *ClassifierServiceTestSuite) TestClassify_FallbackNeverUncategorized() {
	ctx := context.Background()
	suite.mockRules.On("ListRulesByTenant", ctx, "tenant-1").Return([]domain.VendorRule{}, nil)

	for i := 0; i < 50; i++ {
		result, err := suite.service.Classify(ctx, "Completely Unknown Vendor", "tenant-1")

		suite.Require().NoError(err)
		suite.Equal(domain.SourceAI, result.Source)
		suite.NotEqual(domain.CategoryUncategorized, result.Category)
		suite.True(domain.IsValidCategory(result.Category))
		suite.GreaterOrEqual(result.Confidence, 30)
		suite.LessOrEqual(result.Confidence, 69)
		suite.Equal("AI suggestion based on vendor name analysis (simulated)", result.Explanation)
	}
}

func (suite *ClassifierServiceTestSuite) TestClassify_EmptyVendorFallsThrough() {
	ctx := context.Background()
	suite.mockRules.On("ListRulesByTenant", ctx, "tenant-1").Return([]domain.VendorRule{}, nil).Once()

	result, err := suite.service.Classify(ctx, "", "tenant-1")

	suite.Require().NoError(err)
	suite.Equal(domain.SourceAI, result.Source)
}

func (suite *ClassifierServiceTestSuite) TestClassify_RuleRepoFailure() {
	ctx := context.Background()
	suite.mockRules.On("ListRulesByTenant", ctx, "tenant-1").Return(nil, context.DeadlineExceeded).Once()

	_, err := suite.service.Classify(ctx, "Mystery Vendor", "tenant-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, context.DeadlineExceeded)
}

func (suite *ClassifierServiceTestSuite) TestClassify_CustomPriorYearMap() {
	ctx := context.Background()
	custom := []domain.PriorYearEntry{
		{Keyword: "acme", Category: "Professional Fees"},
	}
	service := services.NewClassifierService(
		suite.mockRules,
		services.WithPriorYearMap(custom),
		services.WithRandSource(rand.New(rand.NewSource(1))),
	)

	result, err := service.Classify(ctx, "ACME Services Ltd", "tenant-1")

	suite.Require().NoError(err)
	suite.Equal("Professional Fees", result.Category)
	suite.Equal(domain.SourcePriorYear, result.Source)
}

func TestClassifierService(t *testing.T) {
	suite.Run(t, new(ClassifierServiceTestSuite))
}
