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

type EngagementServiceTestSuite struct {
	suite.Suite
	mockEngagementRepo *MockEngagementRepository
	service            portssvc.EngagementSvcFacade
}

func (suite *EngagementServiceTestSuite) SetupTest() {
	suite.mockEngagementRepo = new(MockEngagementRepository)
	suite.service = services.NewEngagementService(suite.mockEngagementRepo)
}

func (suite *EngagementServiceTestSuite) TestGetClient_WrongTenantHidden() {
	ctx := context.Background()
	suite.mockEngagementRepo.On("FindClientByID", ctx, "c1").
		Return(&domain.Client{ClientID: "c1", TenantID: "other-tenant", Name: "Northern Goods Inc."}, nil).Once()

	client, err := suite.service.GetClient(ctx, "t1", "c1")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(client)
}

func (suite *EngagementServiceTestSuite) TestGetClient_SameTenant() {
	ctx := context.Background()
	want := &domain.Client{ClientID: "c1", TenantID: "t1", Name: "Northern Goods Inc."}
	suite.mockEngagementRepo.On("FindClientByID", ctx, "c1").Return(want, nil).Once()

	client, err := suite.service.GetClient(ctx, "t1", "c1")

	suite.Require().NoError(err)
	suite.Equal(want, client)
}

func (suite *EngagementServiceTestSuite) TestListEngagements_ChecksClientTenant() {
	ctx := context.Background()
	suite.mockEngagementRepo.On("FindClientByID", ctx, "c1").
		Return(&domain.Client{ClientID: "c1", TenantID: "other-tenant"}, nil).Once()

	summaries, err := suite.service.ListEngagements(ctx, "t1", "c1")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(summaries)
	suite.mockEngagementRepo.AssertNotCalled(suite.T(), "ListEngagementSummaries", mock.Anything, mock.Anything)
}

func (suite *EngagementServiceTestSuite) TestListEngagements_Success() {
	ctx := context.Background()
	suite.mockEngagementRepo.On("FindClientByID", ctx, "c1").
		Return(&domain.Client{ClientID: "c1", TenantID: "t1"}, nil).Once()
	want := []domain.EngagementSummary{
		{Engagement: domain.Engagement{EngagementID: "e2", ClientID: "c1", Year: 2024}, TransactionCount: 12, DocumentCount: 2},
		{Engagement: domain.Engagement{EngagementID: "e1", ClientID: "c1", Year: 2023}, TransactionCount: 40, DocumentCount: 5},
	}
	suite.mockEngagementRepo.On("ListEngagementSummaries", ctx, "c1").Return(want, nil).Once()

	summaries, err := suite.service.ListEngagements(ctx, "t1", "c1")

	suite.Require().NoError(err)
	suite.Equal(want, summaries)
}

func TestEngagementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EngagementServiceTestSuite))
}

type VendorRuleServiceTestSuite struct {
	suite.Suite
	mockRuleRepo *MockVendorRuleRepository
	service      portssvc.VendorRuleSvcFacade
	actor        domain.Actor
}

func (suite *VendorRuleServiceTestSuite) SetupTest() {
	suite.mockRuleRepo = new(MockVendorRuleRepository)
	suite.service = services.NewVendorRuleService(suite.mockRuleRepo)
	suite.actor = domain.Actor{UserID: "u2", TenantID: "t1", Name: "David Thompson", Role: domain.RoleSenior}
}

func (suite *VendorRuleServiceTestSuite) TestCreateRule_Success() {
	ctx := context.Background()
	suite.mockRuleRepo.On("SaveRule", ctx, mock.MatchedBy(func(rule domain.VendorRule) bool {
		return rule.TenantID == "t1" &&
			rule.VendorContains == "purolator" &&
			rule.Category == "Bank Charges" &&
			!rule.AppliesGlobally &&
			rule.CreatedBy == "u2" &&
			rule.RuleID != ""
	})).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, suite.actor, dto.CreateVendorRuleRequest{
		VendorContains: "purolator",
		Category:       "Bank Charges",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(rule)
	suite.Equal("purolator", rule.VendorContains)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func (suite *VendorRuleServiceTestSuite) TestCreateRule_UnknownCategory() {
	ctx := context.Background()

	rule, err := suite.service.CreateRule(ctx, suite.actor, dto.CreateVendorRuleRequest{
		VendorContains: "purolator",
		Category:       "Not A Category",
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(rule)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *VendorRuleServiceTestSuite) TestListRules() {
	ctx := context.Background()
	want := []domain.VendorRule{
		{RuleID: "r1", TenantID: "t1", VendorContains: "shopify", Category: "Software / Subscriptions"},
	}
	suite.mockRuleRepo.On("ListRulesByTenant", ctx, "t1").Return(want, nil).Once()

	rules, err := suite.service.ListRules(ctx, "t1")

	suite.Require().NoError(err)
	suite.Equal(want, rules)
}

func TestVendorRuleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VendorRuleServiceTestSuite))
}
