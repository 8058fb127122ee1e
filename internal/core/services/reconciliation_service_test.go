package services_test

import (
	"context"
	"testing"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/caixadigital/cashbook_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAuthorizer    *MockProjectAuthorizer
	service           portssvc.ReconciliationService
	projectID         string
	userID            string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAuthorizer = new(MockProjectAuthorizer)
	suite.service = services.NewReconciliationService(
		suite.mockReportingRepo,
		services.WithReconciliationProjectAuthorizer(suite.mockAuthorizer),
	)

	suite.projectID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.projectID, domain.RoleReadOnly).Return(nil)
}

func (suite *ReconciliationServiceTestSuite) expectBalances(stored, recomputed map[string]decimal.Decimal) {
	suite.mockReportingRepo.On("GetStoredBalances", mock.Anything, suite.projectID).Return(stored, nil).Once()
	suite.mockReportingRepo.On("GetRecomputedBalances", mock.Anything, suite.projectID).Return(recomputed, nil).Once()
}

func (suite *ReconciliationServiceTestSuite) TestVerifyProject_EmptyProjectIDRejected() {
	ctx := context.Background()

	_, err := suite.service.VerifyProject(ctx, "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTenantScopeRequired)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetStoredBalances", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestVerifyProject_CleanWhenBalancesAgree() {
	ctx := context.Background()
	accountA := uuid.NewString()
	suite.expectBalances(
		map[string]decimal.Decimal{accountA: decimal.NewFromInt(500)},
		map[string]decimal.Decimal{accountA: decimal.NewFromInt(500)},
	)

	report, err := suite.service.VerifyProject(ctx, suite.projectID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, report.Mismatches)
	suite.Require().Len(report.Accounts, 1)
	suite.True(report.Accounts[0].InBalance)
	suite.True(report.Accounts[0].Difference.IsZero())
}

func (suite *ReconciliationServiceTestSuite) TestVerifyProject_DriftAtEpsilonTolerated() {
	ctx := context.Background()
	accountA := uuid.NewString()
	// Exactly one cent of drift stays within tolerance.
	suite.expectBalances(
		map[string]decimal.Decimal{accountA: decimal.RequireFromString("100.01")},
		map[string]decimal.Decimal{accountA: decimal.RequireFromString("100.00")},
	)

	report, err := suite.service.VerifyProject(ctx, suite.projectID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, report.Mismatches)
	suite.True(report.Accounts[0].InBalance)
}

func (suite *ReconciliationServiceTestSuite) TestVerifyProject_DriftBeyondEpsilonFlagged() {
	ctx := context.Background()
	accountA := uuid.NewString()
	suite.expectBalances(
		map[string]decimal.Decimal{accountA: decimal.RequireFromString("100.011")},
		map[string]decimal.Decimal{accountA: decimal.RequireFromString("100.00")},
	)

	report, err := suite.service.VerifyProject(ctx, suite.projectID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, report.Mismatches)
	suite.False(report.Accounts[0].InBalance)
	suite.True(report.Accounts[0].Difference.Equal(decimal.RequireFromString("0.011")))
}

func (suite *ReconciliationServiceTestSuite) TestVerifyProject_CoversUnionOfBothSides() {
	ctx := context.Background()
	// storedOnly has a persisted balance but no realized history; historyOnly
	// has realized history but no stored balance. Both must be reported.
	storedOnly := "aaa-" + uuid.NewString()
	historyOnly := "bbb-" + uuid.NewString()
	suite.expectBalances(
		map[string]decimal.Decimal{storedOnly: decimal.NewFromInt(10)},
		map[string]decimal.Decimal{historyOnly: decimal.NewFromInt(20)},
	)

	report, err := suite.service.VerifyProject(ctx, suite.projectID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, report.Mismatches)
	suite.Require().Len(report.Accounts, 2)
	// Accounts come back sorted by ID.
	suite.Equal(storedOnly, report.Accounts[0].AccountID)
	suite.Equal(historyOnly, report.Accounts[1].AccountID)
	suite.True(report.Accounts[0].Difference.Equal(decimal.NewFromInt(10)))
	suite.True(report.Accounts[1].Difference.Equal(decimal.NewFromInt(-20)))
}

func (suite *ReconciliationServiceTestSuite) TestVerifyProject_DeactivatedAccountWithHistoryStaysClean() {
	ctx := context.Background()
	// An account deactivated after accumulating realized history must appear
	// on both sides with its balance intact, not as one-sided drift.
	deactivated := uuid.NewString()
	suite.expectBalances(
		map[string]decimal.Decimal{deactivated: decimal.NewFromInt(340)},
		map[string]decimal.Decimal{deactivated: decimal.NewFromInt(340)},
	)

	report, err := suite.service.VerifyProject(ctx, suite.projectID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, report.Mismatches)
	suite.Require().Len(report.Accounts, 1)
	suite.True(report.Accounts[0].InBalance)
}

func (suite *ReconciliationServiceTestSuite) TestVerifyAccount_ReturnsSingleResult() {
	ctx := context.Background()
	accountA := uuid.NewString()
	accountB := uuid.NewString()
	suite.expectBalances(
		map[string]decimal.Decimal{
			accountA: decimal.NewFromInt(500),
			accountB: decimal.NewFromInt(7),
		},
		map[string]decimal.Decimal{
			accountA: decimal.NewFromInt(500),
			accountB: decimal.NewFromInt(9),
		},
	)

	result, err := suite.service.VerifyAccount(ctx, suite.projectID, accountB, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(accountB, result.AccountID)
	suite.False(result.InBalance)
	suite.True(result.Difference.Equal(decimal.NewFromInt(-2)))
}

func (suite *ReconciliationServiceTestSuite) TestVerifyAccount_UnknownAccountNotFound() {
	ctx := context.Background()
	suite.expectBalances(
		map[string]decimal.Decimal{},
		map[string]decimal.Decimal{},
	)

	_, err := suite.service.VerifyAccount(ctx, suite.projectID, uuid.NewString(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
