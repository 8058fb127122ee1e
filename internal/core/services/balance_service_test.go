package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/caixadigital/cashbook_app/internal/apperrors"
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/caixadigital/cashbook_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetOpeningBalances(ctx context.Context, projectID string, asOf time.Time) ([]domain.OpeningRow, error) {
	args := m.Called(ctx, projectID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningRow), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyMovement(ctx context.Context, projectID string, from, to time.Time) ([]domain.MovementRow, error) {
	args := m.Called(ctx, projectID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementRow), args.Error(1)
}

func (m *MockReportingRepository) GetStoredBalances(ctx context.Context, projectID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetRecomputedBalances(ctx context.Context, projectID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAuthorizer    *MockProjectAuthorizer
	service           portssvc.BalanceService
	projectID         string
	userID            string
	asOf              time.Time
	rangeStart        time.Time
	rangeEnd          time.Time
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAuthorizer = new(MockProjectAuthorizer)
	suite.service = services.NewBalanceService(
		suite.mockReportingRepo,
		services.WithBalanceProjectAuthorizer(suite.mockAuthorizer),
	)

	suite.projectID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.rangeStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.rangeEnd = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *BalanceServiceTestSuite) TestComputeBalances_EmptyProjectIDRejected() {
	ctx := context.Background()

	_, err := suite.service.ComputeBalances(ctx, "", suite.asOf, suite.rangeStart, suite.rangeEnd, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTenantScopeRequired)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetOpeningBalances", mock.Anything, mock.Anything, mock.Anything)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetMonthlyMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAuthorizer.AssertNotCalled(suite.T(), "AuthorizeUserAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestComputeBalances_AuthorizationFail() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.projectID, domain.RoleReadOnly).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.ComputeBalances(ctx, suite.projectID, suite.asOf, suite.rangeStart, suite.rangeEnd, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetOpeningBalances", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestComputeBalances_MergesOpeningAndMovement() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.projectID, domain.RoleReadOnly).Return(nil).Once()

	accountA := uuid.NewString()
	accountB := uuid.NewString()

	suite.mockReportingRepo.On("GetOpeningBalances", ctx, suite.projectID, suite.asOf).Return([]domain.OpeningRow{
		{AccountID: accountA, Opening: decimal.NewFromInt(1000)},
	}, nil).Once()
	suite.mockReportingRepo.On("GetMonthlyMovement", ctx, suite.projectID, suite.rangeStart, suite.rangeEnd.AddDate(0, 0, 1)).Return([]domain.MovementRow{
		{AccountID: accountA, Month: "2025-01", Net: decimal.NewFromInt(250)},
		{AccountID: accountA, Month: "2025-02", Net: decimal.NewFromInt(-80)},
		{AccountID: accountB, Month: "2025-01", Net: decimal.NewFromInt(40)},
	}, nil).Once()

	reports, err := suite.service.ComputeBalances(ctx, suite.projectID, suite.asOf, suite.rangeStart, suite.rangeEnd, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(reports, 2)

	reportA := reports[accountA]
	suite.True(reportA.Opening.Equal(decimal.NewFromInt(1000)))
	suite.True(reportA.Monthly["2025-01"].Equal(decimal.NewFromInt(250)))
	suite.True(reportA.Monthly["2025-02"].Equal(decimal.NewFromInt(-80)))

	// Account with movement but no history before asOf opens at zero.
	reportB := reports[accountB]
	suite.True(reportB.Opening.Equal(decimal.Zero))
	suite.True(reportB.Monthly["2025-01"].Equal(decimal.NewFromInt(40)))

	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestComputeBalances_OpeningOnlyAccountHasEmptyMonths() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.projectID, domain.RoleReadOnly).Return(nil).Once()

	accountA := uuid.NewString()

	suite.mockReportingRepo.On("GetOpeningBalances", ctx, suite.projectID, suite.asOf).Return([]domain.OpeningRow{
		{AccountID: accountA, Opening: decimal.NewFromInt(-75)},
	}, nil).Once()
	suite.mockReportingRepo.On("GetMonthlyMovement", ctx, suite.projectID, suite.rangeStart, suite.rangeEnd.AddDate(0, 0, 1)).Return([]domain.MovementRow{}, nil).Once()

	reports, err := suite.service.ComputeBalances(ctx, suite.projectID, suite.asOf, suite.rangeStart, suite.rangeEnd, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(reports, 1)
	suite.True(reports[accountA].Opening.Equal(decimal.NewFromInt(-75)))
	suite.Empty(reports[accountA].Monthly)
}

func (suite *BalanceServiceTestSuite) TestComputeBalances_RangeEndCoversWholeDay() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.projectID, domain.RoleReadOnly).Return(nil).Once()

	// A settlement at 15:00 on the last day of the range sits before the bound
	// handed to storage, so the query must not cut it off at midnight.
	intraDay := time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)
	bound := suite.rangeEnd.AddDate(0, 0, 1)
	suite.True(intraDay.Before(bound))

	suite.mockReportingRepo.On("GetOpeningBalances", ctx, suite.projectID, suite.asOf).Return([]domain.OpeningRow{}, nil).Once()
	suite.mockReportingRepo.On("GetMonthlyMovement", ctx, suite.projectID, suite.rangeStart, bound).Return([]domain.MovementRow{}, nil).Once()

	_, err := suite.service.ComputeBalances(ctx, suite.projectID, suite.asOf, suite.rangeStart, suite.rangeEnd, suite.userID)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestComputeBalances_NoRowsGivesEmptyReport() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.projectID, domain.RoleReadOnly).Return(nil).Once()

	suite.mockReportingRepo.On("GetOpeningBalances", ctx, suite.projectID, suite.asOf).Return([]domain.OpeningRow{}, nil).Once()
	suite.mockReportingRepo.On("GetMonthlyMovement", ctx, suite.projectID, suite.rangeStart, suite.rangeEnd.AddDate(0, 0, 1)).Return([]domain.MovementRow{}, nil).Once()

	reports, err := suite.service.ComputeBalances(ctx, suite.projectID, suite.asOf, suite.rangeStart, suite.rangeEnd, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(reports)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
