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
	"github.com/caixadigital/cashbook_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByProject(ctx context.Context, projectID string, limit int, nextToken *string, includeInactive bool) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, projectID, limit, nextToken, includeInactive)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, projectID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, projectID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDeltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceDeltas)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDeltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceDeltas)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, updatedByUserID string, updatedAt time.Time, balanceDeltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, transactionID, updatedByUserID, updatedAt, balanceDeltas)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, projectID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock ProjectAuthorizer ---
type MockProjectAuthorizer struct {
	mock.Mock
}

var _ portssvc.ProjectAuthorizerSvc = (*MockProjectAuthorizer)(nil)

func (m *MockProjectAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, projectID string, requiredRole domain.UserProjectRole) error {
	args := m.Called(ctx, userID, projectID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountReader
	mockAuthorizer  *MockProjectAuthorizer
	service         portssvc.TransactionSvcFacade
	projectID       string
	userID          string
	cashAccount     domain.Account
	bankAccount     domain.Account
	settled         time.Time
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockAuthorizer = new(MockProjectAuthorizer)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		services.WithTransactionProjectAuthorizer(suite.mockAuthorizer),
	)

	suite.projectID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.settled = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.cashAccount = domain.Account{
		AccountID: uuid.NewString(),
		ProjectID: suite.projectID,
		IsActive:  true,
	}
	suite.bankAccount = domain.Account{
		AccountID: uuid.NewString(),
		ProjectID: suite.projectID,
		IsActive:  true,
	}
}

func (suite *TransactionServiceTestSuite) allowRole(role domain.UserProjectRole) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.projectID, role).Return(nil)
}

func (suite *TransactionServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsMap[acc.AccountID] = acc
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accountsMap, nil)
}

// deltasMatch builds a matcher asserting the exact per-account deltas.
func deltasMatch(expected map[string]decimal.Decimal) interface{} {
	return mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		if len(deltas) != len(expected) {
			return false
		}
		for accID, want := range expected {
			got, ok := deltas[accID]
			if !ok || !got.Equal(want) {
				return false
			}
		}
		return true
	})
}

// --- Create ---

func (suite *TransactionServiceTestSuite) TestCreateSettledIncome_AppliesPositiveDelta() {
	ctx := context.Background()
	suite.allowRole(domain.RoleMember)
	suite.expectAccounts(suite.cashAccount)

	amount := decimal.NewFromInt(150)
	req := dto.CreateTransactionRequest{
		Kind:        domain.KindIncome,
		AccountID:   &suite.cashAccount.AccountID,
		Amount:      amount,
		EventDate:   suite.settled,
		SettledDate: &suite.settled,
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		deltasMatch(map[string]decimal.Decimal{suite.cashAccount.AccountID: amount})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(suite.projectID, txn.ProjectID)
	suite.True(txn.IsActive)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateSettledOutflows_ApplyNegativeDelta() {
	for _, kind := range []domain.TransactionKind{domain.KindExpense, domain.KindWithdrawal, domain.KindProductionResale} {
		suite.Run(string(kind), func() {
			suite.SetupTest()
			ctx := context.Background()
			suite.allowRole(domain.RoleMember)
			suite.expectAccounts(suite.cashAccount)

			amount := decimal.NewFromInt(40)
			req := dto.CreateTransactionRequest{
				Kind:        kind,
				AccountID:   &suite.cashAccount.AccountID,
				Amount:      amount,
				EventDate:   suite.settled,
				SettledDate: &suite.settled,
			}

			suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
				deltasMatch(map[string]decimal.Decimal{suite.cashAccount.AccountID: amount.Neg()})).Return(nil).Once()

			_, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

			suite.Require().NoError(err)
			suite.mockTxnRepo.AssertExpectations(suite.T())
		})
	}
}

func (suite *TransactionServiceTestSuite) TestCreateSettledTransfer_SymmetricDeltas() {
	ctx := context.Background()
	suite.allowRole(domain.RoleMember)
	suite.expectAccounts(suite.cashAccount, suite.bankAccount)

	amount := decimal.NewFromInt(500)
	req := dto.CreateTransactionRequest{
		Kind:                 domain.KindTransfer,
		SourceAccountID:      &suite.cashAccount.AccountID,
		DestinationAccountID: &suite.bankAccount.AccountID,
		Amount:               amount,
		EventDate:            suite.settled,
		SettledDate:          &suite.settled,
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		deltasMatch(map[string]decimal.Decimal{
			suite.cashAccount.AccountID: amount.Neg(),
			suite.bankAccount.AccountID: amount,
		})).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateForecast_NoDeltas() {
	ctx := context.Background()
	suite.allowRole(domain.RoleMember)
	suite.expectAccounts(suite.cashAccount)

	req := dto.CreateTransactionRequest{
		Kind:      domain.KindExpense,
		AccountID: &suite.cashAccount.AccountID,
		Amount:    decimal.NewFromInt(75),
		EventDate: suite.settled,
		// SettledDate nil: forecast
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool { return len(deltas) == 0 })).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(txn.SettledDate)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateForecast_WithoutAccount() {
	ctx := context.Background()
	suite.allowRole(domain.RoleMember)

	req := dto.CreateTransactionRequest{
		Kind:      domain.KindIncome,
		Amount:    decimal.NewFromInt(300),
		EventDate: suite.settled,
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool { return len(deltas) == 0 })).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(txn.AccountID)
	suite.Nil(txn.SettledDate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_SettleAndAssignAccount() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)
	suite.expectAccounts(suite.cashAccount)

	prev := suite.storedIncome(300, false)
	prev.AccountID = ""
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	req := dto.UpdateTransactionRequest{
		AccountID:   &suite.cashAccount.AccountID,
		SettledDate: &suite.settled,
	}

	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		deltasMatch(map[string]decimal.Decimal{suite.cashAccount.AccountID: decimal.NewFromInt(300)})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.projectID, prev.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.cashAccount.AccountID, updated.AccountID)
	suite.Require().NotNil(updated.SettledDate)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AuthorizationFail() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.projectID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	req := dto.CreateTransactionRequest{
		Kind:      domain.KindIncome,
		AccountID: &suite.cashAccount.AccountID,
		Amount:    decimal.NewFromInt(10),
		EventDate: suite.settled,
	}

	_, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_SameAccountRejected() {
	ctx := context.Background()
	suite.allowRole(domain.RoleMember)

	req := dto.CreateTransactionRequest{
		Kind:                 domain.KindTransfer,
		SourceAccountID:      &suite.cashAccount.AccountID,
		DestinationAccountID: &suite.cashAccount.AccountID,
		Amount:               decimal.NewFromInt(10),
		EventDate:            suite.settled,
	}

	_, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmountRejected() {
	ctx := context.Background()
	suite.allowRole(domain.RoleMember)

	req := dto.CreateTransactionRequest{
		Kind:      domain.KindIncome,
		AccountID: &suite.cashAccount.AccountID,
		Amount:    decimal.Zero,
		EventDate: suite.settled,
	}

	_, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccountRejected() {
	ctx := context.Background()
	suite.allowRole(domain.RoleMember)

	inactive := suite.cashAccount
	inactive.IsActive = false
	suite.expectAccounts(inactive)

	req := dto.CreateTransactionRequest{
		Kind:        domain.KindIncome,
		AccountID:   &inactive.AccountID,
		Amount:      decimal.NewFromInt(10),
		EventDate:   suite.settled,
		SettledDate: &suite.settled,
	}

	_, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CrossProjectAccountRejected() {
	ctx := context.Background()
	suite.allowRole(domain.RoleMember)

	foreign := suite.cashAccount
	foreign.ProjectID = uuid.NewString()
	suite.expectAccounts(foreign)

	req := dto.CreateTransactionRequest{
		Kind:        domain.KindIncome,
		AccountID:   &foreign.AccountID,
		Amount:      decimal.NewFromInt(10),
		EventDate:   suite.settled,
		SettledDate: &suite.settled,
	}

	_, err := suite.service.CreateTransaction(ctx, suite.projectID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Get ---

func (suite *TransactionServiceTestSuite) TestGetTransaction_CrossProjectLooksNotFound() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)

	foreignTxn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		ProjectID:     uuid.NewString(),
		Kind:          domain.KindIncome,
		Amount:        decimal.NewFromInt(10),
		IsActive:      true,
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, foreignTxn.TransactionID).Return(foreignTxn, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, suite.projectID, foreignTxn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Update ---

func (suite *TransactionServiceTestSuite) storedIncome(amount int64, settled bool) *domain.Transaction {
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		ProjectID:     suite.projectID,
		Kind:          domain.KindIncome,
		AccountID:     suite.cashAccount.AccountID,
		Amount:        decimal.NewFromInt(amount),
		EventDate:     suite.settled,
		IsActive:      true,
	}
	if settled {
		txn.SettledDate = &suite.settled
	}
	return txn
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_SettlingAppliesDelta() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)
	suite.expectAccounts(suite.cashAccount)

	prev := suite.storedIncome(200, false)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	req := dto.UpdateTransactionRequest{SettledDate: &suite.settled}

	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		deltasMatch(map[string]decimal.Decimal{suite.cashAccount.AccountID: decimal.NewFromInt(200)})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.projectID, prev.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.SettledDate)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ClearingSettledDateReverses() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)
	suite.expectAccounts(suite.cashAccount)

	prev := suite.storedIncome(200, true)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	req := dto.UpdateTransactionRequest{SetSettledDateNull: true}

	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		deltasMatch(map[string]decimal.Decimal{suite.cashAccount.AccountID: decimal.NewFromInt(-200)})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.projectID, prev.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(updated.SettledDate)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_MovingAccountShiftsBalance() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)
	suite.expectAccounts(suite.cashAccount, suite.bankAccount)

	prev := suite.storedIncome(300, true)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	req := dto.UpdateTransactionRequest{AccountID: &suite.bankAccount.AccountID}

	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		deltasMatch(map[string]decimal.Decimal{
			suite.cashAccount.AccountID: decimal.NewFromInt(-300),
			suite.bankAccount.AccountID: decimal.NewFromInt(300),
		})).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.projectID, prev.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountChangeAppliesDifference() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)
	suite.expectAccounts(suite.cashAccount)

	prev := suite.storedIncome(100, true)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	newAmount := decimal.NewFromInt(130)
	req := dto.UpdateTransactionRequest{Amount: &newAmount}

	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		deltasMatch(map[string]decimal.Decimal{suite.cashAccount.AccountID: decimal.NewFromInt(30)})).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.projectID, prev.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Soft delete / reinstate ---

func (suite *TransactionServiceTestSuite) TestSoftDelete_ReversesContribution() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)

	prev := suite.storedIncome(250, true)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	suite.mockTxnRepo.On("UpdateTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool { return !txn.IsActive }),
		deltasMatch(map[string]decimal.Decimal{suite.cashAccount.AccountID: decimal.NewFromInt(-250)})).Return(nil).Once()

	err := suite.service.SoftDeleteTransaction(ctx, suite.projectID, prev.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestSoftDelete_AlreadyInactiveIsNoOp() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)

	prev := suite.storedIncome(250, true)
	prev.IsActive = false
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	err := suite.service.SoftDeleteTransaction(ctx, suite.projectID, prev.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestReinstate_ReappliesContribution() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)
	suite.expectAccounts(suite.cashAccount)

	prev := suite.storedIncome(250, true)
	prev.IsActive = false
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	suite.mockTxnRepo.On("UpdateTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool { return txn.IsActive }),
		deltasMatch(map[string]decimal.Decimal{suite.cashAccount.AccountID: decimal.NewFromInt(250)})).Return(nil).Once()

	reinstated, err := suite.service.ReinstateTransaction(ctx, suite.projectID, prev.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.True(reinstated.IsActive)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestReinstate_ActiveTransactionUnchanged() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)

	prev := suite.storedIncome(250, true)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	reinstated, err := suite.service.ReinstateTransaction(ctx, suite.projectID, prev.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(prev.TransactionID, reinstated.TransactionID)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestReinstate_InactiveAccountBlocks() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleMember)

	inactive := suite.cashAccount
	inactive.IsActive = false
	suite.expectAccounts(inactive)

	prev := suite.storedIncome(250, true)
	prev.IsActive = false
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	_, err := suite.service.ReinstateTransaction(ctx, suite.projectID, prev.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// --- Hard delete ---

func (suite *TransactionServiceTestSuite) TestHardDelete_ReversesAndRemoves() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.allowRole(domain.RoleAdmin)

	prev := suite.storedIncome(90, true)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	suite.mockTxnRepo.On("DeleteTransaction", ctx, prev.TransactionID, suite.userID, mock.AnythingOfType("time.Time"),
		deltasMatch(map[string]decimal.Decimal{suite.cashAccount.AccountID: decimal.NewFromInt(-90)})).Return(nil).Once()

	err := suite.service.HardDeleteTransaction(ctx, suite.projectID, prev.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestHardDelete_RequiresAdmin() {
	ctx := context.Background()
	suite.allowRole(domain.RoleReadOnly)
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.projectID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	prev := suite.storedIncome(90, true)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, prev.TransactionID).Return(prev, nil).Once()

	err := suite.service.HardDeleteTransaction(ctx, suite.projectID, prev.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
