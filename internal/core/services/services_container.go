package services

import (
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/cashbook_app/internal/core/ports/services"
	"github.com/caixadigital/cashbook_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Initialize project service first since other services depend on it
	container.Project = NewProjectService(repos.ProjectRepo)

	// Every tenant-scoped service authorizes through the project membership
	projectAuthorizer := container.Project.(portssvc.ProjectAuthorizerSvc)

	container.Company = NewCompanyService(
		repos.CompanyRepo,
		WithCompanyProjectAuthorizer(projectAuthorizer),
	)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountProjectAuthorizer(projectAuthorizer),
		WithCompanyRepository(repos.CompanyRepo),
	)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		WithTransactionProjectAuthorizer(projectAuthorizer),
	)

	container.User = NewUserService(
		repos.UserRepo,
		WithTokenExpiry(cfg.TokenExpiryDuration),
	)

	container.Balance = NewBalanceService(
		repos.ReportingRepo,
		WithBalanceProjectAuthorizer(projectAuthorizer),
	)

	container.Reconciliation = NewReconciliationService(
		repos.ReportingRepo,
		WithReconciliationProjectAuthorizer(projectAuthorizer),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.ProjectSvcFacade     = (*projectService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
)
