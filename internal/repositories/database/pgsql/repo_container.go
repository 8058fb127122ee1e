package pgsql

import (
	portsrepo "github.com/caixadigital/cashbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		CompanyRepo:     companyRepo,
		ProjectRepo:     projectRepo,
		TransactionRepo: transactionRepo,
		UserRepo:        userRepo,
		ReportingRepo:   reportingRepo,
	}
}
