// Package pgsql implements the repository ports against PostgreSQL via pgx.
package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository against one
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		DocumentRepo:    newPgxDocumentRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		JobRepo:         newPgxJobRepository(pool),
		VendorRuleRepo:  newPgxVendorRuleRepository(pool),
		AuditRepo:       newPgxAuditRepository(pool),
		UserRepo:        newPgxUserRepository(pool),
		EngagementRepo:  newPgxEngagementRepository(pool),
	}
}
