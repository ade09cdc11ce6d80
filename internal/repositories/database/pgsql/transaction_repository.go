package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mapleleaf/taxprep_backend/internal/apperrors"
	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	"github.com/mapleleaf/taxprep_backend/internal/models"
	"github.com/mapleleaf/taxprep_backend/internal/utils/mapping"
)

const transactionColumns = `transaction_id, engagement_id, document_id, parent_id, date, vendor_raw, vendor_norm,
	amount_cents, currency, description, state, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

const insertClassificationQuery = `
	INSERT INTO classifications (classification_id, transaction_id, category, source, confidence, explanation, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.EngagementID, &m.DocumentID, &m.ParentID, &m.Date, &m.VendorRaw, &m.VendorNorm,
		&m.AmountCents, &m.Currency, &m.Description, &m.State,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertTransactionQuery,
		m.TransactionID, m.EngagementID, m.DocumentID, m.ParentID, m.Date, m.VendorRaw, m.VendorNorm,
		m.AmountCents, m.Currency, m.Description, m.State,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

func (r *PgxTransactionRepository) UpdateTransactionState(ctx context.Context, transactionID string, state domain.TransactionState, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET state = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, string(state), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s state: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CreateSplit inserts split children and any immediate classifications inside
// one database transaction; a failure rolls everything back.
func (r *PgxTransactionRepository) CreateSplit(ctx context.Context, children []domain.Transaction, classifications []domain.Classification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, child := range children {
		m := mapping.ToModelTransaction(child)
		batch.Queue(insertTransactionQuery,
			m.TransactionID, m.EngagementID, m.DocumentID, m.ParentID, m.Date, m.VendorRaw, m.VendorNorm,
			m.AmountCents, m.Currency, m.Description, m.State,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	for _, cls := range classifications {
		m := mapping.ToModelClassification(cls)
		batch.Queue(insertClassificationQuery,
			m.ClassificationID, m.TransactionID, m.Category, m.Source, m.Confidence, m.Explanation, m.CreatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to insert split rows: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close split batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) SaveClassification(ctx context.Context, cls domain.Classification) error {
	m := mapping.ToModelClassification(cls)
	_, err := r.Pool.Exec(ctx, insertClassificationQuery,
		m.ClassificationID, m.TransactionID, m.Category, m.Source, m.Confidence, m.Explanation, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save classification for transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindLatestClassification(ctx context.Context, transactionID string) (*domain.Classification, error) {
	query := `
		SELECT classification_id, transaction_id, category, source, confidence, explanation, created_at
		FROM classifications
		WHERE transaction_id = $1
		ORDER BY created_at DESC, classification_id DESC
		LIMIT 1;
	`
	var m models.Classification
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.ClassificationID, &m.TransactionID, &m.Category, &m.Source, &m.Confidence, &m.Explanation, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest classification for %s: %w", transactionID, err)
	}
	cls := mapping.ToDomainClassification(m)
	return &cls, nil
}

// ListTransactionDetail loads parents (date ascending), their children, and
// everyone's classification history (newest first) in three queries.
func (r *PgxTransactionRepository) ListTransactionDetail(ctx context.Context, engagementID string, state *domain.TransactionState) ([]domain.TransactionWithDetail, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE engagement_id = $1 AND parent_id IS NULL
	`
	args := []any{engagementID}
	if state != nil {
		query += ` AND state = $2`
		args = append(args, string(*state))
	}
	query += ` ORDER BY date ASC, created_at ASC;`

	parents, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return []domain.TransactionWithDetail{}, nil
	}

	parentIDs := make([]string, len(parents))
	details := make([]domain.TransactionWithDetail, len(parents))
	byParent := make(map[string]*domain.TransactionWithDetail, len(parents))
	for i, p := range parents {
		parentIDs[i] = p.TransactionID
		details[i] = domain.TransactionWithDetail{Transaction: p}
		byParent[p.TransactionID] = &details[i]
	}

	childQuery := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE parent_id = ANY($1)
		ORDER BY date ASC, created_at ASC;`
	children, err := r.queryTransactions(ctx, childQuery, parentIDs)
	if err != nil {
		return nil, err
	}

	allIDs := append([]string{}, parentIDs...)
	grouped := make(map[string][]domain.TransactionWithDetail)
	for _, child := range children {
		allIDs = append(allIDs, child.TransactionID)
		grouped[*child.ParentID] = append(grouped[*child.ParentID], domain.TransactionWithDetail{Transaction: child})
	}
	childDetails := make(map[string]*domain.TransactionWithDetail, len(children))
	for parentID, kids := range grouped {
		parent := byParent[parentID]
		parent.Children = kids
		for i := range parent.Children {
			childDetails[parent.Children[i].TransactionID] = &parent.Children[i]
		}
	}

	clsQuery := `
		SELECT classification_id, transaction_id, category, source, confidence, explanation, created_at
		FROM classifications
		WHERE transaction_id = ANY($1)
		ORDER BY created_at DESC, classification_id DESC;
	`
	rows, err := r.Pool.Query(ctx, clsQuery, allIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list classifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Classification
		if err := rows.Scan(&m.ClassificationID, &m.TransactionID, &m.Category, &m.Source, &m.Confidence, &m.Explanation, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan classification row: %w", err)
		}
		cls := mapping.ToDomainClassification(m)
		if target, ok := byParent[cls.TransactionID]; ok {
			target.Classifications = append(target.Classifications, cls)
		} else if target, ok := childDetails[cls.TransactionID]; ok {
			target.Classifications = append(target.Classifications, cls)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read classification rows: %w", err)
	}

	return details, nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	return txns, rows.Err()
}
