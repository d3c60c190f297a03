package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/tirasundara/transaction-etl/internal/config"
	"github.com/tirasundara/transaction-etl/internal/domain"
)

// Dimension rows are insert-only: an existing natural key is never updated.
const (
	insertCustomerQuery = `INSERT INTO customers (customer_id)
		VALUES ($1)
		ON CONFLICT (customer_id) DO NOTHING`

	insertProductQuery = `INSERT INTO products (product_id, product_category)
		VALUES ($1, $2)
		ON CONFLICT (product_id) DO NOTHING`

	insertTransactionTypeQuery = `INSERT INTO transaction_types (transaction_type_name)
		VALUES ($1)
		ON CONFLICT (transaction_type_name) DO NOTHING`

	insertSpendCategoryQuery = `INSERT INTO spend_categories (spend_category_name)
		VALUES ($1)
		ON CONFLICT (spend_category_name) DO NOTHING`

	insertAmountBandQuery = `INSERT INTO amount_categories (category_name, min_amount, max_amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (category_name) DO NOTHING`

	insertFactQuery = `INSERT INTO transactions
		(customer_id, product_id, transaction_date, transaction_amount,
		 transaction_type_id, spend_category_id, amount_category_id)
		VALUES ($1, $2, $3, $4,
		(SELECT transaction_type_id FROM transaction_types WHERE transaction_type_name = $5),
		(SELECT spend_category_id FROM spend_categories WHERE spend_category_name = $6),
		(SELECT amount_category_id FROM amount_categories WHERE category_name = $7))`
)

// PostgresStore implements the TransactionStore interface on a Postgres
// database via lib/pq.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection with the given settings and verifies it
func NewPostgresStore(cfg config.DatabaseConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "opening database connection")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreWithDB wraps an existing connection. Used by tests.
func NewPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close releases the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveBatch applies all entity sets inside one transaction, dimension rows
// before the fact rows that reference them. Any failure rolls back the whole
// batch; the returned error carries batch-shape diagnostics.
func (s *PostgresStore) SaveBatch(ctx context.Context, sets domain.EntitySets) (domain.WriteSummary, error) {
	var summary domain.WriteSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, errors.Wrap(err, "starting transaction")
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	for _, customer := range sets.Customers {
		if _, err := tx.ExecContext(ctx, insertCustomerQuery, customer.CustomerID); err != nil {
			return summary, diagnose(err, "inserting customers", sets)
		}
	}
	summary.Customers = len(sets.Customers)

	for _, product := range sets.Products {
		if _, err := tx.ExecContext(ctx, insertProductQuery, product.ProductID, product.ProductCategory); err != nil {
			return summary, diagnose(err, "inserting products", sets)
		}
	}
	summary.Products = len(sets.Products)

	for _, transactionType := range sets.TransactionTypes {
		if _, err := tx.ExecContext(ctx, insertTransactionTypeQuery, transactionType.Name); err != nil {
			return summary, diagnose(err, "inserting transaction types", sets)
		}
	}
	summary.TransactionTypes = len(sets.TransactionTypes)

	for _, spendCategory := range sets.SpendCategories {
		if _, err := tx.ExecContext(ctx, insertSpendCategoryQuery, spendCategory.Name); err != nil {
			return summary, diagnose(err, "inserting spend categories", sets)
		}
	}
	summary.SpendCategories = len(sets.SpendCategories)

	for _, band := range sets.AmountBands {
		if _, err := tx.ExecContext(ctx, insertAmountBandQuery,
			string(band.Name), band.MinAmount.String(), band.MaxAmount.String()); err != nil {
			return summary, diagnose(err, "inserting amount categories", sets)
		}
	}
	summary.AmountBands = len(sets.AmountBands)

	for _, fact := range sets.Facts {
		if _, err := tx.ExecContext(ctx, insertFactQuery,
			fact.CustomerID,
			fact.ProductID,
			fact.TransactionDate,
			fact.Amount.String(),
			fact.TransactionType,
			fact.SpendCategory,
			string(fact.AmountCategory)); err != nil {
			return summary, diagnose(err, "inserting transactions", sets)
		}
	}
	summary.Facts = len(sets.Facts)

	if err := tx.Commit(); err != nil {
		return summary, diagnose(err, "committing transaction", sets)
	}
	committed = true

	return summary, nil
}

// diagnose wraps a write error with batch-shape information for operator
// visibility.
func diagnose(err error, action string, sets domain.EntitySets) error {
	shape := fmt.Sprintf("batch shape: %d facts, %d customers, %d products, %d types, %d spend categories",
		len(sets.Facts), len(sets.Customers), len(sets.Products),
		len(sets.TransactionTypes), len(sets.SpendCategories))
	return errors.Wrap(err, strings.Join([]string{action, shape}, "; "))
}
