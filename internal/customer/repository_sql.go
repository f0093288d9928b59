package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wichananm65/zoo-backend/internal/database"
)

// Queries use ? placeholders and are rebound for the active driver.
const (
	listCustomersQuery  = `SELECT email FROM Customer ORDER BY email`
	insertCustomerQuery = `INSERT INTO Customer (email) VALUES (?)`
	insertPasswordQuery = `INSERT INTO Passwords (email, password) VALUES (?, ?)`
	getPasswordQuery    = `SELECT password FROM Passwords WHERE email = ?`
)

// SQLRepository implements Repository on MySQL or PostgreSQL through sqlx.
type SQLRepository struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

func NewSQLRepository(db *sqlx.DB, queryTimeout time.Duration) *SQLRepository {
	return &SQLRepository{db: db, queryTimeout: queryTimeout}
}

func (r *SQLRepository) List(ctx context.Context) ([]Customer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	customers := make([]Customer, 0)
	if err := r.db.SelectContext(ctx, &customers, listCustomersQuery); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Create inserts the Customer row and its Passwords row in one transaction so
// a failed password insert never leaves an orphaned customer behind.
func (r *SQLRepository) Create(ctx context.Context, email, passwordHash string) (err error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin signup: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, r.db.Rebind(insertCustomerQuery), email); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	if _, err = tx.ExecContext(ctx, r.db.Rebind(insertPasswordQuery), email, passwordHash); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("insert password: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit signup: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var hash string
	if err := r.db.GetContext(ctx, &hash, r.db.Rebind(getPasswordQuery), email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get password: %w", err)
	}
	return hash, nil
}

func (r *SQLRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}
