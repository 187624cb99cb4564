package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bdb-123/module13-is601/db"
	"github.com/bdb-123/module13-is601/internal/auth/domain"
	apperrors "github.com/bdb-123/module13-is601/internal/errors"
)

const accountColumns = `id, email, username, password_hash, first_name, last_name,
		       is_active, is_verified, created_at, updated_at, last_login_at`

// AccountRepository implements domain.AccountRepository on PostgreSQL.
// Every method runs against the context transaction when one is present,
// so calls inside a unit of work commit or roll back together.
type AccountRepository struct {
	db db.Querier
}

func NewAccountRepository(q db.Querier) *AccountRepository {
	return &AccountRepository{db: q}
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE id = $1 LIMIT 1;`, accountColumns)
	row := db.QuerierFrom(ctx, r.db).QueryRow(ctx, query, id)

	account, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

// FindByEmailOrUsername looks up an account by equality on either unique
// field in a single query. Returns (nil, nil) when no account matches.
func (r *AccountRepository) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE email = $1 OR username = $1 LIMIT 1;`, accountColumns)
	row := db.QuerierFrom(ctx, r.db).QueryRow(ctx, query, identifier)

	account, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by identifier: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.QuerierFrom(ctx, r.db).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1);`, email).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := db.QuerierFrom(ctx, r.db).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1);`, username).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return exists, nil
}

// Create inserts the account inside the caller's transaction. A concurrent
// writer taking the same email or username surfaces here as a
// ConstraintViolationError carrying the violated constraint name.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := db.QuerierFrom(ctx, r.db).Exec(ctx, `
		INSERT INTO accounts (id, email, username, password_hash, first_name, last_name,
		                      is_active, is_verified, created_at, updated_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, account.ID, account.Email, account.Username, account.PasswordHash,
		account.FirstName, account.LastName, account.IsActive, account.IsVerified,
		account.CreatedAt, account.UpdatedAt, account.LastLoginAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return &apperrors.ConstraintViolationError{Constraint: pgErr.ConstraintName}
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) TouchLastLogin(ctx context.Context, accountID string, at time.Time) error {
	tag, err := db.QuerierFrom(ctx, r.db).Exec(ctx, `
		UPDATE accounts SET last_login_at = $2, updated_at = $2 WHERE id = $1
	`, accountID, at)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s not found for last login update", accountID)
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.FirstName,
		&a.LastName, &a.IsActive, &a.IsVerified, &a.CreatedAt, &a.UpdatedAt, &a.LastLoginAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
