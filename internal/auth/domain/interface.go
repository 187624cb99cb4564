package domain

//go:generate mockgen -destination=../../mocks/mock_account_repository.go -package=mocks github.com/bdb-123/module13-is601/internal/auth/domain AccountRepository,TxManager

import (
	"context"
	"time"
)

// AccountRepository owns persistence of accounts. Methods run inside the
// caller's transaction when one is bound to the context and never commit.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmailOrUsername(ctx context.Context, identifier string) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, account *Account) error
	TouchLastLogin(ctx context.Context, accountID string, at time.Time) error
}

// TxManager runs a function inside a database transaction. A nil return
// commits, any error rolls back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
