package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bdb-123/module13-is601/internal/auth/domain"
	"github.com/bdb-123/module13-is601/internal/auth/dto"
	"github.com/bdb-123/module13-is601/internal/auth/hasher"
	apperrors "github.com/bdb-123/module13-is601/internal/errors"
)

// Unique constraint names from db/migrations. Create errors carrying these
// are remapped to the matching duplicate error.
const (
	emailConstraint    = "accounts_email_key"
	usernameConstraint = "accounts_username_key"
)

// AuthService orchestrates registration and login. Each operation runs
// inside one transaction acquired from the TxManager; the pre-flight
// duplicate checks are an optimization and the database unique constraints
// remain the authoritative arbiter.
type AuthService struct {
	repo   domain.AccountRepository
	txm    domain.TxManager
	hasher hasher.Hasher
	tokens TokenIssuer
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthService(repo domain.AccountRepository, txm domain.TxManager, h hasher.Hasher,
	tokens TokenIssuer, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		repo:   repo,
		txm:    txm,
		hasher: h,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates an account and returns a token pair for it. Input is
// validated before any storage access; email is checked before username so
// error reporting is deterministic when both are taken.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if verr := input.Validate(); verr != nil {
		return nil, verr
	}

	var resp *dto.AuthResponse
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.repo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrEmailAlreadyInUse
		}

		taken, err = s.repo.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrUsernameAlreadyInUse
		}

		passwordHash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		account := &domain.Account{
			ID:           uuid.NewString(),
			Email:        input.Email,
			Username:     input.Username,
			PasswordHash: passwordHash,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			IsActive:     true,
			IsVerified:   false,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.Create(ctx, account); err != nil {
			return err
		}

		resp, err = s.tokenResponse(account)
		return err
	})
	if err != nil {
		return nil, s.mapError(ctx, err, "registration")
	}
	return resp, nil
}

// Login authenticates by email or username and updates last_login_at. An
// unknown identifier and a wrong password produce the identical error so
// the two cases cannot be told apart.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	if verr := input.Validate(); verr != nil {
		return nil, verr
	}

	var resp *dto.AuthResponse
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		account, err := s.repo.FindByEmailOrUsername(ctx, input.Identifier)
		if err != nil {
			return err
		}
		if account == nil {
			return apperrors.ErrInvalidCredentials
		}

		ok, err := s.hasher.Verify(input.Password, account.PasswordHash)
		if err != nil {
			return err
		}
		if !ok || !account.IsActive {
			return apperrors.ErrInvalidCredentials
		}

		now := s.now().UTC()
		if err := s.repo.TouchLastLogin(ctx, account.ID, now); err != nil {
			return err
		}
		account.LastLoginAt = &now
		account.UpdatedAt = now

		resp, err = s.tokenResponse(account)
		return err
	})
	if err != nil {
		return nil, s.mapError(ctx, err, "login")
	}
	return resp, nil
}

// Profile returns the public fields of the account named by an access
// token's subject.
func (s *AuthService) Profile(ctx context.Context, accountID string) (*dto.AccountOutput, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, s.mapError(ctx, err, "profile")
	}
	if account == nil {
		// Token subject no longer resolves to an account.
		return nil, apperrors.ErrInvalidToken
	}
	return &dto.AccountOutput{
		ID:          account.ID,
		Username:    account.Username,
		Email:       account.Email,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		IsActive:    account.IsActive,
		IsVerified:  account.IsVerified,
		CreatedAt:   account.CreatedAt,
		LastLoginAt: account.LastLoginAt,
	}, nil
}

func (s *AuthService) tokenResponse(account *domain.Account) (*dto.AuthResponse, error) {
	accessToken, expiresAt, err := s.tokens.IssueAccess(account.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.tokens.IssueRefresh(account.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresAt:    expiresAt,
		UserID:       account.ID,
		Username:     account.Username,
		Email:        account.Email,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		IsActive:     account.IsActive,
		IsVerified:   account.IsVerified,
	}, nil
}

// mapError narrows errors to the closed client-facing set. Anything outside
// it is logged with full detail and surfaced as ErrInternal.
func (s *AuthService) mapError(ctx context.Context, err error, operation string) error {
	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyInUse),
		errors.Is(err, apperrors.ErrUsernameAlreadyInUse),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, hasher.ErrEmptyPassword):
		return err
	}

	var cve *apperrors.ConstraintViolationError
	if errors.As(err, &cve) {
		// Lost the insert race to a concurrent writer.
		switch cve.Constraint {
		case emailConstraint:
			return apperrors.ErrEmailAlreadyInUse
		case usernameConstraint:
			return apperrors.ErrUsernameAlreadyInUse
		}
	}

	s.logger.ErrorContext(ctx, "unexpected auth error",
		slog.String("operation", operation),
		slog.Any("error", err))
	return apperrors.ErrInternal
}
