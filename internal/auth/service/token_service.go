package service

//go:generate mockgen -destination=../../mocks/mock_token_issuer.go -package=mocks github.com/bdb-123/module13-is601/internal/auth/service TokenIssuer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/bdb-123/module13-is601/internal/errors"
)

type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims are the claims embedded in every issued token. The kind is
// carried in the "type" claim; iat is always present to permit anti-replay
// extensions without a protocol change.
type TokenClaims struct {
	jwt.RegisteredClaims
	Kind TokenKind `json:"type"`
}

type TokenIssuer interface {
	IssueAccess(subject string) (string, time.Time, error)
	IssueRefresh(subject string) (string, time.Time, error)
	Verify(tokenString string) (*TokenClaims, error)
}

// TokenService issues and verifies signed, expiring JWTs. Verification is
// stateless: no store, no revocation.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService builds a TokenService signing with the given HMAC
// algorithm name (HS256, HS384 or HS512).
func NewTokenService(secret []byte, algorithm string, accessTTL, refreshTTL time.Duration) *TokenService {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	return &TokenService{
		secret:     secret,
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (ts *TokenService) IssueAccess(subject string) (string, time.Time, error) {
	return ts.issue(subject, TokenKindAccess, ts.accessTTL)
}

func (ts *TokenService) IssueRefresh(subject string) (string, time.Time, error) {
	return ts.issue(subject, TokenKindRefresh, ts.refreshTTL)
}

func (ts *TokenService) issue(subject string, kind TokenKind, ttl time.Duration) (string, time.Time, error) {
	now := ts.now()
	expiresAt := now.Add(ttl)

	claims := TokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(ts.method, claims).SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token. Expired tokens map to
// ErrExpiredToken, everything else that fails maps to ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	}, jwt.WithTimeFunc(ts.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrExpiredToken
		}
		return nil, apperrors.ErrInvalidToken
	}
	if !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
