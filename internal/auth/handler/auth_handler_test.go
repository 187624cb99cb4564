package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdb-123/module13-is601/internal/auth/domain"
	"github.com/bdb-123/module13-is601/internal/auth/handler"
	"github.com/bdb-123/module13-is601/internal/auth/service"
	apperrors "github.com/bdb-123/module13-is601/internal/errors"
	"github.com/bdb-123/module13-is601/internal/mocks"
)

type handlerMocks struct {
	repo   *mocks.MockAccountRepository
	txm    *mocks.MockTxManager
	hasher *mocks.MockHasher
	tokens *mocks.MockTokenIssuer
}

func newTestApp(t *testing.T) (*fiber.App, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := handlerMocks{
		repo:   mocks.NewMockAccountRepository(ctrl),
		txm:    mocks.NewMockTxManager(ctrl),
		hasher: mocks.NewMockHasher(ctrl),
		tokens: mocks.NewMockTokenIssuer(ctrl),
	}
	authService := service.NewAuthService(m.repo, m.txm, m.hasher, m.tokens, nil)
	authHandler := handler.NewAuthHandler(authService, m.tokens)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)
	return app, m
}

func passThroughTx(m handlerMocks) {
	m.txm.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerPayload() map[string]string {
	return map[string]string{
		"email":            "a@b.com",
		"username":         "alice",
		"first_name":       "A",
		"last_name":        "B",
		"password":         "Secur3Pass",
		"confirm_password": "Secur3Pass",
	}
}

func TestRegisterEndpoint_Success(t *testing.T) {
	app, m := newTestApp(t)
	passThroughTx(m)

	m.repo.EXPECT().ExistsByEmail(gomock.Any(), "a@b.com").Return(false, nil)
	m.repo.EXPECT().ExistsByUsername(gomock.Any(), "alice").Return(false, nil)
	m.hasher.EXPECT().Hash("Secur3Pass").Return("hashed", nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.tokens.EXPECT().IssueAccess(gomock.Any()).Return("access-token", time.Now().Add(30*time.Minute), nil)
	m.tokens.EXPECT().IssueRefresh(gomock.Any()).Return("refresh-token", time.Time{}, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/register", registerPayload()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "access-token", body["access_token"])
	assert.Equal(t, "refresh-token", body["refresh_token"])
	assert.Equal(t, "bearer", body["token_type"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, true, body["is_active"])
	assert.Equal(t, false, body["is_verified"])
	assert.NotContains(t, body, "password_hash")
}

func TestRegisterEndpoint_MalformedBody(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader([]byte("{not json")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterEndpoint_ValidationErrors(t *testing.T) {
	app, _ := newTestApp(t)

	payload := registerPayload()
	payload["password"] = "weak"
	payload["confirm_password"] = "weak"

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/register", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "validation failed", body["error"])
	assert.NotEmpty(t, body["fields"])
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	app, m := newTestApp(t)
	passThroughTx(m)

	m.repo.EXPECT().ExistsByEmail(gomock.Any(), "a@b.com").Return(true, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/register", registerPayload()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, apperrors.ErrEmailAlreadyInUse.Error(), body["error"])
}

func TestLoginEndpoint_Success(t *testing.T) {
	app, m := newTestApp(t)
	passThroughTx(m)

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           "account-123",
		Email:        "a@b.com",
		Username:     "alice",
		PasswordHash: "hashed",
		FirstName:    "A",
		LastName:     "B",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.repo.EXPECT().FindByEmailOrUsername(gomock.Any(), "a@b.com").Return(account, nil)
	m.hasher.EXPECT().Verify("Secur3Pass", "hashed").Return(true, nil)
	m.repo.EXPECT().TouchLastLogin(gomock.Any(), "account-123", gomock.Any()).Return(nil)
	m.tokens.EXPECT().IssueAccess("account-123").Return("access-token", now.Add(30*time.Minute), nil)
	m.tokens.EXPECT().IssueRefresh("account-123").Return("refresh-token", time.Time{}, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/login",
		map[string]string{"identifier": "a@b.com", "password": "Secur3Pass"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "account-123", body["user_id"])
	assert.Equal(t, "access-token", body["access_token"])
}

func TestLoginEndpoint_IdenticalErrorForBothFailureModes(t *testing.T) {
	app, m := newTestApp(t)
	passThroughTx(m)

	account := &domain.Account{
		ID:           "account-123",
		PasswordHash: "hashed",
		IsActive:     true,
	}
	m.repo.EXPECT().FindByEmailOrUsername(gomock.Any(), "ghost@b.com").Return(nil, nil)
	m.repo.EXPECT().FindByEmailOrUsername(gomock.Any(), "a@b.com").Return(account, nil)
	m.hasher.EXPECT().Verify("wrong", "hashed").Return(false, nil)

	readBody := func(identifier string) (int, []byte) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/login",
			map[string]string{"identifier": identifier, "password": "wrong"}))
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, raw
	}

	unknownStatus, unknownBody := readBody("ghost@b.com")
	wrongStatus, wrongBody := readBody("a@b.com")

	assert.Equal(t, fiber.StatusUnauthorized, unknownStatus)
	assert.Equal(t, unknownStatus, wrongStatus)
	// Byte-for-byte identical payloads, no user enumeration.
	assert.Equal(t, unknownBody, wrongBody)
}

func TestMeEndpoint(t *testing.T) {
	now := time.Now().UTC()
	account := &domain.Account{
		ID:        "account-123",
		Email:     "a@b.com",
		Username:  "alice",
		FirstName: "A",
		LastName:  "B",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	accessClaims := &service.TokenClaims{
		Kind:             service.TokenKindAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "account-123"},
	}
	refreshClaims := &service.TokenClaims{
		Kind:             service.TokenKindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "account-123"},
	}

	t.Run("valid access token", func(t *testing.T) {
		app, m := newTestApp(t)
		m.tokens.EXPECT().Verify("good-token").Return(accessClaims, nil)
		m.repo.EXPECT().FindByID(gomock.Any(), "account-123").Return(account, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "alice", body["username"])
		assert.NotContains(t, body, "password_hash")
	})

	t.Run("missing header", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		app, m := newTestApp(t)
		m.tokens.EXPECT().Verify("stale-token").Return(nil, apperrors.ErrExpiredToken)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer stale-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		app, m := newTestApp(t)
		m.tokens.EXPECT().Verify("refresh-token").Return(refreshClaims, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer refresh-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
