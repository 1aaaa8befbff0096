package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneul-lab/cruise-companion/internal/config"
	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/service"
	"github.com/haneul-lab/cruise-companion/models"
)

// ─────────────────────────────────────────────
// Mock GateService
// ─────────────────────────────────────────────

// mockGateService implements service.GateService for unit tests.
// Each method field can be overridden per test case.
type mockGateService struct {
	loginFn   func(ctx context.Context, request models.LoginRequest) (models.LoginResult, error)
	logoutFn  func(ctx context.Context, sessionID string) error
	resolveFn func(ctx context.Context, sessionID string) (models.SessionInfo, error)
}

func (m *mockGateService) Login(ctx context.Context, request models.LoginRequest) (models.LoginResult, error) {
	return m.loginFn(ctx, request)
}

func (m *mockGateService) Logout(ctx context.Context, sessionID string) error {
	return m.logoutFn(ctx, sessionID)
}

func (m *mockGateService) ResolveSession(ctx context.Context, sessionID string) (models.SessionInfo, error) {
	return m.resolveFn(ctx, sessionID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newGateHandler(gate service.GateService) *Handler {
	limiter := NewRateLimiter(config.RateLimit{LoginLimit: 100, LoginWindow: time.Minute})
	return NewHandler(&service.Services{GateService: gate}, limiter, logger.Nop())
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

func loginBody(t *testing.T, request models.LoginRequest) string {
	t.Helper()
	b, err := json.Marshal(request)
	require.NoError(t, err)
	return string(b)
}

func decodeLoginResponse(t *testing.T, rec *httptest.ResponseRecorder) models.LoginResponse {
	t.Helper()
	var response models.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	return response
}

func stubLoginResult() models.LoginResult {
	return models.LoginResult{
		Account: models.Account{AccountID: 7, Role: models.RoleCustomer, Status: models.StatusActive},
		Session: models.Session{
			SessionID: "deadbeef",
			AccountID: 7,
			CSRFToken: "signed.jwt.token",
			ExpiresAt: time.Now().Add(time.Hour),
		},
		AntiForgeryToken: "signed.jwt.token",
		NextRoute:        "/chat",
	}
}

// ─────────────────────────────────────────────
// login — success
// ─────────────────────────────────────────────

// TestLogin_Success verifies that a successful gate entry answers 200 with
// the full envelope and sets the session cookie.
func TestLogin_Success(t *testing.T) {
	gate := &mockGateService{
		loginFn: func(_ context.Context, _ models.LoginRequest) (models.LoginResult, error) {
			return stubLoginResult(), nil
		},
	}

	h := newGateHandler(gate)
	req := httptest.NewRequest(http.MethodPost, "/api/gate/login",
		strings.NewReader(loginBody(t, models.LoginRequest{DisplayName: "Greta", Contact: "555-0144", Credential: "s3cret"})))
	req = injectNopLogger(req)
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	response := decodeLoginResponse(t, rec)
	assert.True(t, response.OK)
	assert.Equal(t, "/chat", response.NextRoute)
	assert.Equal(t, "deadbeef", response.SessionToken)
	assert.Equal(t, "signed.jwt.token", response.AntiForgeryToken)
	assert.Nil(t, response.TrialRemainingHours)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "deadbeef", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

// TestLogin_TrialEnvelope verifies that a trial entry surfaces the
// remaining hours.
func TestLogin_TrialEnvelope(t *testing.T) {
	remaining := 68
	gate := &mockGateService{
		loginFn: func(_ context.Context, _ models.LoginRequest) (models.LoginResult, error) {
			result := stubLoginResult()
			result.NextRoute = "/chat/trial"
			result.TrialRemainingHours = &remaining
			return result, nil
		},
	}

	h := newGateHandler(gate)
	req := httptest.NewRequest(http.MethodPost, "/api/gate/login",
		strings.NewReader(loginBody(t, models.LoginRequest{DisplayName: "Minji", Contact: "555-0100", Credential: "1101"})))
	req = injectNopLogger(req)
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeLoginResponse(t, rec)
	assert.Equal(t, "/chat/trial", response.NextRoute)
	require.NotNil(t, response.TrialRemainingHours)
	assert.Equal(t, 68, *response.TrialRemainingHours)
}

// ─────────────────────────────────────────────
// login — failures
// ─────────────────────────────────────────────

func TestLogin_InvalidJSON(t *testing.T) {
	h := newGateHandler(&mockGateService{})
	req := httptest.NewRequest(http.MethodPost, "/api/gate/login", strings.NewReader("{not json"))
	req = injectNopLogger(req)
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	response := decodeLoginResponse(t, rec)
	assert.False(t, response.OK)
	assert.Equal(t, codeValidation, response.ErrorCode)
}

// TestLogin_ErrorTaxonomy verifies every service rejection maps to its
// documented error code and status.
func TestLogin_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"validation", service.ErrValidation, codeValidation, http.StatusBadRequest},
		{"authentication", service.ErrAuthentication, codeAuthentication, http.StatusUnauthorized},
		{"trial expired", service.ErrTrialExpired, codeTrialExpired, http.StatusForbidden},
		{"account disabled", service.ErrAccountDisabled, codeAccountDisabled, http.StatusForbidden},
		{"role mismatch", service.ErrRoleMismatch, codeRoleMismatch, http.StatusForbidden},
		{"storage", service.ErrStorage, codeStorage, http.StatusServiceUnavailable},
		{"unknown", assert.AnError, codeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := &mockGateService{
				loginFn: func(_ context.Context, _ models.LoginRequest) (models.LoginResult, error) {
					return models.LoginResult{}, tt.err
				},
			}

			h := newGateHandler(gate)
			req := httptest.NewRequest(http.MethodPost, "/api/gate/login",
				strings.NewReader(loginBody(t, models.LoginRequest{DisplayName: "X", Contact: "555", Credential: "y"})))
			req = injectNopLogger(req)
			rec := httptest.NewRecorder()

			h.login(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			response := decodeLoginResponse(t, rec)
			assert.False(t, response.OK)
			assert.Equal(t, tt.wantCode, response.ErrorCode)
			assert.Empty(t, rec.Result().Cookies(), "no session cookie on failure")
		})
	}
}

// ─────────────────────────────────────────────
// session and logout — through the router
// ─────────────────────────────────────────────

func TestSession_ReturnsResolvedContract(t *testing.T) {
	gate := &mockGateService{
		resolveFn: func(_ context.Context, sessionID string) (models.SessionInfo, error) {
			require.Equal(t, "deadbeef", sessionID)
			return models.SessionInfo{AccountID: 7, Role: models.RoleCustomer, Status: models.StatusTrial}, nil
		},
	}

	router := newGateHandler(gate).Init()
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "deadbeef"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var info models.SessionInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, int64(7), info.AccountID)
	assert.Equal(t, models.RoleCustomer, info.Role)
	assert.Equal(t, models.StatusTrial, info.Status)
}

func TestLogout_DeletesSessionAndExpiresCookie(t *testing.T) {
	var deleted string
	gate := &mockGateService{
		resolveFn: func(_ context.Context, _ string) (models.SessionInfo, error) {
			return models.SessionInfo{AccountID: 7}, nil
		},
		logoutFn: func(_ context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	}

	router := newGateHandler(gate).Init()
	req := httptest.NewRequest(http.MethodPost, "/api/gate/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "deadbeef"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "deadbeef", deleted)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0, "cookie must be expired")
}

func TestLogout_UnknownSession(t *testing.T) {
	gate := &mockGateService{
		resolveFn: func(_ context.Context, _ string) (models.SessionInfo, error) {
			return models.SessionInfo{AccountID: 7}, nil
		},
		logoutFn: func(_ context.Context, _ string) error {
			return service.ErrAuthentication
		},
	}

	router := newGateHandler(gate).Init()
	req := httptest.NewRequest(http.MethodPost, "/api/gate/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "gone"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
