package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/brandoverts/brandoverts-api/internal/api/http/handlers"
	"github.com/brandoverts/brandoverts-api/internal/auth"
	"github.com/brandoverts/brandoverts-api/internal/config"
	"github.com/brandoverts/brandoverts-api/internal/domain"
	"github.com/brandoverts/brandoverts-api/internal/observability"
	"github.com/brandoverts/brandoverts-api/internal/service"
)

const testCookie = "brandoverts-auth-token"

// memUsers is the minimal in-memory user store the auth flow needs.
type memUsers struct {
	users map[primitive.ObjectID]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *memUsers) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUsers) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUsers) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (r *memUsers) GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUsers) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUsers) SaveToken(ctx context.Context, id primitive.ObjectID, token string) error {
	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.Token = token
	return nil
}

func (r *memUsers) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.User, error) {
	out := make(map[primitive.ObjectID]*domain.User, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

func newTestApp(t *testing.T, users *memUsers) (*fiber.App, *observability.Metrics) {
	t.Helper()

	authCfg := config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLDays:  7,
		BcryptCost:    bcrypt.MinCost,
		CookieName:    testCookie,
		AdminUsername: "BrandovertsAdmin",
		AdminPassword: "admin-password",
	}

	authService := service.NewAuthService(authCfg, users)
	guard := auth.NewGuard(authService.TokenManager(), authCfg.CookieName)

	metrics := observability.NewMetrics()
	app := NewApp(zap.NewNop(), metrics)
	RegisterRoutes(app, Handlers{
		Health:    handlers.NewHealthHandler(nil),
		Auth:      handlers.NewAuthHandler(authService, authCfg, false),
		Blogs:     handlers.NewBlogsHandler(nil, authService.Verifier(), authCfg.CookieName),
		Leads:     handlers.NewLeadsHandler(nil),
		Enquiries: handlers.NewEnquiriesHandler(nil),
		Pages:     handlers.NewPagesHandler(),
	}, guard)
	return app, metrics
}

func jsonRequest(method, target string, payload interface{}) *nethttp.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func parseBody(t *testing.T, resp *nethttp.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func sessionCookie(resp *nethttp.Response) *nethttp.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == testCookie {
			return cookie
		}
	}
	return nil
}

func TestAdminLoginSetsSessionCookie(t *testing.T) {
	app, _ := newTestApp(t, newMemUsers())

	resp, err := app.Test(jsonRequest(nethttp.MethodPost, "/api/auth/login", map[string]string{
		"username": "BrandovertsAdmin",
		"password": "admin-password",
	}))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "secure only in production")
	assert.Equal(t, "/", cookie.Path)

	body := parseBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin-id", user["id"])
	assert.Equal(t, "BrandovertsAdmin", user["username"])
	assert.Equal(t, "admin", user["role"])
}

func TestLoginFailureEnvelope(t *testing.T) {
	app, _ := newTestApp(t, newMemUsers())

	resp, err := app.Test(jsonRequest(nethttp.MethodPost, "/api/auth/login", map[string]string{
		"username": "BrandovertsAdmin",
		"password": "wrong",
	}))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))

	body := parseBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestLoginMissingFields(t *testing.T) {
	app, _ := newTestApp(t, newMemUsers())

	resp, err := app.Test(jsonRequest(nethttp.MethodPost, "/api/auth/login", map[string]string{
		"identifier": "writer",
	}))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestSignupSetsCookieAndCreated(t *testing.T) {
	users := newMemUsers()
	app, _ := newTestApp(t, users)

	resp, err := app.Test(jsonRequest(nethttp.MethodPost, "/api/auth/signup", map[string]string{
		"username": "writer",
		"email":    "writer@example.com",
		"password": "hunter22",
	}))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	require.NotNil(t, sessionCookie(resp))

	body := parseBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Signup successful", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "writer", user["username"])
	assert.Equal(t, "blogger", user["role"])
}

func TestGuardedLeadsAPIWithoutCookie(t *testing.T) {
	app, _ := newTestApp(t, newMemUsers())

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/leads", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Authentication required", body["message"])
}

func TestMeWithBlogUserCookie(t *testing.T) {
	users := newMemUsers()
	app, _ := newTestApp(t, users)

	signupResp, err := app.Test(jsonRequest(nethttp.MethodPost, "/api/auth/signup", map[string]string{
		"username": "writer",
		"email":    "writer@example.com",
		"password": "hunter22",
	}))
	require.NoError(t, err)
	cookie := sessionCookie(signupResp)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&nethttp.Cookie{Name: testCookie, Value: cookie.Value})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	body := parseBody(t, resp)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "writer", user["username"])
}

func TestMeWithoutCookie(t *testing.T) {
	app, _ := newTestApp(t, newMemUsers())

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "Not authenticated", body["message"])
}

func TestLogoutExpiresCookie(t *testing.T) {
	app, _ := newTestApp(t, newMemUsers())

	loginResp, err := app.Test(jsonRequest(nethttp.MethodPost, "/api/auth/login", map[string]string{
		"username": "BrandovertsAdmin",
		"password": "admin-password",
	}))
	require.NoError(t, err)
	cookie := sessionCookie(loginResp)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(nethttp.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&nethttp.Cookie{Name: testCookie, Value: cookie.Value})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	cleared := sessionCookie(resp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestPageGateRedirectsToLogin(t *testing.T) {
	app, _ := newTestApp(t, newMemUsers())

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/leads/board", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/leads/login?from=%2Fleads%2Fboard", resp.Header.Get("Location"))
}

func TestPageGateAdmitsValidSession(t *testing.T) {
	app, _ := newTestApp(t, newMemUsers())

	loginResp, err := app.Test(jsonRequest(nethttp.MethodPost, "/api/auth/login", map[string]string{
		"username": "BrandovertsAdmin",
		"password": "admin-password",
	}))
	require.NoError(t, err)
	cookie := sessionCookie(loginResp)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(nethttp.MethodGet, "/leads/board", nil)
	req.AddCookie(&nethttp.Cookie{Name: testCookie, Value: cookie.Value})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

// Both error paths feed the counters: router-level failures under their
// numeric status, domain errors under their code.
func TestErrorCountersCoverBothPaths(t *testing.T) {
	app, metrics := newTestApp(t, newMemUsers())

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int64(1), metrics.ErrorCount("/api/nope", nethttp.MethodGet, "404"))

	resp, err = app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/leads", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int64(1), metrics.ErrorCount("/api/leads", nethttp.MethodGet, "UNAUTHORIZED"))

	assert.Equal(t, int64(1), metrics.RequestCount("/api/leads", nethttp.MethodGet, nethttp.StatusUnauthorized))
}

func TestHealthLive(t *testing.T) {
	app, _ := newTestApp(t, newMemUsers())

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
