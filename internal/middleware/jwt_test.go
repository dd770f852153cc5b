package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate/internal/utils"
)

const (
	mwSecret   = "mw-secret"
	mwIssuer   = "authgate"
	mwAudience = "authgate-clients"
)

func signTestToken(t *testing.T) string {
	t.Helper()
	issued, err := utils.NewAccessToken(mwSecret, mwIssuer, mwAudience, utils.TokenClaims{
		AccountID: 7,
		FullName:  "Alice",
		Email:     "a@x.com",
		Role:      "Admin",
	}, time.Hour)
	require.NoError(t, err)
	return issued.Token
}

func runProtected(t *testing.T, chain echo.MiddlewareFunc, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := chain(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	rec, c := runProtected(t, JWTAuth(mwSecret, mwIssuer, mwAudience), "Bearer "+signTestToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", c.Get("user_id"))
	assert.Equal(t, "Alice", c.Get("name"))
	assert.Equal(t, "a@x.com", c.Get("email"))
	assert.Equal(t, "Admin", c.Get("role"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := runProtected(t, JWTAuth(mwSecret, mwIssuer, mwAudience), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthBadToken(t *testing.T) {
	rec, _ := runProtected(t, JWTAuth(mwSecret, mwIssuer, mwAudience), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongAudience(t *testing.T) {
	rec, _ := runProtected(t, JWTAuth(mwSecret, mwIssuer, "other-audience"), "Bearer "+signTestToken(t))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("role", "User")
		require.NoError(t, RequireRole("Admin", "User")(handler)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("role", "Intruder")
		require.NoError(t, RequireRole("Admin", "User")(handler)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no role in context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, RequireRole("Admin", "User")(handler)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
