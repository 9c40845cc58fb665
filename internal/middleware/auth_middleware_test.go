package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ctrip-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, key *rsa.PrivateKey, userID uuid.UUID, role models.Role, ttl time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"email": "user@veritas.edu",
		"role":  string(role),
		"sub":   userID.String(),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newTestRouter(t *testing.T) (*gin.Engine, *AuthMiddleware, *rsa.PrivateKey) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	m := NewAuthMiddleware(&key.PublicKey, nil)
	router := gin.New()
	return router, m, key
}

func TestRequireAuth_SetsCallerIdentity(t *testing.T) {
	router, m, key := newTestRouter(t)
	userID := uuid.New()

	router.GET("/probe", m.RequireAuth(), func(c *gin.Context) {
		gotID, ok := CallerID(c)
		assert.True(t, ok)
		assert.Equal(t, userID, gotID)

		gotRole, ok := CallerRole(c)
		assert.True(t, ok)
		assert.Equal(t, models.RoleStaff, gotRole)

		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, key, userID, models.RoleStaff, time.Minute))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_RejectsMissingAndMalformedHeaders(t *testing.T) {
	router, m, key := newTestRouter(t)
	router.GET("/probe", m.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", signTestToken(t, key, uuid.New(), models.RoleStudent, time.Minute)},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireAuth_RejectsExpiredToken(t *testing.T) {
	router, m, key := newTestRouter(t)
	router.GET("/probe", m.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, key, uuid.New(), models.RoleStudent, -time.Minute))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RejectsWrongKey(t *testing.T) {
	router, m, _ := newTestRouter(t)
	router.GET("/probe", m.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, otherKey, uuid.New(), models.RoleStudent, time.Minute))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles_EnforcesAllowList(t *testing.T) {
	router, m, key := newTestRouter(t)
	router.GET("/staff-only",
		m.RequireAuth(),
		m.RequireRoles(models.RoleStaff, models.RoleSecurity, models.RoleAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		role models.Role
		want int
	}{
		{models.RoleStudent, http.StatusForbidden},
		{models.RoleStaff, http.StatusOK},
		{models.RoleSecurity, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/staff-only", nil)
			req.Header.Set("Authorization", "Bearer "+signTestToken(t, key, uuid.New(), tt.role, time.Minute))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRateLimit_FailsOpenWithoutRedis(t *testing.T) {
	router, m, _ := newTestRouter(t)
	router.GET("/limited", m.RateLimit("default", 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	// Without a Redis client the limiter must not block anything.
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
