package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/internal/shared/config"
	"bookly/internal/users"
)

const testSecret = "middleware-test-secret"

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func accessClaims(role users.Role) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": "b7a9e2a0-5a52-4d08-9f38-2f6ab9e8f0c1",
		"email":   "organiser@example.com",
		"role":    string(role),
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func serve(handlers []gin.HandlerFunc, header string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()

	var captured *gin.Context
	engine := gin.New()
	engine.GET("/guarded", append(handlers, func(c *gin.Context) {
		captured = c
		c.Status(http.StatusOK)
	})...)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	engine.ServeHTTP(recorder, req)
	return recorder, captured
}

func TestJWTAuth(t *testing.T) {
	t.Run("rejects a missing header", func(t *testing.T) {
		recorder, _ := serve([]gin.HandlerFunc{JWTAuthWithConfig(testConfig())}, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("rejects a malformed scheme", func(t *testing.T) {
		recorder, _ := serve([]gin.HandlerFunc{JWTAuthWithConfig(testConfig())}, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("rejects a refresh token on an access route", func(t *testing.T) {
		claims := accessClaims(users.RoleCustomer)
		claims["type"] = "refresh"
		recorder, _ := serve([]gin.HandlerFunc{JWTAuthWithConfig(testConfig())}, "Bearer "+signToken(t, claims))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("attaches claims for a valid token", func(t *testing.T) {
		recorder, captured := serve([]gin.HandlerFunc{JWTAuthWithConfig(testConfig())},
			"Bearer "+signToken(t, accessClaims(users.RoleCustomer)))
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, captured)
		role, _ := captured.Get("user_role")
		assert.Equal(t, string(users.RoleCustomer), role)
	})
}

func TestRequireOrganiser(t *testing.T) {
	chain := func() []gin.HandlerFunc {
		return []gin.HandlerFunc{JWTAuthWithConfig(testConfig()), RequireOrganiser()}
	}

	t.Run("forbids a customer", func(t *testing.T) {
		recorder, _ := serve(chain(), "Bearer "+signToken(t, accessClaims(users.RoleCustomer)))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("admits an organiser", func(t *testing.T) {
		recorder, _ := serve(chain(), "Bearer "+signToken(t, accessClaims(users.RoleOrganiser)))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("passes through without a header", func(t *testing.T) {
		recorder, captured := serve([]gin.HandlerFunc{OptionalAuthWithConfig(testConfig())}, "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, captured)
		_, hasRole := captured.Get("user_role")
		assert.False(t, hasRole)
	})

	t.Run("passes through with a garbage token, claims unset", func(t *testing.T) {
		recorder, captured := serve([]gin.HandlerFunc{OptionalAuthWithConfig(testConfig())}, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, captured)
		_, hasRole := captured.Get("user_role")
		assert.False(t, hasRole)
	})

	t.Run("attaches claims when a valid token rides along", func(t *testing.T) {
		recorder, captured := serve([]gin.HandlerFunc{OptionalAuthWithConfig(testConfig())},
			"Bearer "+signToken(t, accessClaims(users.RoleOrganiser)))
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, captured)
		role, _ := captured.Get("user_role")
		assert.Equal(t, string(users.RoleOrganiser), role)
	})
}
