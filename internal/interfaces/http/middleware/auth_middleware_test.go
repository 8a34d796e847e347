package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"team-hub.backend/pkg/jwt"
)

func newAuthTestRouter(jwtService *jwt.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(jwtService))
	r.GET("/me", func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func TestAuthMiddleware_BearerFlow(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := newAuthTestRouter(jwtService)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Authorization is required")
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer invalid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Invalid authorization format")
	})

	t.Run("valid token", func(t *testing.T) {
		userID := uuid.New()
		pair, err := jwtService.GenerateTokenPair(userID, "u@teamhub.dev", "U")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), userID.String())
	})
}

func TestAuthMiddleware_QueryTokenFallback(t *testing.T) {
	// Websocket upgrades cannot set headers, so the token rides in the
	// query string.
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := newAuthTestRouter(jwtService)

	pair, err := jwtService.GenerateTokenPair(uuid.New(), "u@teamhub.dev", "U")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me?token="+pair.AccessToken, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// A header, even malformed, wins over the query parameter.
	req = httptest.NewRequest(http.MethodGet, "/me?token="+pair.AccessToken, nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredJWT := jwt.NewJWTService("secret", -1*time.Second, time.Hour)
	r := newAuthTestRouter(expiredJWT)

	pair, err := expiredJWT.GenerateTokenPair(uuid.New(), "u@teamhub.dev", "U")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token has expired")
}
