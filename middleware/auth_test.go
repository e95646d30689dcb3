package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeshm/portfolio-backend/config"
)

func performAuth(t *testing.T, cfg *config.Config, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "adminId": c.MustGet("admin_id").(uint)})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signedToken(t *testing.T, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"admin_id": 1,
		"email":    "admin@example.com",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAuthAcceptsHS256Token(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	w := performAuth(t, cfg, "Bearer "+signedToken(t, jwt.SigningMethodHS256, []byte(cfg.JWTSecret)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthPinsSigningMethod(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	// Same secret, different HMAC variant: only HS256 is accepted
	w := performAuth(t, cfg, "Bearer "+signedToken(t, jwt.SigningMethodHS384, []byte(cfg.JWTSecret)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performAuth(t, cfg, "Bearer "+signedToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	assert.Equal(t, http.StatusUnauthorized, performAuth(t, cfg, "").Code)
	assert.Equal(t, http.StatusUnauthorized, performAuth(t, cfg, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, performAuth(t, cfg, "Bearer not-a-jwt").Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	w := performAuth(t, cfg, "Bearer "+signedToken(t, jwt.SigningMethodHS256, []byte("other-secret")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
