package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGuardedRouter(handler gin.HandlerFunc, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", mw...)
	group.GET("/protected", handler)
	return r
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateAccessToken(42, "user@example.com", "CLIENT")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "CLIENT", claims.Role)
	assert.Equal(t, "access", claims.Subject)
}

func TestParseToken_Invalid(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTAuth_InjectsUser(t *testing.T) {
	token, err := GenerateAccessToken(7, "a@example.com", "SELLER")
	require.NoError(t, err)

	r := setupGuardedRouter(func(c *gin.Context) {
		assert.Equal(t, int64(7), GetUserID(c))
		assert.Equal(t, "SELLER", GetUserRole(c))
		c.JSON(200, gin.H{"ok": true})
	}, JWTAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_Rejects(t *testing.T) {
	r := setupGuardedRouter(func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	}, JWTAuth())

	// 无认证头
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 格式错误
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 篡改的 Token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.here")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	token, err := GenerateAccessToken(1, "c@example.com", "CLIENT")
	require.NoError(t, err)

	r := setupGuardedRouter(func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	}, JWTAuth(), RequireRole("SELLER"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOptionalAuth_PassesWithoutToken(t *testing.T) {
	r := setupGuardedRouter(func(c *gin.Context) {
		assert.Equal(t, int64(0), GetUserID(c))
		c.JSON(200, gin.H{"ok": true})
	}, OptionalAuth())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplyJWTConfig_PartialOverride(t *testing.T) {
	old := GetJWTConfig()
	defer SetJWTConfig(old)

	// 只配置了有效期和签发者、未配置密钥：前两者生效，密钥回落到默认值
	ApplyJWTConfig("", 2*time.Hour, "custom-issuer")

	cfg := GetJWTConfig()
	assert.Equal(t, DefaultJWTConfig().SecretKey, cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, "custom-issuer", cfg.Issuer)

	// 全零值 → 等同默认配置
	ApplyJWTConfig("", 0, "")
	assert.Equal(t, DefaultJWTConfig(), GetJWTConfig())
}

func TestExpiredToken(t *testing.T) {
	// 临时切短有效期
	old := GetJWTConfig()
	SetJWTConfig(&JWTConfig{
		SecretKey:      old.SecretKey,
		AccessTokenTTL: -time.Minute,
		Issuer:         old.Issuer,
	})
	token, err := GenerateAccessToken(1, "x@example.com", "CLIENT")
	SetJWTConfig(old)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}
