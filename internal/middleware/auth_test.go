package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/jwt"
)

func authTestRouter(t *testing.T, tokens *jwt.Manager, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c), "role": CurrentRole(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMissingToken(t *testing.T) {
	r := authTestRouter(t, jwt.New("s", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized: invalid or missing token", body["message"])
}

func TestAuthHeaderCookieAndQuery(t *testing.T) {
	tokens := jwt.New("s", time.Hour)
	token, err := tokens.Sign("u1", "a@b.c", models.RoleCustomer)
	require.NoError(t, err)
	r := authTestRouter(t, tokens)

	// Bearer header
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)

	// login cookie
	req = httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// query parameter fallback
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected?token="+token, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthWrongSecret(t *testing.T) {
	foreign, err := jwt.New("other", time.Hour).Sign("u1", "a@b.c", models.RoleCustomer)
	require.NoError(t, err)
	r := authTestRouter(t, jwt.New("s", time.Hour))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := jwt.New("s", time.Hour)
	r := authTestRouter(t, tokens, RequireAdmin())

	customer, _ := tokens.Sign("u1", "a@b.c", models.RoleCustomer)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+customer)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied: insufficient role")

	for _, role := range []string{models.RoleAdmin, models.RoleSuperAdmin} {
		token, _ := tokens.Sign("u2", "b@b.c", role)
		req = httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, role)
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken("  Bearer abc "))
	assert.Equal(t, "abc", NormalizeToken("bearer abc"))
	assert.Equal(t, "abc", NormalizeToken("abc"))
	assert.Equal(t, "", NormalizeToken("   "))
}
