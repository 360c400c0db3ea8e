package blog

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triponation/core/internal/config"
	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/jwt"
	"go.uber.org/zap"
)

// The gating tests never reach a handler body, so the service can run
// without collaborators.
func gatedRouter(t *testing.T, tokens *jwt.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(nil, nil, nil, config.CacheConfig{}, zap.NewNop()), zap.NewNop())
	h.RegisterRoutes(r.Group(""), middleware.Auth(tokens))
	return r
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	r := gatedRouter(t, jwt.New("s", time.Hour))

	for _, route := range []struct{ method, path string }{
		{"GET", "/blogs/allBlogs"},
		{"PUT", "/blogs/update/abc"},
		{"PATCH", "/blogs/status/abc"},
		{"DELETE", "/blogs/delete/abc"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestAdminRoutesRejectCustomerRole(t *testing.T) {
	tokens := jwt.New("s", time.Hour)
	token, err := tokens.Sign("u1", "c@example.com", models.RoleCustomer)
	require.NoError(t, err)
	r := gatedRouter(t, tokens)

	for _, route := range []struct{ method, path string }{
		{"GET", "/blogs/allBlogs"},
		{"PUT", "/blogs/update/abc"},
		{"PATCH", "/blogs/status/abc"},
		{"DELETE", "/blogs/delete/abc"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", route.method, route.path)
	}
}
