package story

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

func gatedRouter(t *testing.T, tokens *jwt.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(nil, nil, nil, config.CacheConfig{}, zap.NewNop()), zap.NewNop())
	h.RegisterRoutes(r.Group(""), middleware.Auth(tokens))
	return r
}

func TestAdminRoutesGated(t *testing.T) {
	tokens := jwt.New("s", time.Hour)
	customer, err := tokens.Sign("u1", "c@example.com", models.RoleCustomer)
	require.NoError(t, err)
	r := gatedRouter(t, tokens)

	for _, route := range []struct{ method, path string }{
		{"GET", "/story/allStory"},
		{"PUT", "/story/update/abc"},
		{"PATCH", "/story/status/abc"},
		{"DELETE", "/story/delete/abc"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "anonymous %s %s", route.method, route.path)

		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer "+customer)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, "customer %s %s", route.method, route.path)
	}
}
