package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=10", 3, 10},
		{"zero page", "page=0", 1, 20},
		{"negative limit", "limit=-5", 1, 20},
		{"limit capped", "limit=500", 1, 100},
		{"garbage", "page=abc&limit=xyz", 1, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := FromContext(ctxWithQuery(t, tt.query))
			assert.Equal(t, tt.page, q.Page)
			assert.Equal(t, tt.limit, q.Limit)
		})
	}
}

func TestMeta(t *testing.T) {
	p := Meta(Query{Page: 2, Limit: 10}, 10, 35)
	assert.Equal(t, 10, p.Count)
	assert.Equal(t, int64(35), p.Total)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := Meta(Query{Page: 4, Limit: 10}, 5, 35)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := Meta(Query{Page: 1, Limit: 20}, 0, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
