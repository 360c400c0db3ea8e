package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/triponation/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page  int
	Limit int
}

// FromContext extracts and validates pagination params from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	limit := parseIntOr(c.DefaultQuery("limit", "20"), DefaultLimit)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Query{Page: page, Limit: limit}
}

// Paginate applies limit/offset to a GORM query and returns the paging
// metadata for the response envelope.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Paging, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Paging{}, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := db.Offset(offset).Limit(q.Limit).Find(dest).Error; err != nil {
		return response.Paging{}, err
	}

	return Meta(q, len(*dest), total), nil
}

// Meta computes the paging metadata for a page of count items out of total.
func Meta(q Query, count int, total int64) response.Paging {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return response.Paging{
		Count:      count,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
		HasNext:    q.Page < totalPages,
		HasPrev:    q.Page > 1,
	}
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
