package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Paging is the pagination metadata embedded in list envelopes.
type Paging struct {
	Count      int   `json:"count"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PagedEnvelope is the wire shape of every paginated list response. It is
// also the payload stored in the read cache, so cached replays keep the
// exact shape of the original response.
type PagedEnvelope struct {
	Success bool `json:"success"`
	Paging
	Cached *bool       `json:"cached,omitempty"`
	Data   interface{} `json:"data"`
}

// NewPaged builds a list envelope from items and paging metadata.
func NewPaged(data interface{}, p Paging) PagedEnvelope {
	return PagedEnvelope{Success: true, Paging: p, Data: data}
}

// Paged sends a 200 paginated list response.
func Paged(c *gin.Context, data interface{}, p Paging) {
	c.JSON(http.StatusOK, NewPaged(data, p))
}

// PagedEnv sends a prebuilt envelope, marking whether it came from cache.
func PagedEnv(c *gin.Context, env PagedEnvelope, cached bool) {
	env.Success = true
	env.Cached = &cached
	c.JSON(http.StatusOK, env)
}

// OK sends a 200 response with success:true merged into the payload.
func OK(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, withSuccess(data))
}

// Created sends a 201 response with success:true merged into the payload.
func Created(c *gin.Context, data gin.H) {
	c.JSON(http.StatusCreated, withSuccess(data))
}

// Message sends a 200 mutation acknowledgement.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": message})
}

// InternalError sends a generic 500. Details stay in the server log; the
// caller is expected to have logged the underlying error already.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
}

func withSuccess(data gin.H) gin.H {
	if data == nil {
		return gin.H{"success": true}
	}
	data["success"] = true
	return data
}
