package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestPagedEnvelopeShape(t *testing.T) {
	p := Paging{Count: 2, Total: 7, Page: 1, Limit: 2, TotalPages: 4, HasNext: true}
	w, body := record(t, func(c *gin.Context) {
		Paged(c, []string{"a", "b"}, p)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(7), body["total"])
	assert.Equal(t, float64(4), body["totalPages"])
	assert.Equal(t, true, body["hasNext"])
	assert.Equal(t, false, body["hasPrev"])
	_, present := body["cached"]
	assert.False(t, present)
}

func TestPagedEnvCachedFlag(t *testing.T) {
	env := NewPaged([]string{"a"}, Paging{Count: 1, Total: 1, Page: 1, Limit: 20, TotalPages: 1})
	_, body := record(t, func(c *gin.Context) {
		PagedEnv(c, env, true)
	})
	assert.Equal(t, true, body["cached"])

	_, body = record(t, func(c *gin.Context) {
		PagedEnv(c, env, false)
	})
	assert.Equal(t, false, body["cached"])
}

func TestErrorHelpers(t *testing.T) {
	w, body := record(t, func(c *gin.Context) { BadRequest(c, "Invalid rating") })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid rating", body["message"])

	w, body = record(t, func(c *gin.Context) { InternalError(c) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error", body["message"])
}

func TestOKMergesSuccess(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		OK(c, gin.H{"message": "Blog updated successfully"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Blog updated successfully", body["message"])

	w, _ = record(t, func(c *gin.Context) { Created(c, nil) })
	assert.Equal(t, http.StatusCreated, w.Code)
}
