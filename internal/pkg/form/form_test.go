package form

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxWithForm(t *testing.T, values url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func TestJSONField(t *testing.T) {
	c := ctxWithForm(t, url.Values{"tags": {`["beach","goa"]`}})

	var tags []string
	set, err := JSONField(c, "tags", &tags)
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, []string{"beach", "goa"}, tags)
}

func TestJSONFieldAbsent(t *testing.T) {
	c := ctxWithForm(t, url.Values{})

	var tags []string
	set, err := JSONField(c, "tags", &tags)
	require.NoError(t, err)
	assert.False(t, set)
}

func TestJSONFieldMalformed(t *testing.T) {
	c := ctxWithForm(t, url.Values{"tags": {`beach,goa`}})

	var tags []string
	_, err := JSONField(c, "tags", &tags)
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "tags", pe.Field)
	assert.Equal(t, "Invalid JSON in field 'tags'", err.Error())
}

func TestStringArrayPlain(t *testing.T) {
	c := ctxWithForm(t, url.Values{"imagesToDelete": {`["a","b"]`}})

	ids, set, err := StringArray(c, "imagesToDelete")
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestStringArrayObjects(t *testing.T) {
	c := ctxWithForm(t, url.Values{"imagesToDelete": {`[{"publicId":"x"},{"publicId":""},{"publicId":"y"}]`}})

	ids, set, err := StringArray(c, "imagesToDelete")
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, []string{"x", "y"}, ids)
}

func TestStringArrayAbsentAndMalformed(t *testing.T) {
	ids, set, err := StringArray(ctxWithForm(t, url.Values{}), "imagesToDelete")
	require.NoError(t, err)
	assert.False(t, set)
	assert.Nil(t, ids)

	_, _, err = StringArray(ctxWithForm(t, url.Values{"imagesToDelete": {`{"publicId":"x"}`}}), "imagesToDelete")
	assert.Error(t, err)
}
