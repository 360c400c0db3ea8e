// Package form decodes the JSON-encoded string fields that ride alongside
// files in multipart submissions (tags, sections, imagesToDelete).
package form

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseError marks a field whose value was present but not valid JSON of
// the expected shape. Handlers map it to a 400.
type ParseError struct {
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Invalid JSON in field '%s'", e.Field)
}

// JSONField decodes a multipart form field into dest. It reports whether
// the field was present and non-empty; an absent field is not an error.
// Comma-separated fallbacks are deliberately not accepted: array fields
// must be JSON arrays.
func JSONField(c *gin.Context, field string, dest interface{}) (bool, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, &ParseError{Field: field}
	}
	return true, nil
}

// StringArray decodes a JSON array field, accepting both plain ids and
// attachment objects carrying a publicId, which is how clients send
// imagesToDelete.
func StringArray(c *gin.Context, field string) ([]string, bool, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return nil, false, nil
	}

	var plain []string
	if err := json.Unmarshal([]byte(raw), &plain); err == nil {
		return plain, true, nil
	}

	var objs []struct {
		PublicID string `json:"publicId"`
	}
	if err := json.Unmarshal([]byte(raw), &objs); err != nil {
		return nil, false, &ParseError{Field: field}
	}
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		if o.PublicID != "" {
			out = append(out, o.PublicID)
		}
	}
	return out, true, nil
}
