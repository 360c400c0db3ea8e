package mediastore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildObjectKey(t *testing.T) {
	key := BuildObjectKey("BlogUploads", "sunset.JPG")
	assert.True(t, strings.HasPrefix(key, "BlogUploads/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	base := strings.TrimSuffix(strings.TrimPrefix(key, "BlogUploads/"), ".jpg")
	assert.Len(t, base, 18)

	// keys are unique per call
	assert.NotEqual(t, key, BuildObjectKey("BlogUploads", "sunset.JPG"))
}

func TestBuildObjectKeyEdgeCases(t *testing.T) {
	assert.True(t, strings.HasSuffix(BuildObjectKey("x", "noext"), ".dat"))
	assert.True(t, strings.HasSuffix(BuildObjectKey("x", "weird.superlongextension"), ".dat"))
	assert.False(t, strings.Contains(BuildObjectKey("", "a.png"), "/"))
	assert.True(t, strings.HasPrefix(BuildObjectKey("/trimmed/", "a.png"), "trimmed/"))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", DetectContentType("pic.png", nil))
	assert.Contains(t, DetectContentType("video.mp4", nil), "video/mp4")

	// unknown extension falls back to sniffing
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	assert.Equal(t, "image/png", DetectContentType("pic.unknownext", pngHeader))

	assert.Equal(t, "application/octet-stream", DetectContentType("pic.unknownext", nil))
}
