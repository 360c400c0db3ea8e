package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "tripo:approvedBlogs", Key("approvedBlogs"))
	assert.Equal(t, "tripo:blog:abc-123", Key("blog", "abc-123"))
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	ctx := context.Background()

	var out string
	hit, err := c.GetJSON(ctx, "tripo:x", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, c.SetJSON(ctx, "tripo:x", "v", 0))
	assert.NoError(t, c.Del(ctx, "tripo:x"))
	assert.NoError(t, c.DelPattern(ctx, "tripo:approvedBlogs*"))
	assert.Nil(t, c.Redis())
	assert.NoError(t, c.Close())
}

func TestConnectBadURL(t *testing.T) {
	_, err := Connect("not a url")
	assert.Error(t, err)
}
