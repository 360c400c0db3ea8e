package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render("# Ladakh\n\nA **remote** valley.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>remote</strong>")
}

func TestRenderEmpty(t *testing.T) {
	out, err := Render("   \n  ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderEscapesRawHTML(t *testing.T) {
	out, err := Render(`before <script>alert(1)</script> after`)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestRenderGFMTable(t *testing.T) {
	src := "| Place | Days |\n| --- | --- |\n| Leh | 3 |"
	out, err := Render(src)
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Leh</td>")
}
