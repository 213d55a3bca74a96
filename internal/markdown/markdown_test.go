package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_BasicMarkdown(t *testing.T) {
	out := Render("some **bold** text")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRender_GFMTables(t *testing.T) {
	out := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	assert.Contains(t, out, "<table>")
}

func TestRender_StripsScripts(t *testing.T) {
	out := Render("hello <script>alert('x')</script> world")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}

func TestRender_StripsEventHandlers(t *testing.T) {
	out := Render(`<img src="x" onerror="alert(1)">`)
	assert.NotContains(t, out, "onerror")
}

func TestRender_LinksOpenSafely(t *testing.T) {
	out := Render("[link](https://example.com)")
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, "noreferrer")
}
