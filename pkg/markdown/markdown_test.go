package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("# Lease Policy\n\nRent is due on the **1st**.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Lease Policy</h1>")
	assert.Contains(t, out, "<strong>1st</strong>")
}

func TestRenderEscapesRawHTML(t *testing.T) {
	out, err := NewRenderer().Render("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestRenderTable(t *testing.T) {
	out, err := NewRenderer().Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}
