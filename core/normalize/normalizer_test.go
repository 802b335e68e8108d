package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := New()

	got, err := n.Normalize(`<h1>Title</h1><p>Some <strong>bold</strong> text.</p>`, "")
	require.NoError(t, err)
	assert.Contains(t, got, "# Title")
	assert.Contains(t, got, "**bold**")
}

func TestNormalizeWithDomain(t *testing.T) {
	n := New()

	got, err := n.Normalize(`<p><a href="/docs">Docs</a></p>`, "https://ex.com")
	require.NoError(t, err)
	assert.Contains(t, got, "[Docs](https://ex.com/docs)")
}
