package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html><head><title>T</title><script>var x = 1;</script></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
<h1>Title</h1>
<p>Hello <b>world</b>.</p>
<img src="a.png">
</main>
<footer>footer text</footer>
</body></html>`

func TestMainHTML(t *testing.T) {
	e := NewContentExtractor()

	got, err := e.MainHTML(samplePage)
	require.NoError(t, err)

	assert.Contains(t, got, "<main>")
	assert.Contains(t, got, "<h1>Title</h1>")
	assert.NotContains(t, got, "<img")
	assert.NotContains(t, got, "Home")
	assert.NotContains(t, got, "footer text")
}

func TestMainText(t *testing.T) {
	e := NewContentExtractor()

	got, err := e.MainText(samplePage)
	require.NoError(t, err)
	assert.Equal(t, "Title Hello world.", got)
}

func TestMainFallsBackToArticleThenBody(t *testing.T) {
	e := NewContentExtractor()

	got, err := e.MainText(`<body><div>outside</div><article>inside</article></body>`)
	require.NoError(t, err)
	assert.Equal(t, "inside", got)

	got, err = e.MainText(`<body><div>only body</div></body>`)
	require.NoError(t, err)
	assert.Equal(t, "only body", got)
}
