package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivider(t *testing.T) {
	assert.Len(t, Divider, 80)
	assert.Equal(t, strings.Repeat("=", 80), Divider)
}

func TestWriteRecord(t *testing.T) {
	var buf bytes.Buffer
	cw := NewContentWriter(&buf)

	require.NoError(t, cw.WriteRecord(1, "http://ex.com/a", "A"))
	require.NoError(t, cw.WriteRecord(2, "http://ex.com/b", "Error fetching URL: boom"))
	require.NoError(t, cw.Close())

	d := strings.Repeat("=", 80)
	want := "\n" + d + "\nURL 1: http://ex.com/a\n" + d + "\nA\n" +
		"\n" + d + "\nURL 2: http://ex.com/b\n" + d + "\nError fetching URL: boom\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 2, cw.Written())
}

func TestWriteRecordFlushesImmediately(t *testing.T) {
	var buf bytes.Buffer
	cw := NewContentWriter(&buf)

	require.NoError(t, cw.WriteRecord(1, "u", "body"))
	assert.Contains(t, buf.String(), "URL 1: u")
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "content.txt")

	cw, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, cw.WriteRecord(1, "u", "b"))
	require.NoError(t, cw.Close())
	require.NoError(t, cw.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\n"+Divider+"\nURL 1: u\n"))
}

func TestCreateTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	cw, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, cw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSuggestPath(t *testing.T) {
	assert.Equal(t, "links_content.txt", SuggestPath("links.txt", "_content.txt"))
	assert.Equal(t, "dir/page_urls.txt", SuggestPath("dir/page.html", "_urls.txt"))
	assert.Equal(t, "noext_content.txt", SuggestPath("noext", "_content.txt"))
}
