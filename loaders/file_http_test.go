package loaders

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Hello\n"), 0o644))

	loader := &FileHTTP{}
	content, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n", content)
}

func TestLoadSearchRoots(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("notes"), 0o644))

	loader := &FileHTTP{SearchRoots: []string{dir}}
	content, err := loader.Load("notes.md")
	require.NoError(t, err)
	assert.Equal(t, "notes", content)
}

func TestLoadMissingFile(t *testing.T) {
	loader := &FileHTTP{}
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.md"))
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	loader := &FileHTTP{}
	_, err := loader.Load("")
	assert.Error(t, err)
}

func TestLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# Remote\n"))
	}))
	defer server.Close()

	loader := &FileHTTP{Client: server.Client()}
	content, err := loader.Load(server.URL)
	require.NoError(t, err)
	assert.Equal(t, "# Remote\n", content)
}

func TestLoadHTTPNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	loader := &FileHTTP{Client: server.Client()}
	_, err := loader.Load(server.URL)
	assert.ErrorContains(t, err, "non-200")
}
