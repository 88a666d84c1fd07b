package loaders

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FileHTTP loads markdown document text from HTTP(S) URLs and local files.
type FileHTTP struct {
	// SearchRoots are extra directories to try when a relative path does not
	// resolve on its own.
	SearchRoots []string

	// Client is used for HTTP(S) requests; if nil, http.DefaultClient is used.
	Client *http.Client
}

// Load fetches the content behind a URL or file path.
func (f *FileHTTP) Load(pathOrURL string) (string, error) {
	if pathOrURL == "" {
		return "", fmt.Errorf("empty document path")
	}
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return f.loadFromWeb(pathOrURL)
	}
	return f.loadFromLocal(pathOrURL)
}

func (f *FileHTTP) loadFromWeb(url string) (content string, err error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned non-200 status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

func (f *FileHTTP) loadFromLocal(path string) (string, error) {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		for _, root := range f.SearchRoots {
			candidates = append(candidates, filepath.Join(root, path))
		}
	}

	var firstErr error
	for _, candidate := range candidates {
		content, err := os.ReadFile(candidate)
		if err == nil {
			return string(content), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", fmt.Errorf("failed to read local file: %w", firstErr)
}
