// Package source provides the question-source collaborator: something that
// can produce the raw semicolon-delimited catalog text.
package source

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source fetches the raw CSV text of the question bank.
type Source interface {
	FetchCSV(ctx context.Context) (string, error)
}

//go:embed questionnaire.csv
var embeddedCatalog string

// StaticSource serves a fixed catalog text.
type StaticSource struct {
	Text string
}

func (s StaticSource) FetchCSV(context.Context) (string, error) {
	return s.Text, nil
}

// Default returns the catalog shipped with the binary.
func Default() StaticSource {
	return StaticSource{Text: embeddedCatalog}
}

// FileSource reads the catalog from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) FetchCSV(context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read catalog %s: %w", s.Path, err)
	}
	return string(data), nil
}

// HTTPSource fetches the catalog over HTTP.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTPSource with a bounded default client.
func NewHTTPSource(url string) HTTPSource {
	return HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s HTTPSource) FetchCSV(ctx context.Context) (string, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read catalog body: %w", err)
	}
	return string(data), nil
}

// FromEnv picks the source from VENTUREMETER_CATALOG: an http(s) URL, a
// file path, or unset for the embedded catalog.
func FromEnv() Source {
	v := os.Getenv("VENTUREMETER_CATALOG")
	switch {
	case v == "":
		return Default()
	case strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://"):
		return NewHTTPSource(v)
	default:
		return FileSource{Path: v}
	}
}
