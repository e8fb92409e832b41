package timeline

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Loader fetches documents from files or http(s) URLs.
type Loader struct {
	Client Doer
}

// NewLoader returns a loader with the default HTTP timeout.
func NewLoader() *Loader {
	return &Loader{Client: &http.Client{Timeout: constants.DefaultHTTPTimeout}}
}

// Load fetches a document using a default Loader.
func Load(ctx context.Context, source string) (*Document, error) {
	return NewLoader().Load(ctx, source)
}

// Load fetches and decodes the document at source. Every failure is a
// *errors.LoadError; non-2xx responses carry the status code.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	if isURL(source) {
		return l.fetch(ctx, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, errors.NewLoadError(source, 0, errors.WrapIO("open", source, err))
	}
	defer func() { _ = f.Close() }()

	doc, err := Decode(f)
	if err != nil {
		return nil, errors.NewLoadError(source, 0, err)
	}
	return doc, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewLoadError(url, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	var client Doer = http.DefaultClient
	if l.Client != nil {
		client = l.Client
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewLoadError(url, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewLoadError(url, resp.StatusCode, nil)
	}

	doc, err := Decode(resp.Body)
	if err != nil {
		return nil, errors.NewLoadError(url, 0, err)
	}
	return doc, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
