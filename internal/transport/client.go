// Package transport provides the HTTP client used to fetch remote timeline
// documents, with optional credentials for private dataset hosts.
package transport

import (
	"net/http"

	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/timeline"
)

var _ timeline.Doer = (*Client)(nil)

// UserAgent is sent with every request.
const UserAgent = "stagemap"

// Client applies credentials and common headers to outgoing requests.
type Client struct {
	http  *http.Client
	auth  Authenticator
	token string
}

// New creates a client that authenticates with token using auth. A nil
// auth or empty token sends requests unauthenticated.
func New(auth Authenticator, token string) *Client {
	if auth == nil {
		auth = NoAuth{}
	}
	return &Client{
		http:  &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth:  auth,
		token: token,
	}
}

// WithHTTPClient replaces the underlying client, for tests and proxies.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Do sends req with credentials applied. The request is cloned so the
// caller's copy never carries the token.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if c.token != "" {
		c.auth.Apply(req, c.token)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("User-Agent", UserAgent)
	return c.http.Do(req)
}

// NewLoader returns a timeline loader that fetches through c.
func (c *Client) NewLoader() *timeline.Loader {
	return &timeline.Loader{Client: c}
}
