package transport

import (
	"net/http"
	"strings"

	"github.com/agentstation/stagemap/pkg/errors"
)

// Authenticator applies a credential to an HTTP request.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth sends requests unchanged.
type NoAuth struct{}

// Apply implements Authenticator.
func (NoAuth) Apply(*http.Request, string) {}

// BearerAuth sends "Authorization: Bearer <token>".
type BearerAuth struct{}

// Apply implements Authenticator.
func (BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAuth sends the token verbatim in a custom header.
type HeaderAuth struct {
	Header string
}

// Apply implements Authenticator.
func (a HeaderAuth) Apply(req *http.Request, token string) {
	req.Header.Set(a.Header, token)
}

// QueryAuth sends the token as a query parameter, for signed-URL hosts.
type QueryAuth struct {
	Param string
}

// Apply implements Authenticator.
func (a QueryAuth) Apply(req *http.Request, token string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, token)
	req.URL.RawQuery = query.Encode()
}

// ParseAuth builds an authenticator from a scheme string:
//
//	""  or "bearer"    Authorization: Bearer <token>
//	"header:<name>"    <name>: <token>
//	"query:<param>"    ?<param>=<token>
//	"none"             no credentials
func ParseAuth(scheme string) (Authenticator, error) {
	kind, arg, _ := strings.Cut(scheme, ":")
	switch strings.ToLower(kind) {
	case "", "bearer":
		return BearerAuth{}, nil
	case "none":
		return NoAuth{}, nil
	case "header":
		if arg == "" {
			return nil, errors.NewValidationError("auth", scheme, "header name is required")
		}
		return HeaderAuth{Header: arg}, nil
	case "query":
		if arg == "" {
			return nil, errors.NewValidationError("auth", scheme, "query parameter is required")
		}
		return QueryAuth{Param: arg}, nil
	}
	return nil, errors.NewValidationError("auth", scheme, "must be bearer, none, header:<name> or query:<param>")
}
