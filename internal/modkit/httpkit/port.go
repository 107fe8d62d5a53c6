// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"context"
	"net/http"
	"strings"

	perrs "demovault/internal/platform/errors"
)

// KeyFunc resolves a raw api key to an account id
// httpkit does not care how keys are stored, callers bring their own lookup
type KeyFunc func(ctx context.Context, key string) (accountID string, err error)

// Port implements middleware.AuthPort by reading X-API-Key and delegating to a KeyFunc
type Port struct {
	resolve KeyFunc
}

// NewPortFunc builds a Port from a simple resolver function
func NewPortFunc(fn KeyFunc) *Port {
	return &Port{resolve: fn}
}

// Parse extracts the account id from the X-API-Key header
// returns unauthorized when the header is missing, empty, or the resolver returns an error
func (p *Port) Parse(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("X-API-Key"))
	if raw == "" {
		return "", perrs.Unauthorizedf("missing api key")
	}

	if p.resolve == nil {
		return "", perrs.Unauthorizedf("invalid api key")
	}

	aid, err := p.resolve(r.Context(), raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid api key")
	}
	return aid, nil
}
