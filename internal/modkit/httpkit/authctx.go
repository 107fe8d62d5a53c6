package httpkit

import (
	"net/http"
	"strings"

	perrs "demovault/internal/platform/errors"
	pnet "demovault/internal/platform/net"
)

// Account returns the authenticated account id from the request context
func Account(r *http.Request) (string, error) {
	aid := pnet.AccountID(r.Context())
	if aid == "" {
		return "", perrs.Unauthorizedf("missing api key")
	}
	return aid, nil
}

// MustAccount returns the authenticated account id or panics
func MustAccount(r *http.Request) string {
	aid, err := Account(r)
	if err != nil {
		panic(err)
	}
	return aid
}

// APIKey returns the raw key from the X-API-Key header
func APIKey(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("X-API-Key"))
	if raw == "" {
		return "", perrs.Unauthorizedf("missing api key")
	}
	return raw, nil
}

// MustAPIKey returns the raw key or panics
// only use on routes protected by the auth middleware
func MustAPIKey(r *http.Request) string {
	raw, err := APIKey(r)
	if err != nil {
		panic(err)
	}
	return raw
}
