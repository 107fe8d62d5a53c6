package middleware

import (
	"net/http"

	pnet "demovault/internal/platform/net"
)

// AuthPort is a tiny seam the accounts service implements
type AuthPort interface {
	// Parse resolves the caller's account id from the request or returns an error
	Parse(r *http.Request) (accountID string, err error)
}

// Auth is a no-op until wired. It uses the port when provided
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			aid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithAccount(r.Context(), aid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
