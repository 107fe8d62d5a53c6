package httpkit

import (
	"net/http"

	pnet "demovault/internal/platform/net"
)

// AccountGuardPort validates the resolved account, e.g. suspended or deleted checks
type AccountGuardPort interface {
	Validate(r *http.Request, accountID string) error
}

// AccountGuard is middleware that validates the account ID from context using the port
func AccountGuard(p AccountGuardPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			aid := pnet.AccountID(r.Context())
			if err := p.Validate(r, aid); err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
