package domain

import "context"

// ServicePort defines the walker contract consumed by ingestion and http
type ServicePort interface {
	// ResolveOne resolves a share code to a summary
	// ok is false when the remote has already expired the replay
	ResolveOne(ctx context.Context, code string) (MatchSummary, bool, error)

	// Walk discovers matches newer than startCode, at most maxSteps of them
	// partial results come back alongside a transport error
	Walk(ctx context.Context, creds Credentials, startCode string, maxSteps int) ([]MatchSummary, error)
}
