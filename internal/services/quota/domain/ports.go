package domain

import "context"

// ServicePort defines the quota contract consumed by ingestion and http
type ServicePort interface {
	// Snapshot reads the account's current quota state
	Snapshot(ctx context.Context, accountID string) (Snapshot, error)

	// CanIngest decides whether accountID may ingest candidateMB more now
	CanIngest(ctx context.Context, accountID string, candidateMB int) (Decision, error)
}
