package domain

import "context"

// ServicePort is the demos service surface
type ServicePort interface {
	// Ingest acquires one demo by share code and persists its record
	Ingest(ctx context.Context, accountID string, in IngestInput) (IngestResult, error)

	// Sync walks the account's match history and ingests what it finds
	Sync(ctx context.Context, accountID string, in SyncInput) (SyncOutcome, error)

	// List returns the account's records, newest first
	List(ctx context.Context, accountID string, p ListParams) ([]Record, error)

	// Get returns one record owned by the account
	Get(ctx context.Context, accountID, recordID string) (Record, error)
}
