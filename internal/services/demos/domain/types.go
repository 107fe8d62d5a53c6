// Package domain holds the ingestion record model and pipeline outcomes
package domain

import "time"

// Status is the ingestion record state machine
// PENDING -> QUEUED -> PROCESSING -> COMPLETED | FAILED
// this service only ever drives the transition into QUEUED; later states
// belong to the downstream analysis subsystem
type Status string

// record states
const (
	StatusPending    Status = "PENDING"
	StatusQueued     Status = "QUEUED"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Record is the durable artifact of a successful ingestion
// checksum is a content address; two records never share one
type Record struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	Filename   string    `json:"filename"`
	Checksum   string    `json:"checksum"`
	FileSizeMB int       `json:"file_size_mb"`
	MapName    string    `json:"map_name"`
	MatchDate  time.Time `json:"match_date"`
	ScoreTeam1 int       `json:"score_team1"`
	ScoreTeam2 int       `json:"score_team2"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Outcome tags the terminal result of an ingest call
// AlreadyDownloaded and DuplicateContent are successful idempotent no-ops,
// not errors; they carry a reference to the existing artifact
type Outcome string

// ingest outcomes
const (
	OutcomeIngested          Outcome = "ingested"
	OutcomeAlreadyDownloaded Outcome = "already_downloaded"
	OutcomeDuplicateContent  Outcome = "duplicate_content"
)

// IngestResult is the tagged result of one ingest call
type IngestResult struct {
	Outcome Outcome `json:"outcome"`
	Record  Record  `json:"record"`

	// local path of the artifact; for dedup outcomes the existing one
	Path string `json:"path,omitempty"`
}
