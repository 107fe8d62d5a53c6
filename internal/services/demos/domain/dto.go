package domain

import "time"

// IngestInput is the request body for a single-demo ingestion
type IngestInput struct {
	ShareCode string `json:"share_code" validate:"required" example:"CSGO-Ab3dE-fGh4i-JkLm2-nOpQ5-rStUv"`

	// optional replacement for the replay URL derived from the code
	DemoURL string `json:"demo_url,omitempty" validate:"omitempty,url" example:"http://replay128.valve.net/730/003412_129.dem.bz2"`
}

// SyncInput is the request body for a match-history sync
type SyncInput struct {
	// resume point; defaults to the stored last known code
	StartCode string `json:"start_code,omitempty" validate:"omitempty" example:"CSGO-Ab3dE-fGh4i-JkLm2-nOpQ5-rStUv"`

	MaxSteps int `json:"max_steps,omitempty" validate:"omitempty,min=1,max=10" example:"5"`
}

// SyncOutcome summarizes one sync run
type SyncOutcome struct {
	Discovered int            `json:"discovered"`
	Results    []IngestResult `json:"results"`
	LastCode   string         `json:"last_code,omitempty"`

	// non-fatal walker error, present when results are partial
	WalkError string `json:"walk_error,omitempty"`
}

// ListParams filters a record listing
type ListParams struct {
	Status string     `json:"status,omitempty" validate:"omitempty,oneof=PENDING QUEUED PROCESSING COMPLETED FAILED"`
	Since  *time.Time `json:"since,omitempty"`
	Limit  int        `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
	Offset int        `json:"offset,omitempty" validate:"omitempty,min=0"`
}
