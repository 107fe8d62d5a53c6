// Package domain holds match history types and contracts
package domain

import "time"

// GameMode is the match mode derived from the remote enum
type GameMode string

// known modes; anything else decodes as unknown rather than failing
const (
	ModeCompetitive GameMode = "competitive"
	ModeWingman     GameMode = "wingman"
	ModePremier     GameMode = "premier"
	ModeUnknown     GameMode = "unknown"
)

// ModeFromEnum maps the remote small-int mode enum
func ModeFromEnum(n int) GameMode {
	switch n {
	case 1:
		return ModeCompetitive
	case 2:
		return ModeWingman
	case 3:
		return ModePremier
	default:
		return ModeUnknown
	}
}

// Score is the final team score pair
type Score struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// Credentials is the per-account secret pair for history walking
type Credentials struct {
	SteamID  string
	AuthCode string
}

// MatchSummary is the transient result of resolving a share code
// never persisted here; the ingestion pipeline consumes it
type MatchSummary struct {
	MatchID         uint64    `json:"match_id,string"`
	ShareCode       string    `json:"share_code"`
	MatchTime       time.Time `json:"match_time"`
	Map             string    `json:"map"`
	GameMode        GameMode  `json:"game_mode"`
	Score           Score     `json:"score"`
	DurationSeconds int       `json:"duration_seconds"`

	// empty when the reservation cluster was absent from the response
	DemoURL string `json:"demo_url,omitempty"`
}
