package steam

import (
	"fmt"

	"demovault/internal/core/sharecode"
)

// Credentials is the long-lived per-account secret pair for history calls
type Credentials struct {
	SteamID  string
	AuthCode string
}

// MatchInfo is the partial match document with fields we use
type MatchInfo struct {
	MatchTime       int64  `json:"matchtime"`
	Map             string `json:"map"`
	Mode            int    `json:"mode"`
	ScoreTeam1      int    `json:"score_team1"`
	ScoreTeam2      int    `json:"score_team2"`
	DurationSeconds int    `json:"duration"`

	// reservation cluster hosting the replay; nil when the server
	// no longer advertises one
	ServerCluster *int `json:"server_cluster"`
}

// DemoURL synthesizes the replay artifact URL from the reservation cluster
// the shape is an external contract and must not be altered
// returns empty when no cluster id was present, never an error
func (m MatchInfo) DemoURL(id sharecode.Identifier) string {
	if m.ServerCluster == nil {
		return ""
	}
	return fmt.Sprintf("http://replay%d.valve.net/730/%d_%d.dem.bz2", *m.ServerCluster, id.MatchID, id.OutcomeID)
}

// nextCodeEnvelope is the wire shape of the next-code endpoint
type nextCodeEnvelope struct {
	Result struct {
		NextCode string `json:"nextcode"`
	} `json:"result"`
}

// matchInfoEnvelope is the wire shape of the match-details endpoint
type matchInfoEnvelope struct {
	Result MatchInfo `json:"result"`
}
