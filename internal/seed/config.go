// Package seed generates synthetic player bundles and drives the
// eligibility API with them.
package seed

import (
	"time"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumPlayers int           // Number of players to generate
	TopN       int           // Number of prospects to fetch afterwards
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated bundles
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
}

// playerPayload mirrors the POST /players wire schema.
type playerPayload struct {
	Player        model.Player                `json:"player"`
	Metrics       []model.SeasonMetrics       `json:"metrics,omitempty"`
	Videos        []model.Video               `json:"videos,omitempty"`
	Insights      []model.VideoInsight        `json:"insights,omitempty"`
	International []model.InternationalRecord `json:"international,omitempty"`
	LeagueBand    int                         `json:"league_band"`
}

// evaluationPayload mirrors the POST /evaluations wire schema.
type evaluationPayload struct {
	RequestID string `json:"request_id"`
	PlayerID  string `json:"player_id"`
	TS        string `json:"ts"`
}

// ackResponse mirrors the submission acknowledgement.
type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// prospectEntry mirrors a row of GET /prospects.
type prospectEntry struct {
	Rank          int    `json:"rank"`
	PlayerID      string `json:"player_id"`
	FullName      string `json:"full_name"`
	BestScore     int    `json:"best_score"`
	BestVisa      string `json:"best_visa"`
	OverallStatus string `json:"overall_status"`
}

// Stats holds run statistics.
type Stats struct {
	PlayersGenerated     int
	PlayersRegistered    int
	EvaluationsSubmitted int
	EvaluationsAccepted  int
	EvaluationsDuplicate int
	EvaluationsFailed    int
	ProspectsRetrieved   int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
