// Package model contains domain models passed between layers.
package model

import "time"

// Player is the biographical and contract record kept by the profiles
// subsystem. Minute counters exist twice on purpose: the current-season and
// last-12-months fields are maintained by hand alongside derived aggregates,
// and the scoring engine reconciles the two paths.
type Player struct {
	ID                 string     `json:"id"`
	FullName           string     `json:"full_name"`
	ClubMinutesSeason  int        `json:"club_minutes_season"`
	ClubMinutesLast12M int        `json:"club_minutes_last_12m"`
	IntlMinutesSeason  int        `json:"intl_minutes_season"`
	IntlMinutesLast12M int        `json:"intl_minutes_last_12m"`
	ContinentalGames   int        `json:"continental_games"`
	MarketValueEUR     float64    `json:"market_value_eur"`
	AgentName          string     `json:"agent_name,omitempty"`
	ContractEnd        *time.Time `json:"contract_end,omitempty"`
}

// SeasonMetrics is one season-level performance snapshot. A player may have
// zero or more; the first row is the representative one where a single
// snapshot is needed.
type SeasonMetrics struct {
	Season  string `json:"season"`
	Minutes int    `json:"minutes"`
	Goals   int    `json:"goals"`
	Assists int    `json:"assists"`
}

// Video is an uploaded match video.
type Video struct {
	ID            string `json:"id"`
	Title         string `json:"title,omitempty"`
	MinutesPlayed int    `json:"minutes_played"`
}

// VideoInsight holds AI-derived analytics for one video. A video counts as
// analyzed when Analysis is non-empty.
type VideoInsight struct {
	VideoID       string `json:"video_id"`
	MinutesPlayed int    `json:"minutes_played"`
	Analysis      string `json:"analysis,omitempty"`
}

// Analyzed reports whether an AI narrative exists for the video.
func (v VideoInsight) Analyzed() bool { return v.Analysis != "" }

// SeniorLevel is the team level string that marks senior national-team
// appearances. Anything else (u17, u19, u21, ...) is a youth band.
const SeniorLevel = "senior"

// InternationalRecord is one row per (player, national team, level).
type InternationalRecord struct {
	TeamName  string `json:"team_name"`
	TeamLevel string `json:"team_level"`
	Caps      int    `json:"caps"`
}

// Senior reports whether the record counts toward senior caps.
func (r InternationalRecord) Senior() bool { return r.TeamLevel == SeniorLevel }

// InvitationLetter is part of the scoring input contract but not consumed by
// any calculator yet; it is kept as a reserved extension point for the
// compliance team.
type InvitationLetter struct {
	Issuer   string     `json:"issuer"`
	Country  string     `json:"country,omitempty"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`
}

// Bundle is the fully materialized scoring input for one player: the player
// record, its associated rows, and the externally resolved league band
// (1 = strongest league, 5 = weakest). The engine treats every field as
// read-only and tolerates empty slices and zero values everywhere.
type Bundle struct {
	Player        Player                `json:"player"`
	Metrics       []SeasonMetrics       `json:"metrics,omitempty"`
	Videos        []Video               `json:"videos,omitempty"`
	Insights      []VideoInsight        `json:"insights,omitempty"`
	International []InternationalRecord `json:"international,omitempty"`
	Letters       []InvitationLetter    `json:"letters,omitempty"`
	LeagueBand    int                   `json:"league_band"`
}

// EvaluationRequest asks the service to (re)compute a player's eligibility
// asynchronously. RequestID is the idempotency key.
type EvaluationRequest struct {
	RequestID   string    `json:"request_id"`
	PlayerID    string    `json:"player_id"`
	RequestedAt time.Time `json:"requested_at"`
}
