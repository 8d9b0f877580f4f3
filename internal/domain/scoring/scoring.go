// Package scoring implements the transfer-eligibility rules engine: a
// deterministic, side-effect-free points engine that reconciles a player's
// club, national-team and video-derived minutes and produces explainable
// visa-eligibility scores for five jurisdictions (Schengen, US O-1, US P-1,
// UK GBE, UK ESC) plus an overall verdict.
//
// Every function here is total over its documented input shape: missing
// numeric fields degrade to zero, missing slices to empty, and no call path
// returns an error. The engine holds no state across calls, so concurrent
// use from multiple goroutines needs no coordination.
package scoring

import (
	"math"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// Default engine thresholds. These are the compiled-in policy; deployments
// override them through config and the engine options below.
const (
	defaultGreenScore         = 60
	defaultYellowScore        = 35
	defaultMinutesTarget      = 800
	defaultMinutesPartial     = 600
	defaultCapsTarget         = 5
	defaultGBEGreenPoints     = 15
	defaultGBEYellowPoints    = 10
	defaultMaxRecommendations = 5

	maxScore = 100
)

// Engine evaluates player bundles against the visa rule set. The zero value
// is not usable; construct with NewEngine.
type Engine struct {
	greenScore      int // normalized score needed for green status
	yellowScore     int // normalized score needed for yellow status
	minutesTarget   int // full verified-minutes benchmark (green gate)
	minutesPartial  int // partial verified-minutes benchmark (yellow gate)
	capsTarget      int // senior caps the aggregate verdict asks for
	gbeGreenPoints  int // raw GBE points for an automatic pass
	gbeYellowPoints int // raw GBE points that open the ESC route
	maxRecs         int // cap on the aggregate recommendation list
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithScoreThresholds sets the green/yellow boundaries applied to
// normalized 0-100 scores.
func WithScoreThresholds(green, yellow int) Option {
	return func(e *Engine) {
		if green > yellow && yellow > 0 {
			e.greenScore = green
			e.yellowScore = yellow
		}
	}
}

// WithMinutesTargets sets the full and partial verified-minutes benchmarks.
func WithMinutesTargets(target, partial int) Option {
	return func(e *Engine) {
		if target > partial && partial > 0 {
			e.minutesTarget = target
			e.minutesPartial = partial
		}
	}
}

// WithCapsTarget sets the senior-caps count the aggregate verdict works toward.
func WithCapsTarget(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.capsTarget = n
		}
	}
}

// WithGBEPointThresholds sets the raw-point boundaries of the UK GBE table.
// Status for GBE is decided on raw points, never on the normalized score.
func WithGBEPointThresholds(green, yellow int) Option {
	return func(e *Engine) {
		if green > yellow && yellow > 0 {
			e.gbeGreenPoints = green
			e.gbeYellowPoints = yellow
		}
	}
}

// WithMaxRecommendations caps the aggregate recommendation list.
func WithMaxRecommendations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxRecs = n
		}
	}
}

// NewEngine creates an Engine with default thresholds, then applies options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		greenScore:      defaultGreenScore,
		yellowScore:     defaultYellowScore,
		minutesTarget:   defaultMinutesTarget,
		minutesPartial:  defaultMinutesPartial,
		capsTarget:      defaultCapsTarget,
		gbeGreenPoints:  defaultGBEGreenPoints,
		gbeYellowPoints: defaultGBEYellowPoints,
		maxRecs:         defaultMaxRecommendations,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// statusFor maps a normalized score to a traffic-light status using the
// standard thresholds. UK GBE does not use this; see gbeStatusFor.
func (e *Engine) statusFor(score int) Status {
	switch {
	case score >= e.greenScore:
		return StatusGreen
	case score >= e.yellowScore:
		return StatusYellow
	default:
		return StatusRed
	}
}

// gbeStatusFor maps raw GBE points (0-50) to a status. This intentionally
// ignores the normalized display score; the ESC gate depends on it.
func (e *Engine) gbeStatusFor(points int) Status {
	switch {
	case points >= e.gbeGreenPoints:
		return StatusGreen
	case points >= e.gbeYellowPoints:
		return StatusYellow
	default:
		return StatusRed
	}
}

// roundScore rounds a float component sum to an integer score in [0, 100].
func roundScore(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > maxScore {
		return maxScore
	}
	return n
}

// goalsAssists returns goals+assists from the representative (first) season
// snapshot, or 0 when no snapshot exists.
func goalsAssists(rows []model.SeasonMetrics) int {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].Goals + rows[0].Assists
}

// analyzedInsights counts insight rows that carry an AI narrative.
func analyzedInsights(insights []model.VideoInsight) int {
	n := 0
	for _, in := range insights {
		if in.Analyzed() {
			n++
		}
	}
	return n
}
