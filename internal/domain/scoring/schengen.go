package scoring

import (
	"fmt"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// Schengen component weights.
const (
	schengenMinutesMax       = 40.0
	schengenInternationalMax = 30.0
	schengenLeagueMax        = 20.0
	schengenPerformanceMax   = 10.0
	schengenPointsPerCap     = 3.0
	schengenPointsPerGA      = 0.5
)

// Schengen scores the player for Schengen-area sporting visas: a playing-time
// weighted model with a linear ramp toward the verified-minutes benchmark.
func (e *Engine) Schengen(b model.Bundle) VisaScore {
	return e.schengen(b, Aggregate(b))
}

func (e *Engine) schengen(b model.Bundle, t Totals) VisaScore {
	minutes := minF(schengenMinutesMax, float64(t.TotalMinutes)/float64(e.minutesTarget)*schengenMinutesMax)
	international := minF(schengenInternationalMax, float64(t.TotalCaps)*schengenPointsPerCap)
	league := schengenLeagueMax * leagueBandMultiplier(b.LeagueBand)
	performance := minF(schengenPerformanceMax, float64(goalsAssists(b.Metrics))*schengenPointsPerGA)

	score := roundScore(minutes + international + league + performance)

	var recs []string
	if t.TotalMinutes < e.minutesTarget {
		recs = append(recs, e.minutesShortfall(t.TotalMinutes))
	}
	if t.TotalCaps < e.capsTarget {
		recs = append(recs, fmt.Sprintf("Earn %d more international caps (target %d)", e.capsTarget-t.TotalCaps, e.capsTarget))
	}

	return VisaScore{
		Visa:   VisaSchengen,
		Score:  score,
		Status: e.statusFor(score),
		Breakdown: []Component{
			{Name: "minutes", Points: minutes},
			{Name: "international", Points: international},
			{Name: "league", Points: league},
			{Name: "performance", Points: performance},
		},
		Recommendations: recs,
	}
}

// minutesShortfall is the shared verified-minutes recommendation. Several
// calculators and the aggregator emit the identical string on purpose so the
// aggregate list collapses them into one entry.
func (e *Engine) minutesShortfall(total int) string {
	return fmt.Sprintf("Log %d more verified minutes to reach the %d-minute benchmark", e.minutesTarget-total, e.minutesTarget)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
