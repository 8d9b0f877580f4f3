package scoring

import (
	"fmt"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// UK ESC bonuses. The ESC (exceptional sportsperson) route is not an
// independent calculator: it is gated on the GBE result. GBE green makes it
// moot, GBE red makes it unreachable, and only GBE yellow computes the
// discretionary score below.
const (
	escBase = 50

	escCapsFull    = 15 // senior caps at or above escCapsTarget
	escCapsPartial = 10 // at least one senior cap
	escCapsTarget  = 3

	escMinutesFull    = 15 // total minutes at or above the benchmark
	escMinutesPartial = 10
	escPartialMinutes = 500 // minutes granting the partial bonus

	escVideoTarget = 5
)

var (
	escVideoTiers       = []pointsTier{{10, 10}, {5, 7}, {3, 4}}
	escPerformanceTiers = []pointsTier{{15, 10}, {10, 7}, {5, 4}}
)

// UKESC scores the player for the UK exceptional-sportsperson route. The GBE
// result must be the one computed for the same bundle; passing it in rather
// than recomputing guarantees the gate can never disagree with the GBE score
// reported alongside it.
func (e *Engine) UKESC(b model.Bundle, gbe VisaScore) VisaScore {
	return e.ukESC(b, Aggregate(b), gbe)
}

func (e *Engine) ukESC(b model.Bundle, t Totals, gbe VisaScore) VisaScore {
	switch gbe.Status {
	case StatusGreen:
		return VisaScore{
			Visa:            VisaUKESC,
			Score:           maxScore,
			Status:          StatusGreen,
			Breakdown:       gbe.Breakdown,
			Recommendations: []string{"Qualifies via the standard GBE route; ESC not required"},
		}
	case StatusRed:
		return VisaScore{
			Visa:      VisaUKESC,
			Score:     0,
			Status:    StatusRed,
			Breakdown: []Component{{Name: "base", Points: 0}},
			Recommendations: []string{
				fmt.Sprintf("Reach GBE yellow (%d points) before the ESC route opens", e.gbeYellowPoints),
			},
		}
	}

	// GBE yellow: the borderline case the ESC route exists for.
	caps := 0.0
	switch {
	case t.SeniorCaps >= escCapsTarget:
		caps = escCapsFull
	case t.SeniorCaps >= 1:
		caps = escCapsPartial
	}

	minutes := 0.0
	switch {
	case t.TotalMinutes >= e.minutesTarget:
		minutes = escMinutesFull
	case t.TotalMinutes >= escPartialMinutes:
		minutes = escMinutesPartial
	}

	video := float64(tierPoints(escVideoTiers, len(b.Videos)))
	performance := float64(tierPoints(escPerformanceTiers, goalsAssists(b.Metrics)))

	score := roundScore(escBase + caps + minutes + video + performance)

	var recs []string
	if t.SeniorCaps < escCapsTarget {
		recs = append(recs, fmt.Sprintf("Earn %d more senior caps (ESC looks for %d)", escCapsTarget-t.SeniorCaps, escCapsTarget))
	}
	if t.TotalMinutes < e.minutesTarget {
		recs = append(recs, e.minutesShortfall(t.TotalMinutes))
	}
	if len(b.Videos) < escVideoTarget {
		recs = append(recs, fmt.Sprintf("Upload %d more match videos (target %d)", escVideoTarget-len(b.Videos), escVideoTarget))
	}

	return VisaScore{
		Visa:   VisaUKESC,
		Score:  score,
		Status: e.statusFor(score),
		Breakdown: []Component{
			{Name: "base", Points: escBase},
			{Name: "caps", Points: caps},
			{Name: "minutes", Points: minutes},
			{Name: "video_evidence", Points: video},
			{Name: "performance", Points: performance},
		},
		Recommendations: recs,
	}
}
