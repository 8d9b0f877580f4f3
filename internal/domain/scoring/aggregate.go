package scoring

import (
	"fmt"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// Evaluate is the engine's primary entry point: one aggregation pass, all
// five calculators (ESC gated on the GBE result), and the combined verdict.
func (e *Engine) Evaluate(b model.Bundle) Result {
	t := Aggregate(b)

	schengen := e.schengen(b, t)
	o1 := e.usO1(b, t)
	p1 := e.usP1(b, t)
	gbe := e.ukGBE(b, t)
	esc := e.ukESC(b, t, gbe)

	r := Result{
		Schengen: schengen,
		USO1:     o1,
		USP1:     p1,
		UKGBE:    gbe,
		UKESC:    esc,
		Totals:   t,
	}

	// Green demands both benchmark minutes AND a strong individual score;
	// yellow is satisfied by either partial minutes OR a moderate score.
	// The AND/OR asymmetry is observed platform policy; keep it as is.
	best := r.BestScore()
	switch {
	case t.TotalMinutes >= e.minutesTarget && best >= e.greenScore:
		r.OverallStatus = StatusGreen
	case t.TotalMinutes >= e.minutesPartial || best >= e.yellowScore:
		r.OverallStatus = StatusYellow
	default:
		r.OverallStatus = StatusRed
	}

	if t.TotalMinutes < e.minutesTarget {
		r.MinutesNeeded = e.minutesTarget - t.TotalMinutes
	}
	// Caps shortfall is only surfaced while the GBE route is still open.
	if gbe.Status != StatusGreen && t.SeniorCaps < e.capsTarget {
		r.CapsNeeded = e.capsTarget - t.SeniorCaps
	}
	r.ESCEligible = gbe.Status == StatusYellow

	merged := newRecommendationList(e.maxRecs)
	if r.MinutesNeeded > 0 {
		merged.add(e.minutesShortfall(t.TotalMinutes))
	}
	if r.CapsNeeded > 0 {
		merged.add(fmt.Sprintf("Earn %d more senior caps (target %d)", r.CapsNeeded, e.capsTarget))
	}
	for _, vs := range []VisaScore{schengen, o1, p1, gbe, esc} {
		for _, rec := range vs.Recommendations {
			merged.add(rec)
		}
	}
	r.Recommendations = merged.items

	return r
}

// recommendationList deduplicates exact strings first-seen-wins and stops
// accepting entries once the cap is reached.
type recommendationList struct {
	items []string
	seen  map[string]struct{}
	max   int
}

func newRecommendationList(max int) *recommendationList {
	return &recommendationList{
		items: make([]string, 0, max),
		seen:  make(map[string]struct{}, max),
		max:   max,
	}
}

func (l *recommendationList) add(rec string) {
	if len(l.items) >= l.max {
		return
	}
	if _, dup := l.seen[rec]; dup {
		return
	}
	l.seen[rec] = struct{}{}
	l.items = append(l.items, rec)
}
