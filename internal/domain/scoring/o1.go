package scoring

import (
	"fmt"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// US O-1 component weights. The O-1 reads "extraordinary ability" off
// recognition signals (market value, senior/continental exposure, analyzed
// footage) rather than raw playing time.
const (
	o1RecognitionMax      = 35.0
	o1InternationalMax    = 30.0
	o1MarketPercentileMax = 20.0
	o1PerformanceMax      = 15.0

	o1RecognitionValueEUR   = 1_000_000.0 // market value granting full recognition
	o1ValuePerPoint         = 50_000.0    // below that, euros per recognition point
	o1MarketCeilingEUR      = 5_000_000.0 // market value mapping to the full percentile band
	o1PointsPerSeniorCap    = 2.0
	o1PointsPerContinental  = 3.0
	o1PointsPerAnalyzedClip = 2.0
	o1MinutesBonus          = 5.0
	o1SeniorCapsTarget      = 10
)

// USO1 scores the player for the US O-1 extraordinary-ability visa.
func (e *Engine) USO1(b model.Bundle) VisaScore {
	return e.usO1(b, Aggregate(b))
}

func (e *Engine) usO1(b model.Bundle, t Totals) VisaScore {
	mv := b.Player.MarketValueEUR

	recognition := o1RecognitionMax
	if mv <= o1RecognitionValueEUR {
		recognition = minF(o1RecognitionMax, mv/o1ValuePerPoint)
	}
	international := minF(o1InternationalMax,
		float64(t.SeniorCaps)*o1PointsPerSeniorCap+float64(t.ContinentalGames)*o1PointsPerContinental)
	marketPercentile := minF(o1MarketPercentileMax, mv/o1MarketCeilingEUR*o1MarketPercentileMax)

	performance := float64(analyzedInsights(b.Insights)) * o1PointsPerAnalyzedClip
	if t.TotalMinutes >= e.minutesTarget {
		performance += o1MinutesBonus
	}
	performance = minF(o1PerformanceMax, performance)

	score := roundScore(recognition + international + marketPercentile + performance)

	var recs []string
	if recognition < o1RecognitionMax {
		recs = append(recs, fmt.Sprintf("Raise market value above EUR %.0f to evidence extraordinary-ability recognition", o1RecognitionValueEUR))
	}
	if t.SeniorCaps < o1SeniorCapsTarget {
		recs = append(recs, fmt.Sprintf("Earn %d more senior caps (O-1 target %d)", o1SeniorCapsTarget-t.SeniorCaps, o1SeniorCapsTarget))
	}
	if t.TotalMinutes < e.minutesTarget {
		recs = append(recs, e.minutesShortfall(t.TotalMinutes))
	}

	return VisaScore{
		Visa:   VisaUSO1,
		Score:  score,
		Status: e.statusFor(score),
		Breakdown: []Component{
			{Name: "recognition", Points: recognition},
			{Name: "international", Points: international},
			{Name: "market_percentile", Points: marketPercentile},
			{Name: "performance", Points: performance},
		},
		Recommendations: recs,
	}
}
