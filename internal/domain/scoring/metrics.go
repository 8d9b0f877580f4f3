package scoring

import "github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"

// MinutesPerCap is the playing-time estimate credited per international cap
// when no explicit international minutes were recorded on the player.
const MinutesPerCap = 45

// The platform has two independent data-entry paths for the same concepts:
// manually maintained counters on the player record, and aggregates derived
// from season/video/international rows. Reconciliation always takes the
// larger of the two candidates, never their sum, so double entry cannot
// inflate a total.

// ClubMinutes reconciles domestic playing time: the player's own
// current-season + last-12-months counters against the sum of season
// snapshot minutes.
func ClubMinutes(p model.Player, rows []model.SeasonMetrics) int {
	manual := p.ClubMinutesSeason + p.ClubMinutesLast12M
	derived := 0
	for _, r := range rows {
		derived += r.Minutes
	}
	return maxInt(manual, derived)
}

// InternationalMinutes reconciles national-team playing time: the player's
// own counters against a caps-based estimate of MinutesPerCap per cap.
func InternationalMinutes(p model.Player, recs []model.InternationalRecord) int {
	manual := p.IntlMinutesSeason + p.IntlMinutesLast12M
	caps := 0
	for _, r := range recs {
		caps += r.Caps
	}
	return maxInt(manual, caps*MinutesPerCap)
}

// VideoMinutes reconciles footage evidence: minutes claimed on the raw video
// rows against minutes confirmed by the AI insight rows.
func VideoMinutes(videos []model.Video, insights []model.VideoInsight) int {
	claimed := 0
	for _, v := range videos {
		claimed += v.MinutesPlayed
	}
	confirmed := 0
	for _, in := range insights {
		confirmed += in.MinutesPlayed
	}
	return maxInt(claimed, confirmed)
}

// CapsTotals sums caps across all international records and, separately,
// across records at the senior level only. Youth bands count toward the
// total but never toward senior.
func CapsTotals(recs []model.InternationalRecord) (total, senior int) {
	for _, r := range recs {
		total += r.Caps
		if r.Senior() {
			senior += r.Caps
		}
	}
	return total, senior
}

// Aggregate runs the full reconciliation pass once for a bundle.
func Aggregate(b model.Bundle) Totals {
	t := Totals{
		ClubMinutes:          ClubMinutes(b.Player, b.Metrics),
		InternationalMinutes: InternationalMinutes(b.Player, b.International),
		VideoMinutes:         VideoMinutes(b.Videos, b.Insights),
		ContinentalGames:     b.Player.ContinentalGames,
	}
	t.TotalCaps, t.SeniorCaps = CapsTotals(b.International)
	t.TotalMinutes = t.ClubMinutes + t.InternationalMinutes + t.VideoMinutes
	return t
}

// leagueBandMultiplier is the weighting table used by the Schengen and US
// calculators: band 1 is the strongest league. UK GBE deliberately uses its
// own coarser points table (see gbe.go) instead of this multiplier.
func leagueBandMultiplier(band int) float64 {
	switch band {
	case 1:
		return 1.0
	case 2:
		return 0.9
	case 3:
		return 0.75
	case 4:
		return 0.5
	default:
		return 0.25
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
