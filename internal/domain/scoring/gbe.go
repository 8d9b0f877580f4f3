package scoring

import (
	"fmt"
	"math"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// UK GBE is a discrete points table, not a weighted sum: four banded
// components add up to a raw total out of 50, and that raw total (never the
// normalized display score) decides the status. The ESC route keys off the
// resulting status, so the raw/normalized split is load-bearing.
const (
	gbeMaxPoints            = 50
	gbeSeniorCapsBandTarget = 5    // caps count the targeted recommendation works toward
	gbeTopDomesticMinutes   = 1800 // top band of the domestic-minutes table
)

// pointsTier maps a minimum stat value to the points the band awards.
// Tiers are ordered highest band first.
type pointsTier struct {
	threshold int
	points    int
}

var (
	gbeNationalTeamTiers = []pointsTier{{75, 15}, {50, 12}, {30, 10}, {15, 8}, {5, 5}, {1, 3}}
	gbeContinentalTiers  = []pointsTier{{20, 10}, {10, 7}, {5, 4}, {1, 2}}
	gbeDomesticTiers     = []pointsTier{{1800, 10}, {1200, 7}, {600, 4}, {300, 2}}
)

func tierPoints(tiers []pointsTier, v int) int {
	for _, t := range tiers {
		if v >= t.threshold {
			return t.points
		}
	}
	return 0
}

// nextTier returns the lowest band strictly above v, or ok=false when v
// already sits in the top band.
func nextTier(tiers []pointsTier, v int) (tier pointsTier, ok bool) {
	for i := len(tiers) - 1; i >= 0; i-- {
		if v < tiers[i].threshold {
			return tiers[i], true
		}
	}
	return pointsTier{}, false
}

// gbeClubLeaguePoints is the GBE league table. It is deliberately coarser
// than leagueBandMultiplier and must stay separate from it.
func gbeClubLeaguePoints(band int) int {
	switch band {
	case 1:
		return 15
	case 2:
		return 12
	case 3:
		return 8
	case 4:
		return 4
	default:
		return 2
	}
}

// UKGBE scores the player against the UK Governing Body Endorsement points
// table.
func (e *Engine) UKGBE(b model.Bundle) VisaScore {
	return e.ukGBE(b, Aggregate(b))
}

func (e *Engine) ukGBE(b model.Bundle, t Totals) VisaScore {
	nationalTeam := tierPoints(gbeNationalTeamTiers, t.SeniorCaps)
	clubLeague := gbeClubLeaguePoints(b.LeagueBand)
	continental := tierPoints(gbeContinentalTiers, t.ContinentalGames)
	// Domestic club minutes only; international and video minutes do not
	// count toward this band.
	domesticMinutes := tierPoints(gbeDomesticTiers, t.ClubMinutes)

	points := nationalTeam + clubLeague + continental + domesticMinutes
	score := int(math.Round(float64(points) / gbeMaxPoints * 100))

	var recs []string
	if points < e.gbeGreenPoints {
		recs = append(recs, fmt.Sprintf("Needs %d more GBE points to reach the %d-point automatic pass", e.gbeGreenPoints-points, e.gbeGreenPoints))
		if t.SeniorCaps < gbeSeniorCapsBandTarget {
			gain := tierPoints(gbeNationalTeamTiers, gbeSeniorCapsBandTarget) - nationalTeam
			recs = append(recs, fmt.Sprintf("Reaching %d senior caps is worth %d more GBE points", gbeSeniorCapsBandTarget, gain))
		}
		if t.ClubMinutes < gbeTopDomesticMinutes {
			if tier, ok := nextTier(gbeDomesticTiers, t.ClubMinutes); ok {
				recs = append(recs, fmt.Sprintf("Playing %d more domestic minutes (to %d) is worth %d more GBE points",
					tier.threshold-t.ClubMinutes, tier.threshold, tier.points-domesticMinutes))
			}
		}
		if t.TotalMinutes < e.minutesTarget {
			recs = append(recs, e.minutesShortfall(t.TotalMinutes))
		}
	}

	return VisaScore{
		Visa:      VisaUKGBE,
		Score:     score,
		Status:    e.gbeStatusFor(points),
		RawPoints: points,
		Breakdown: []Component{
			{Name: "national_team", Points: float64(nationalTeam)},
			{Name: "club_league", Points: float64(clubLeague)},
			{Name: "continental", Points: float64(continental)},
			{Name: "domestic_minutes", Points: float64(domesticMinutes)},
		},
		Recommendations: recs,
	}
}
