package scoring

import (
	"fmt"
	"strings"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// US P-1 component weights. The P-1 reads "internationally recognized
// athlete" off playing time, league strength, footage volume and
// representation paperwork.
const (
	p1MinutesMax     = 40.0
	p1LeagueMax      = 25.0
	p1VideoMax       = 20.0
	p1PointsPerClip  = 4.0
	p1AgentPoints    = 7.5
	p1ContractPoints = 7.5
	p1VideoTarget    = 5
)

// USP1 scores the player for the US P-1 internationally-recognized-athlete visa.
func (e *Engine) USP1(b model.Bundle) VisaScore {
	return e.usP1(b, Aggregate(b))
}

func (e *Engine) usP1(b model.Bundle, t Totals) VisaScore {
	minutes := minF(p1MinutesMax, float64(t.TotalMinutes)/float64(e.minutesTarget)*p1MinutesMax)
	league := p1LeagueMax * leagueBandMultiplier(b.LeagueBand)
	video := minF(p1VideoMax, float64(len(b.Videos))*p1PointsPerClip)

	validation := 0.0
	hasAgent := strings.TrimSpace(b.Player.AgentName) != ""
	if hasAgent {
		validation += p1AgentPoints
	}
	if b.Player.ContractEnd != nil {
		validation += p1ContractPoints
	}

	score := roundScore(minutes + league + video + validation)

	var recs []string
	if t.TotalMinutes < e.minutesTarget {
		recs = append(recs, e.minutesShortfall(t.TotalMinutes))
	}
	if !hasAgent {
		recs = append(recs, "Add a licensed agent to the profile to support the P-1 petition")
	}
	if len(b.Videos) < p1VideoTarget {
		recs = append(recs, fmt.Sprintf("Upload %d more match videos (target %d)", p1VideoTarget-len(b.Videos), p1VideoTarget))
	}

	return VisaScore{
		Visa:   VisaUSP1,
		Score:  score,
		Status: e.statusFor(score),
		Breakdown: []Component{
			{Name: "minutes", Points: minutes},
			{Name: "league", Points: league},
			{Name: "video_evidence", Points: video},
			{Name: "validation", Points: validation},
		},
		Recommendations: recs,
	}
}
