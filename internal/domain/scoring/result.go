package scoring

// Status is the traffic-light verdict attached to every score.
type Status string

// Status values.
const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// Visa identifies one of the supported visa/endorsement categories.
type Visa string

// Visa categories, in the order the aggregator evaluates them.
const (
	VisaSchengen Visa = "schengen"
	VisaUSO1     Visa = "us-o1"
	VisaUSP1     Visa = "us-p1"
	VisaUKGBE    Visa = "uk-gbe"
	VisaUKESC    Visa = "uk-esc"
)

// Visas lists the categories in evaluation order.
func Visas() []Visa {
	return []Visa{VisaSchengen, VisaUSO1, VisaUSP1, VisaUKGBE, VisaUKESC}
}

// Component is one named sub-score of a calculator's breakdown. Each
// calculator publishes its own component names rather than forcing all five
// into one shared field set.
type Component struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// VisaScore is the result of a single visa calculator.
type VisaScore struct {
	Visa   Visa   `json:"visa"`
	Score  int    `json:"score"` // normalized to [0, 100]
	Status Status `json:"status"`

	// RawPoints is set only by the UK GBE calculator: the 0-50 points-table
	// total that its status (and the ESC gate) is decided on. The normalized
	// Score exists for display only.
	RawPoints int `json:"raw_points,omitempty"`

	Breakdown       []Component `json:"breakdown"`
	Recommendations []string    `json:"recommendations"`
}

// Totals holds the reconciled minute and cap counts shared by all
// calculators. See the aggregation functions in metrics.go for the
// max-of-two-sources rules that produce it.
type Totals struct {
	TotalMinutes         int `json:"total_minutes"`
	ClubMinutes          int `json:"club_minutes"`
	InternationalMinutes int `json:"international_minutes"`
	VideoMinutes         int `json:"video_minutes"`
	TotalCaps            int `json:"total_caps"`
	SeniorCaps           int `json:"senior_caps"`
	ContinentalGames     int `json:"continental_games"`
}

// Result is the aggregate transfer-eligibility verdict for one player.
type Result struct {
	Schengen VisaScore `json:"schengen"`
	USO1     VisaScore `json:"us_o1"`
	USP1     VisaScore `json:"us_p1"`
	UKGBE    VisaScore `json:"uk_gbe"`
	UKESC    VisaScore `json:"uk_esc"`

	Totals        Totals `json:"totals"`
	OverallStatus Status `json:"overall_status"`
	ESCEligible   bool   `json:"esc_eligible"`
	MinutesNeeded int    `json:"minutes_needed"`
	CapsNeeded    int    `json:"caps_needed"`

	// Recommendations merges the calculators' lists in calculator order,
	// first-seen-wins, capped by the engine's maximum.
	Recommendations []string `json:"recommendations"`
}

// BestScore returns the highest individual visa score.
func (r Result) BestScore() int {
	best := r.Schengen.Score
	for _, vs := range []VisaScore{r.USO1, r.USP1, r.UKGBE, r.UKESC} {
		if vs.Score > best {
			best = vs.Score
		}
	}
	return best
}

// ByVisa returns the per-visa result for the given category. The second
// return is false for an unknown category.
func (r Result) ByVisa(v Visa) (VisaScore, bool) {
	switch v {
	case VisaSchengen:
		return r.Schengen, true
	case VisaUSO1:
		return r.USO1, true
	case VisaUSP1:
		return r.USP1, true
	case VisaUKGBE:
		return r.UKGBE, true
	case VisaUKESC:
		return r.UKESC, true
	default:
		return VisaScore{}, false
	}
}
