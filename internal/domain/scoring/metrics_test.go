package scoring_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	scoring "github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
)

func TestMinutesReconciliation(t *testing.T) {
	Convey("Given a player with both manual counters and derived rows", t, func() {
		Convey("When the derived club minutes exceed the manual counters", func() {
			p := model.Player{ClubMinutesSeason: 500, ClubMinutesLast12M: 0}
			rows := []model.SeasonMetrics{{Season: "2025/26", Minutes: 900}}

			Convey("Then club minutes take the max, never the sum", func() {
				So(scoring.ClubMinutes(p, rows), ShouldEqual, 900)
			})
		})

		Convey("When the manual counters exceed the derived rows", func() {
			p := model.Player{ClubMinutesSeason: 700, ClubMinutesLast12M: 400}
			rows := []model.SeasonMetrics{{Minutes: 300}, {Minutes: 200}}

			Convey("Then the manual total wins", func() {
				So(scoring.ClubMinutes(p, rows), ShouldEqual, 1100)
			})
		})

		Convey("When no explicit international minutes exist", func() {
			p := model.Player{}
			recs := []model.InternationalRecord{{TeamLevel: "senior", Caps: 10}}

			Convey("Then caps are estimated at 45 minutes each", func() {
				So(scoring.InternationalMinutes(p, recs), ShouldEqual, 450)
			})
		})

		Convey("When explicit international minutes beat the caps estimate", func() {
			p := model.Player{IntlMinutesSeason: 400, IntlMinutesLast12M: 200}
			recs := []model.InternationalRecord{{TeamLevel: "senior", Caps: 10}}

			Convey("Then the explicit counters win", func() {
				So(scoring.InternationalMinutes(p, recs), ShouldEqual, 600)
			})
		})

		Convey("When video rows and insight rows disagree", func() {
			videos := []model.Video{{MinutesPlayed: 90}, {MinutesPlayed: 85}}
			insights := []model.VideoInsight{{MinutesPlayed: 88}, {MinutesPlayed: 95}}

			Convey("Then video minutes take the larger side", func() {
				So(scoring.VideoMinutes(videos, insights), ShouldEqual, 183)
			})
		})

		Convey("When everything is absent", func() {
			Convey("Then all reconciled values are zero, not an error", func() {
				So(scoring.ClubMinutes(model.Player{}, nil), ShouldEqual, 0)
				So(scoring.InternationalMinutes(model.Player{}, nil), ShouldEqual, 0)
				So(scoring.VideoMinutes(nil, nil), ShouldEqual, 0)
			})
		})
	})
}

func TestCapsTotals(t *testing.T) {
	Convey("Given international records across levels", t, func() {
		recs := []model.InternationalRecord{
			{TeamName: "Senior NT", TeamLevel: "senior", Caps: 12},
			{TeamName: "U21", TeamLevel: "u21", Caps: 18},
			{TeamName: "U19", TeamLevel: "u19", Caps: 7},
		}

		Convey("When totals are computed", func() {
			total, senior := scoring.CapsTotals(recs)

			Convey("Then youth bands count toward total but not senior", func() {
				So(total, ShouldEqual, 37)
				So(senior, ShouldEqual, 12)
			})
		})

		Convey("When the level string is not exactly senior", func() {
			_, senior := scoring.CapsTotals([]model.InternationalRecord{
				{TeamLevel: "Senior", Caps: 5},
				{TeamLevel: "senior ", Caps: 5},
			})

			Convey("Then those caps are excluded from the senior count", func() {
				So(senior, ShouldEqual, 0)
			})
		})
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given a fully populated bundle", t, func() {
		b := model.Bundle{
			Player: model.Player{
				ClubMinutesSeason:  900,
				ClubMinutesLast12M: 400,
				IntlMinutesSeason:  200,
				IntlMinutesLast12M: 100,
				ContinentalGames:   12,
			},
			Metrics: []model.SeasonMetrics{{Minutes: 1100, Goals: 12, Assists: 6}},
			Videos:  []model.Video{{MinutesPlayed: 540}},
			International: []model.InternationalRecord{
				{TeamLevel: "senior", Caps: 35},
				{TeamLevel: "u21", Caps: 10},
			},
			LeagueBand: 1,
		}

		Convey("When aggregated", func() {
			totals := scoring.Aggregate(b)

			Convey("Then each channel reconciles independently and the total is their sum", func() {
				So(totals.ClubMinutes, ShouldEqual, 1300)          // manual 1300 beats derived 1100
				So(totals.InternationalMinutes, ShouldEqual, 2025) // 45 caps x 45 beats manual 300
				So(totals.VideoMinutes, ShouldEqual, 540)
				So(totals.TotalMinutes, ShouldEqual, 3865)
				So(totals.TotalCaps, ShouldEqual, 45)
				So(totals.SeniorCaps, ShouldEqual, 35)
				So(totals.ContinentalGames, ShouldEqual, 12)
			})
		})
	})
}
