package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	service "github.com/sportsreelstechnical/sports-reels-sub001/internal/app"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service processing many players end-to-end", t, func() {
		svc := service.New(
			service.WithWorkerCount(4),
			service.WithQueueSize(1000),
			service.WithDedupeSize(500),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When players with different profiles are evaluated", func() {
			// A strong prospect, a mid-tier player and a bare profile.
			profiles := map[string]model.Bundle{
				"strong": strongBundle("strong"),
				"mid": {
					Player: model.Player{
						ID:                "mid",
						FullName:          "Mid Player",
						ClubMinutesSeason: 650,
						MarketValueEUR:    500_000,
					},
					International: []model.InternationalRecord{
						{TeamName: "National A", TeamLevel: model.SeniorLevel, Caps: 2},
					},
					LeagueBand: 4,
				},
				"bare": {
					Player:     model.Player{ID: "bare", FullName: "Bare Player"},
					LeagueBand: 5,
				},
			}
			for id, b := range profiles {
				So(svc.RegisterPlayer(ctx, b), ShouldBeNil)
				So(svc.EnqueueEvaluation(ctx, model.EvaluationRequest{
					RequestID:   "req-" + id,
					PlayerID:    id,
					RequestedAt: time.Now(),
				}), ShouldBeTrue)
			}

			waitForSnapshots := func() bool {
				deadline := time.Now().Add(3 * time.Second)
				for time.Now().Before(deadline) {
					done := 0
					for id := range profiles {
						if _, err := svc.Report(ctx, id); err == nil {
							done++
						}
					}
					if done == len(profiles) {
						return true
					}
					time.Sleep(10 * time.Millisecond)
				}
				return false
			}

			Convey("Then all snapshots are computed and ranked", func() {
				So(waitForSnapshots(), ShouldBeTrue)

				strong, err := svc.Report(ctx, "strong")
				So(err, ShouldBeNil)
				So(strong.Result.OverallStatus, ShouldEqual, scoring.StatusGreen)

				mid, err := svc.Report(ctx, "mid")
				So(err, ShouldBeNil)
				So(mid.Result.OverallStatus, ShouldEqual, scoring.StatusYellow)
				// A genuinely mid-tier profile stays below the automatic
				// GBE pass, so its ESC score is discretionary, not moot.
				So(mid.Result.UKGBE.Status, ShouldEqual, scoring.StatusYellow)
				So(mid.Result.ESCEligible, ShouldBeTrue)
				So(mid.Result.BestScore(), ShouldBeLessThan, strong.Result.BestScore())

				bare, err := svc.Report(ctx, "bare")
				So(err, ShouldBeNil)
				So(bare.Result.OverallStatus, ShouldEqual, scoring.StatusRed)
				So(bare.Result.MinutesNeeded, ShouldEqual, 800)

				top, err := svc.TopProspects(ctx, 10)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 3)
				So(top[0].PlayerID, ShouldEqual, "strong")
				So(top[0].BestScore, ShouldBeGreaterThan, top[1].BestScore)
				So(top[len(top)-1].PlayerID, ShouldEqual, "bare")
			})

			Convey("Then recomputation after a bundle update changes the verdict", func() {
				So(waitForSnapshots(), ShouldBeTrue)

				improved := profiles["bare"]
				improved.Player.ClubMinutesSeason = 900
				improved.International = []model.InternationalRecord{
					{TeamName: "National A", TeamLevel: model.SeniorLevel, Caps: 8},
				}
				improved.LeagueBand = 2
				So(svc.RegisterPlayer(ctx, improved), ShouldBeNil)
				So(svc.EnqueueEvaluation(ctx, model.EvaluationRequest{
					RequestID:   "req-bare-2",
					PlayerID:    "bare",
					RequestedAt: time.Now(),
				}), ShouldBeTrue)

				var snap2 scoring.Status
				deadline := time.Now().Add(3 * time.Second)
				for time.Now().Before(deadline) {
					if snap, err := svc.Report(ctx, "bare"); err == nil && snap.EvaluationID == "req-bare-2" {
						snap2 = snap.Result.OverallStatus
						break
					}
					time.Sleep(10 * time.Millisecond)
				}
				So(snap2, ShouldNotEqual, scoring.StatusRed)
			})
		})

		Convey("When a burst of requests for one player arrives", func() {
			So(svc.RegisterPlayer(ctx, strongBundle("burst")), ShouldBeNil)
			for i := 0; i < 50; i++ {
				svc.EnqueueEvaluation(ctx, model.EvaluationRequest{
					RequestID:   fmt.Sprintf("burst-req-%d", i),
					PlayerID:    "burst",
					RequestedAt: time.Now(),
				})
			}

			Convey("Then the latest snapshot wins and stats stay consistent", func() {
				deadline := time.Now().Add(3 * time.Second)
				var ok bool
				for time.Now().Before(deadline) {
					if _, err := svc.Report(ctx, "burst"); err == nil {
						ok = true
						break
					}
					time.Sleep(10 * time.Millisecond)
				}
				So(ok, ShouldBeTrue)

				stats := svc.GetStats()
				So(stats["trackedPlayers"], ShouldEqual, 1)
				So(stats["snapshots"], ShouldEqual, 1)
			})
		})
	})
}
