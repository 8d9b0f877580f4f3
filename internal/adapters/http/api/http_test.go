package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/http/api"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/repository"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
)

// mockDeps implements api.Dependencies for handler tests.
type mockDeps struct {
	seen           map[string]bool
	bundles        map[string]model.Bundle
	snapshots      map[string]repository.Snapshot
	engine         *scoring.Engine
	enqueueSuccess bool
	enqueued       []model.EvaluationRequest
	prospects      []repository.ProspectEntry
}

func newMockDeps() *mockDeps {
	return &mockDeps{
		seen:           make(map[string]bool),
		bundles:        make(map[string]model.Bundle),
		snapshots:      make(map[string]repository.Snapshot),
		engine:         scoring.NewEngine(),
		enqueueSuccess: true,
	}
}

func (m *mockDeps) SeenAndRecord(_ context.Context, id string) bool {
	if m.seen[id] {
		return true
	}
	m.seen[id] = true
	return false
}

func (m *mockDeps) Unrecord(_ context.Context, id string) { delete(m.seen, id) }

func (m *mockDeps) Size() int64 { return int64(len(m.seen)) }

func (m *mockDeps) RegisterPlayer(_ context.Context, b model.Bundle) error {
	m.bundles[b.Player.ID] = b
	return nil
}

func (m *mockDeps) Eligibility(_ context.Context, playerID string) (scoring.Result, error) {
	b, ok := m.bundles[playerID]
	if !ok {
		return scoring.Result{}, repository.ErrNotFound
	}
	return m.engine.Evaluate(b), nil
}

func (m *mockDeps) Report(_ context.Context, playerID string) (repository.Snapshot, error) {
	snap, ok := m.snapshots[playerID]
	if !ok {
		return repository.Snapshot{}, repository.ErrNotFound
	}
	return snap, nil
}

func (m *mockDeps) EnqueueEvaluation(_ context.Context, r model.EvaluationRequest) bool {
	if !m.enqueueSuccess {
		return false
	}
	m.enqueued = append(m.enqueued, r)
	return true
}

func (m *mockDeps) TopProspects(_ context.Context, n int) ([]repository.ProspectEntry, error) {
	if n < len(m.prospects) {
		return m.prospects[:n], nil
	}
	return m.prospects, nil
}

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"tracked_players": 1}
}

func newTestServer(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	srv := api.NewServer(deps, mockStats{}, 100)
	srv.Register(context.Background(), mux)
	return mux
}

func playerBody(id, name string) string {
	return `{
		"player": {"id": "` + id + `", "full_name": "` + name + `", "club_minutes_season": 900, "market_value_eur": 2000000},
		"international": [{"team_name": "National A", "team_level": "senior", "caps": 12}],
		"league_band": 1
	}`
}

func TestPostPlayer(t *testing.T) {
	Convey("Given the players endpoint", t, func() {
		deps := newMockDeps()
		mux := newTestServer(deps)

		Convey("When a valid player is posted", func() {
			req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(playerBody("p1", "Ada Jones")))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the bundle is registered", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				So(deps.bundles, ShouldContainKey, "p1")
				So(deps.bundles["p1"].LeagueBand, ShouldEqual, 1)
			})
		})

		Convey("When the body is not JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader("{nope"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the player ID is missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(`{"player": {"full_name": "No ID"}}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the method is GET", func() {
			req := httptest.NewRequest(http.MethodGet, "/players", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestGetEligibility(t *testing.T) {
	Convey("Given a registered player", t, func() {
		deps := newMockDeps()
		mux := newTestServer(deps)

		post := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(playerBody("p1", "Ada Jones")))
		mux.ServeHTTP(httptest.NewRecorder(), post)

		Convey("When the full eligibility is requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/players/p1/eligibility", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then a complete result is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var result scoring.Result
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.Totals.ClubMinutes, ShouldEqual, 900)
				So(result.UKGBE.RawPoints, ShouldBeGreaterThan, 0)
				So(result.OverallStatus, ShouldNotBeEmpty)
			})
		})

		Convey("When a single visa is requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/players/p1/eligibility/uk-gbe", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then only that visa score is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var vs scoring.VisaScore
				So(json.Unmarshal(rec.Body.Bytes(), &vs), ShouldBeNil)
				So(vs.Visa, ShouldEqual, scoring.VisaUKGBE)
			})
		})

		Convey("When an unknown visa is requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/players/p1/eligibility/mars-visa", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the player is unknown", func() {
			req := httptest.NewRequest(http.MethodGet, "/players/ghost/eligibility", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestGetReport(t *testing.T) {
	Convey("Given a stored snapshot", t, func() {
		deps := newMockDeps()
		mux := newTestServer(deps)
		deps.snapshots["p1"] = repository.Snapshot{
			PlayerID:     "p1",
			EvaluationID: "eval-1",
			Result:       scoring.Result{OverallStatus: scoring.StatusYellow},
			ComputedAt:   time.Now().UTC(),
		}

		Convey("When the report is requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/players/p1/report", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the snapshot is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var snap repository.Snapshot
				So(json.Unmarshal(rec.Body.Bytes(), &snap), ShouldBeNil)
				So(snap.EvaluationID, ShouldEqual, "eval-1")
			})
		})

		Convey("When no snapshot exists", func() {
			req := httptest.NewRequest(http.MethodGet, "/players/p2/report", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestPostEvaluation(t *testing.T) {
	Convey("Given the evaluations endpoint", t, func() {
		deps := newMockDeps()
		mux := newTestServer(deps)
		body := `{"request_id": "req-1", "player_id": "p1", "ts": "2026-08-01T10:00:00Z"}`

		Convey("When a valid request is posted", func() {
			req := httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it is accepted and enqueued", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				So(len(deps.enqueued), ShouldEqual, 1)
				So(deps.enqueued[0].RequestID, ShouldEqual, "req-1")
			})
		})

		Convey("When the same request is posted twice", func() {
			first := httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(body))
			mux.ServeHTTP(httptest.NewRecorder(), first)

			second := httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, second)

			Convey("Then the duplicate is acknowledged without enqueuing", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var ack map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["duplicate"], ShouldEqual, true)
				So(len(deps.enqueued), ShouldEqual, 1)
			})
		})

		Convey("When the queue rejects the request", func() {
			deps.enqueueSuccess = false
			req := httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then 429 is returned and the ID can be retried", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
				So(deps.seen, ShouldNotContainKey, "req-1")
			})
		})

		Convey("When required fields are missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(`{"player_id": "p1"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the timestamp is malformed", func() {
			req := httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(
				`{"request_id": "req-2", "player_id": "p1", "ts": "yesterday"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestGetProspects(t *testing.T) {
	Convey("Given the prospects endpoint", t, func() {
		deps := newMockDeps()
		deps.prospects = []repository.ProspectEntry{
			{Rank: 1, PlayerID: "p2", BestScore: 90, BestVisa: scoring.VisaUKGBE, OverallStatus: scoring.StatusGreen},
			{Rank: 2, PlayerID: "p1", BestScore: 70, BestVisa: scoring.VisaSchengen, OverallStatus: scoring.StatusYellow},
		}
		mux := newTestServer(deps)

		Convey("When prospects are requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/prospects?limit=10", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the ranking is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var entries []repository.ProspectEntry
				So(json.Unmarshal(rec.Body.Bytes(), &entries), ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(entries[0].PlayerID, ShouldEqual, "p2")
			})
		})

		Convey("When the limit is missing or invalid", func() {
			for _, target := range []string{"/prospects", "/prospects?limit=0", "/prospects?limit=abc"} {
				req := httptest.NewRequest(http.MethodGet, target, nil)
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, req)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			}
		})

		Convey("When the limit exceeds the maximum", func() {
			req := httptest.NewRequest(http.MethodGet, "/prospects?limit=1000", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		mux := newTestServer(newMockDeps())

		Convey("When stats are requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then a JSON document is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var stats map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats, ShouldContainKey, "tracked_players")
			})
		})
	})
}
