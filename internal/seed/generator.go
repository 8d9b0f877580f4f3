package seed

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/logger"
)

// Constants for random number generation.
const (
	profileTierDivisor = 8
	videoMinutes       = 90
)

// Constants for profile tier cases.
const (
	caseEstablished  = 0
	caseEstablished2 = 1
	caseEmerging     = 2
	caseEmerging2    = 3
	caseElite        = 4
	caseFringe       = 5
	caseFringe2      = 6
	caseRaw          = 7
)

// profile captures one tier of synthetic player generation.
type profile struct {
	leagueBandMin  int
	leagueBandMax  int
	clubMinutesMin int
	clubMinutesMax int
	intlMinutesMax int
	continentalMax int
	marketValueMin float64
	marketValueMax float64
	seniorCapsMax  int
	videosMax      int
	hasAgent       bool
}

// Tier definitions, roughly matching the spread of a real scouting pool:
// a couple of elite prospects, a broad middle, and a long tail of raw
// players with thin records.
var profiles = map[int64]profile{
	caseElite: {
		leagueBandMin: 1, leagueBandMax: 1,
		clubMinutesMin: 1000, clubMinutesMax: 1500,
		intlMinutesMax: 600, continentalMax: 16,
		marketValueMin: 2_000_000, marketValueMax: 10_000_000,
		seniorCapsMax: 40, videosMax: 8, hasAgent: true,
	},
	caseEstablished: {
		leagueBandMin: 1, leagueBandMax: 2,
		clubMinutesMin: 800, clubMinutesMax: 1200,
		intlMinutesMax: 300, continentalMax: 8,
		marketValueMin: 800_000, marketValueMax: 3_000_000,
		seniorCapsMax: 20, videosMax: 6, hasAgent: true,
	},
	caseEmerging: {
		leagueBandMin: 2, leagueBandMax: 3,
		clubMinutesMin: 500, clubMinutesMax: 900,
		intlMinutesMax: 150, continentalMax: 4,
		marketValueMin: 200_000, marketValueMax: 1_000_000,
		seniorCapsMax: 8, videosMax: 4, hasAgent: false,
	},
	caseFringe: {
		leagueBandMin: 3, leagueBandMax: 4,
		clubMinutesMin: 200, clubMinutesMax: 700,
		intlMinutesMax: 50, continentalMax: 1,
		marketValueMin: 50_000, marketValueMax: 400_000,
		seniorCapsMax: 2, videosMax: 2, hasAgent: false,
	},
	caseRaw: {
		leagueBandMin: 4, leagueBandMax: 5,
		clubMinutesMin: 0, clubMinutesMax: 400,
		intlMinutesMax: 0, continentalMax: 0,
		marketValueMin: 0, marketValueMax: 100_000,
		seniorCapsMax: 0, videosMax: 1, hasAgent: false,
	},
}

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// randomBetween returns a random int in [low, high].
func randomBetween(low, high int) int {
	if high <= low {
		return low
	}
	return low + randomInt(high-low+1)
}

// generatePlayers creates the specified number of player bundles with
// unique player IDs.
func generatePlayers(ctx context.Context, config *Config, stats *Stats) ([]model.Bundle, error) {
	logger.Get().Info(ctx, "generating player bundles with unique IDs", logger.Int("numPlayers", config.NumPlayers))

	bundles := make([]model.Bundle, config.NumPlayers)

	// Pre-allocate player IDs to ensure uniqueness
	playerIDs := make([]string, config.NumPlayers)
	for i := 0; i < config.NumPlayers; i++ {
		playerIDs[i] = uuid.New().String()
	}

	// Generate bundles concurrently
	type bundleResult struct {
		index  int
		bundle model.Bundle
		err    error
	}

	resultChan := make(chan bundleResult, config.NumPlayers)

	// Use worker pool for bundle generation
	workerCount := minInt(config.Workers, config.NumPlayers)
	bundlesPerWorker := config.NumPlayers / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * bundlesPerWorker
		end := start + bundlesPerWorker
		if worker == workerCount-1 {
			end = config.NumPlayers // Last worker gets remaining players
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- bundleResult{index: i, err: ctx.Err()}
					return
				default:
					bundle := generateSingleBundle(i, playerIDs[i])
					resultChan <- bundleResult{index: i, bundle: bundle, err: nil}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumPlayers; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during player generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate player %d: %w", result.index, result.err)
			}
			bundles[result.index] = result.bundle
		}
	}

	stats.PlayersGenerated = len(bundles)
	logger.Get().Info(ctx, "generated player bundles successfully", logger.Int("count", len(bundles)))

	return bundles, nil
}

// generateSingleBundle creates a single bundle for the given index and
// player ID, drawn from one of the profile tiers.
func generateSingleBundle(index int, playerID string) model.Bundle {
	tier, _ := rand.Int(rand.Reader, big.NewInt(profileTierDivisor))
	p := tierProfile(tier.Int64())

	clubMinutes := randomBetween(p.clubMinutesMin, p.clubMinutesMax)
	intlMinutes := randomInt(p.intlMinutesMax + 1)

	player := model.Player{
		ID:                 playerID,
		FullName:           "Prospect " + strconv.Itoa(index+1),
		ClubMinutesSeason:  clubMinutes,
		ClubMinutesLast12M: clubMinutes + randomInt(clubMinutes/2+1),
		IntlMinutesSeason:  intlMinutes,
		IntlMinutesLast12M: intlMinutes,
		ContinentalGames:   randomInt(p.continentalMax + 1),
		MarketValueEUR:     p.marketValueMin + float64(randomInt(int(p.marketValueMax-p.marketValueMin)+1)),
	}
	if p.hasAgent {
		player.AgentName = "Agency " + strconv.Itoa(randomInt(20)+1)
	}

	bundle := model.Bundle{
		Player:     player,
		LeagueBand: randomBetween(p.leagueBandMin, p.leagueBandMax),
	}

	// Footage: full-match videos with matching insights.
	numVideos := randomInt(p.videosMax + 1)
	for v := 0; v < numVideos; v++ {
		videoID := playerID + "-v" + strconv.Itoa(v+1)
		bundle.Videos = append(bundle.Videos, model.Video{
			ID:            videoID,
			MinutesPlayed: videoMinutes,
		})
		bundle.Insights = append(bundle.Insights, model.VideoInsight{
			VideoID:       videoID,
			MinutesPlayed: videoMinutes,
			Analysis:      "auto",
		})
	}

	caps := randomInt(p.seniorCapsMax + 1)
	if caps > 0 {
		bundle.International = append(bundle.International, model.InternationalRecord{
			TeamName:  "National A",
			TeamLevel: model.SeniorLevel,
			Caps:      caps,
		})
	}

	// One recent season line so the season history is never empty for
	// players with minutes.
	if clubMinutes > 0 {
		bundle.Metrics = append(bundle.Metrics, model.SeasonMetrics{
			Season:  strconv.Itoa(time.Now().Year()),
			Minutes: clubMinutes,
			Goals:   randomInt(15),
			Assists: randomInt(12),
		})
	}

	return bundle
}

// tierProfile maps a tier roll onto a profile; the weighting makes the
// middle tiers the most common and elite/raw the rarest.
func tierProfile(roll int64) profile {
	switch roll {
	case caseEstablished, caseEstablished2:
		return profiles[caseEstablished]
	case caseEmerging, caseEmerging2:
		return profiles[caseEmerging]
	case caseElite:
		return profiles[caseElite]
	case caseFringe, caseFringe2:
		return profiles[caseFringe]
	case caseRaw:
		return profiles[caseRaw]
	default:
		return profiles[caseEmerging]
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
