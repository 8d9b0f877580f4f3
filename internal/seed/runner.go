package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete seeding run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting eligibility seeding run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", config.NumPlayers),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate player bundles
	bundles, err := generatePlayers(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("player generation failed: %w", err)
	}

	// Step 3: Register players concurrently
	if err := registerPlayers(ctx, config, bundles, stats); err != nil {
		return fmt.Errorf("player registration failed: %w", err)
	}

	// Step 4: Submit evaluation requests concurrently
	if err := submitEvaluations(ctx, config, bundles, stats); err != nil {
		return fmt.Errorf("evaluation submission failed: %w", err)
	}

	// Step 5: Wait for processing
	logger.Get().Info(ctx, "waiting for evaluations to be processed")
	time.Sleep(ProcessingDelay)

	// Step 6: Get prospects ranking
	prospects, err := getProspects(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("prospects retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyProspects(config, prospects); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save bundles to file
	if err := saveBundlesToFile(ctx, config, bundles); err != nil {
		logger.Get().Warn(ctx, "failed to save bundles to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveBundlesToFile saves the generated bundles to a JSON file.
func saveBundlesToFile(ctx context.Context, config *Config, bundles []model.Bundle) error {
	if len(bundles) == 0 {
		return fmt.Errorf("no bundles to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_players_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write bundles to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, bundle := range bundles {
		jsonData, err := marshalJSON(bundle)
		if err != nil {
			return fmt.Errorf("failed to marshal bundle %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write bundle %d: %w", i, err)
		}

		// Add comma except for last bundle
		if i < len(bundles)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "bundles saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var acceptRate, requestsPerSecond float64

	if stats.EvaluationsSubmitted > 0 {
		acceptRate = float64(stats.EvaluationsAccepted) / float64(stats.EvaluationsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.EvaluationsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("playersGenerated", stats.PlayersGenerated),
		logger.Int("playersRegistered", stats.PlayersRegistered),
		logger.Int("evaluationsSubmitted", stats.EvaluationsSubmitted),
		logger.Int("evaluationsAccepted", stats.EvaluationsAccepted),
		logger.Int("evaluationsDuplicate", stats.EvaluationsDuplicate),
		logger.Int("evaluationsFailed", stats.EvaluationsFailed),
		logger.Int("prospectsRetrieved", stats.ProspectsRetrieved),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
