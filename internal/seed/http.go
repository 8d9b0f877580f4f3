package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// registerPlayers registers bundles concurrently using worker pools
func registerPlayers(ctx context.Context, config *Config, bundles []model.Bundle, stats *Stats) error {
	log.Printf("Registering %d players with %d workers...", len(bundles), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/players"

	var (
		registered int64
		failed     int64
	)

	bundleChan := make(chan model.Bundle, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for bundle := range bundleChan {
				select {
				case <-ctx.Done():
					return
				default:
					if registerSinglePlayer(ctx, client, url, bundle) {
						atomic.AddInt64(&registered, 1)
					} else {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("failed to register player %s", bundle.Player.ID)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(bundleChan)
		for _, bundle := range bundles {
			select {
			case <-ctx.Done():
				return
			case bundleChan <- bundle:
			}
		}
	}()

	wg.Wait()

	stats.PlayersRegistered = int(atomic.LoadInt64(&registered))

	log.Printf(`Player registration completed:
   Registered: %d
   Failed: %d
`, stats.PlayersRegistered, int(atomic.LoadInt64(&failed)))

	if stats.PlayersRegistered == 0 {
		return fmt.Errorf("no players registered")
	}
	return nil
}

// registerSinglePlayer posts one bundle and reports success.
func registerSinglePlayer(ctx context.Context, client *HTTPClient, url string, bundle model.Bundle) bool {
	payload := playerPayload{
		Player:        bundle.Player,
		Metrics:       bundle.Metrics,
		Videos:        bundle.Videos,
		Insights:      bundle.Insights,
		International: bundle.International,
		LeagueBand:    bundle.LeagueBand,
	}

	resp, err := client.Post(ctx, url, payload)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == StatusCreated
}

// submitEvaluations submits evaluation requests concurrently using
// worker pools
func submitEvaluations(ctx context.Context, config *Config, bundles []model.Bundle, stats *Stats) error {
	log.Printf("Submitting %d evaluation requests with %d workers...", len(bundles), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/evaluations"

	// Counters for statistics
	var (
		accepted  int64
		duplicate int64
		failed    int64
		submitted int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	playerChan := make(chan string, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for playerID := range playerChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleEvaluation(ctx, client, url, playerID)

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch result {
					case "accepted":
						atomic.AddInt64(&accepted, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						acc := atomic.LoadInt64(&accepted)
						dup := atomic.LoadInt64(&duplicate)
						fail := atomic.LoadInt64(&failed)

						log.Printf("Progress: %d/%d submitted (accepted: %d, duplicate: %d, failed: %d)",
							total, len(bundles), acc, dup, fail)
					}
				}
			}
		}()
	}

	// Send player IDs to workers
	go func() {
		defer close(playerChan)
		for _, bundle := range bundles {
			select {
			case <-ctx.Done():
				return
			case playerChan <- bundle.Player.ID:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.EvaluationsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.EvaluationsAccepted = int(atomic.LoadInt64(&accepted))
	stats.EvaluationsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.EvaluationsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`Evaluation submission completed:
   Accepted: %d
   Duplicate: %d
   Failed: %d
`, stats.EvaluationsAccepted, stats.EvaluationsDuplicate, stats.EvaluationsFailed)

	return nil
}

// submitSingleEvaluation submits one evaluation request and returns
// the result
func submitSingleEvaluation(ctx context.Context, client *HTTPClient, url, playerID string) string {
	payload := evaluationPayload{
		RequestID: uuid.New().String(),
		PlayerID:  playerID,
		TS:        time.Now().UTC().Format(time.RFC3339),
	}

	resp, err := client.Post(ctx, url, payload)
	if err != nil {
		return "failed"
	}
	defer resp.Body.Close()

	// Read response body
	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	// Parse response based on status code
	switch resp.StatusCode {
	case StatusAccepted:
		// Accepted - new request
		var ack ackResponse
		if err := unmarshalJSON(body, &ack); err == nil && ack.Status == "accepted" {
			return "accepted"
		}
		return "accepted" // Assume accepted for 202 even if parsing fails
	case StatusOK:
		// OK - duplicate request
		var ack ackResponse
		if err := unmarshalJSON(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate" // Assume duplicate for 200 even if parsing fails
	default:
		// Error
		return "failed"
	}
}

// getProspects retrieves the top N prospect entries.
func getProspects(ctx context.Context, config *Config, stats *Stats) ([]prospectEntry, error) {
	log.Printf("Getting top %d prospects...", config.TopN)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/prospects?limit=" + strconv.Itoa(config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != StatusOK {
		body, _ := readResponseBody(resp)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var prospects []prospectEntry
	if err := unmarshalJSON(body, &prospects); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.ProspectsRetrieved = len(prospects)
	log.Printf("Retrieved %d prospect entries", len(prospects))

	return prospects, nil
}
