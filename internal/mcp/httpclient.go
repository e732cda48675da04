package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/khushal-mali/ai-workout-tracker/internal/models"
)

// HTTPClient implements DataSource by calling the workout tracker REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but data
// lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. userID
// is sent as the X-User-ID header on every request; leave it empty when the
// server resolves identity itself.
func NewHTTPClient(baseURL, userID string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// get performs a GET and returns the body. A 404 returns (nil, nil) so
// lookups can distinguish absence from failure.
func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) Exercises(ctx context.Context) ([]models.Exercise, error) {
	body, err := c.get(ctx, "/api/v1/exercises", nil)
	if err != nil {
		return nil, err
	}

	var exercises []models.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return exercises, nil
}

func (c *HTTPClient) ExerciseByID(ctx context.Context, id string) (*models.Exercise, error) {
	body, err := c.get(ctx, "/api/v1/exercises/"+url.PathEscape(id), nil)
	if err != nil || body == nil {
		return nil, err
	}

	var ex models.Exercise
	if err := json.Unmarshal(body, &ex); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercise: %w", err)
	}
	return &ex, nil
}

func (c *HTTPClient) WorkoutsForUser(ctx context.Context, _ string) ([]models.WorkoutRecord, error) {
	body, err := c.get(ctx, "/api/v1/workouts", nil)
	if err != nil {
		return nil, err
	}

	var records []models.WorkoutRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) WorkoutByID(ctx context.Context, id string) (*models.WorkoutRecord, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+url.PathEscape(id), nil)
	if err != nil || body == nil {
		return nil, err
	}

	var rec models.WorkoutRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	return &rec, nil
}
