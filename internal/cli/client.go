package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/khushal-mali/ai-workout-tracker/internal/session"
)

// apiClient is a thin JSON client for the workout tracker REST API.
type apiClient struct {
	baseURL    string
	apiKey     string
	userID     string
	httpClient *http.Client
}

func newAPIClient(baseURL, apiKey, userID string) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		userID:     userID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends a request and decodes the JSON response into out (when non-nil).
// Non-2xx responses surface the server's error message.
func (c *apiClient) do(method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s", apiErr.Error)
		}
		return fmt.Errorf("%s %s returned %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *apiClient) get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

// getSession fetches the current in-progress workout.
func (c *apiClient) getSession() (session.Snapshot, error) {
	var snap session.Snapshot
	err := c.get("/api/v1/session", &snap)
	return snap, err
}

// resolveSet maps 1-based exercise/set indexes to session-local ids.
func (c *apiClient) resolveSet(exIdx, setIdx int) (exerciseID, setID string, err error) {
	snap, err := c.getSession()
	if err != nil {
		return "", "", err
	}
	if exIdx < 1 || exIdx > len(snap.Exercises) {
		return "", "", fmt.Errorf("exercise index out of range (session has %d)", len(snap.Exercises))
	}
	ex := snap.Exercises[exIdx-1]
	if setIdx < 1 || setIdx > len(ex.Sets) {
		return "", "", fmt.Errorf("set index out of range (%s has %d sets)", ex.Name, len(ex.Sets))
	}
	return ex.ID, ex.Sets[setIdx-1].ID, nil
}
