// Package guidance produces coaching text for an exercise by calling the
// Gemini generateContent REST endpoint. One request, one markdown response;
// no streaming.
package guidance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the text-generation API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a guidance client for the given model. baseURL may be
// empty for the public endpoint.
func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// buildPrompt is the coaching prompt: short markdown instructions with a
// fixed heading structure.
func buildPrompt(exerciseName string) string {
	return fmt.Sprintf(`You are a fitness coach.
You are given an exercise, provide clear instructions on how to perform the exercise. Include if any equipment is required.

The exercise name is: %s

Keep it short and concise. Use markdown formatting.

Use the following format:

## Equipment Required:

## Instruction

## Tips

## Variations

### Safety

Keep spacing between the headings and the content.

Always use headings and subheadings.`, exerciseName)
}

type part struct {
	Text string `json:"text"`
}

type message struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []message `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content message `json:"content"`
	} `json:"candidates"`
}

// Guidance returns markdown guidance for the named exercise.
func (c *Client) Guidance(ctx context.Context, exerciseName string) (string, error) {
	if exerciseName == "" {
		return "", fmt.Errorf("exercise name is required")
	}

	reqBody := generateRequest{
		Contents: []message{{Parts: []part{{Text: buildPrompt(exerciseName)}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding guidance request: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating guidance request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("guidance request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading guidance response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("guidance request failed (status %d): %s", resp.StatusCode, body)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decoding guidance response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("guidance response contained no text")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
