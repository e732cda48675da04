// Package content is the client for the external document store that holds
// the exercise catalog and persisted workout records. The store exposes a
// GROQ query endpoint and a mutation endpoint; this service owns none of
// that data, it only reads the catalog and appends workout documents.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the content store's HTTP API.
type Client struct {
	baseURL    string
	dataset    string
	token      string
	httpClient *http.Client
}

// NewClient creates a content store client. baseURL is the API root
// (e.g. https://<project>.api.sanity.io/v2021-10-21).
func NewClient(baseURL, dataset, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		dataset:    dataset,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// query runs a GROQ query with JSON-encoded params and returns the raw
// "result" payload.
func (c *Client) query(ctx context.Context, groq string, params map[string]any) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("query", groq)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	u := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating query request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content query: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading query response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content query failed (status %d): %s", resp.StatusCode, body)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding query response: %w", err)
	}
	return envelope.Result, nil
}

// mutate POSTs a mutation batch and returns the affected document ids.
func (c *Client) mutate(ctx context.Context, mutations []map[string]any) ([]string, error) {
	payload, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return nil, fmt.Errorf("encoding mutations: %w", err)
	}

	u := fmt.Sprintf("%s/data/mutate/%s?returnIds=true", c.baseURL, c.dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating mutate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content mutate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading mutate response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("content mutate failed (status %d): %s", resp.StatusCode, body)
	}

	var envelope struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding mutate response: %w", err)
	}

	ids := make([]string, 0, len(envelope.Results))
	for _, r := range envelope.Results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
