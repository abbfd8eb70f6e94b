package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rag-assistant/internal/model"
)

// Config holds connection settings for a Pinecone index. Host is the
// index-specific endpoint (https://<index>-<project>.svc.<env>.pinecone.io).
type Config struct {
	Host      string
	APIKey    string
	Namespace string
	Timeout   time.Duration
}

// Client is a minimal REST client to a single Pinecone index.
// Safe for concurrent use.
type Client struct {
	host       string
	apiKey     string
	namespace  string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		host:       strings.TrimRight(cfg.Host, "/"),
		apiKey:     cfg.APIKey,
		namespace:  cfg.Namespace,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Upsert writes the vectors to the index and returns the count accepted.
func (c *Client) Upsert(ctx context.Context, vectors []model.IndexedVector) (int, error) {
	if len(vectors) == 0 {
		return 0, nil
	}
	reqBody := map[string]interface{}{
		"vectors":   vectors,
		"namespace": c.namespace,
	}

	var parsed struct {
		UpsertedCount int `json:"upsertedCount"`
	}
	if err := c.postJSON(ctx, c.host+"/vectors/upsert", reqBody, &parsed); err != nil {
		return 0, fmt.Errorf("pinecone upsert failed: %w", err)
	}
	return parsed.UpsertedCount, nil
}

// Query returns the topK nearest neighbors of vector, with metadata when
// includeMetadata is set. Pinecone returns matches ordered by score, but
// callers must not rely on that.
func (c *Client) Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]model.ScoredMatch, error) {
	reqBody := map[string]interface{}{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": includeMetadata,
		"namespace":       c.namespace,
	}

	var parsed struct {
		Matches []struct {
			Score    float64           `json:"score"`
			Metadata map[string]string `json:"metadata"`
		} `json:"matches"`
	}
	if err := c.postJSON(ctx, c.host+"/query", reqBody, &parsed); err != nil {
		return nil, fmt.Errorf("pinecone query failed: %w", err)
	}

	matches := make([]model.ScoredMatch, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		metadata := m.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}
		matches = append(matches, model.ScoredMatch{Score: m.Score, Metadata: metadata})
	}
	return matches, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request failed: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response failed: %w", err)
		}
	}
	return nil
}
