package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type TavilyClient struct {
	apiKey    string
	searchURL string
	client    *http.Client
}

func NewTavilyClient(apiKey, searchURL string, timeout time.Duration) *TavilyClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TavilyClient{
		apiKey:    strings.TrimSpace(apiKey),
		searchURL: searchURL,
		client:    &http.Client{Timeout: timeout},
	}
}

func (t *TavilyClient) Configured() bool {
	return t != nil && t.apiKey != ""
}

func (t *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]EvidenceItem, error) {
	if !t.Configured() {
		return nil, errors.New("tavily api key not set")
	}

	payload := map[string]any{
		"api_key":     t.apiKey,
		"query":       query,
		"max_results": maxResults,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		t.searchURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var result struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
			Snippet string `json:"snippet"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}

	items := make([]EvidenceItem, 0, len(result.Results))
	for _, r := range result.Results {
		snippet := r.Content
		if snippet == "" {
			snippet = r.Snippet
		}
		items = append(items, EvidenceItem{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: snippet,
		})
	}
	return items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
