package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// APIClient talks to the counter service over HTTP. It performs no
// caching; CachedClient layers that on top.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{baseURL: baseURL, httpClient: httpClient}
}

// Get fetches the counter for name, creating it server-side if absent.
func (c *APIClient) Get(ctx context.Context, name string) (*Counter, error) {
	u := c.baseURL + "/counter?counterName=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

type updateRequest struct {
	Action      string `json:"action"`
	CounterName string `json:"counterName"`
}

// Update applies an increment or reset action to the counter for name.
func (c *APIClient) Update(ctx context.Context, name, action string) (*Counter, error) {
	body, err := json.Marshal(updateRequest{Action: action, CounterName: name})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/counter", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *APIClient) do(req *http.Request) (*Counter, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("counter api: %s (status %d)", apiErr.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("counter api: unexpected status %d", resp.StatusCode)
	}

	var counter Counter
	if err := json.NewDecoder(resp.Body).Decode(&counter); err != nil {
		return nil, fmt.Errorf("decode counter response: %w", err)
	}
	return &counter, nil
}
