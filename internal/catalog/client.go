package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bahafit/bahafit/internal/config"
)

// Client is the access shim for the headless content store. Query runs a
// structured query with named parameters and decodes the result set into
// result; Patch applies set/inc operations to a single document.
type Client interface {
	Query(ctx context.Context, query string, params map[string]string, result any) error
	Patch(ctx context.Context, docID string, set map[string]any, inc map[string]int) error
	Delete(ctx context.Context, docID string) error
}

type httpClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient builds an HTTP-backed catalog client.
func NewClient(cfg config.CatalogConfig) Client {
	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client:  &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

func (c *httpClient) Query(ctx context.Context, query string, params map[string]string, result any) error {
	values := url.Values{}
	values.Set("query", query)
	for key, val := range params {
		encoded, err := json.Marshal(val)
		if err != nil {
			return err
		}
		values.Set("$"+key, string(encoded))
	}

	endpoint := c.baseURL + "/query?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("query", resp)
	}

	var envelope queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	if result == nil || len(envelope.Result) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Result, result)
}

func (c *httpClient) Patch(ctx context.Context, docID string, set map[string]any, inc map[string]int) error {
	patch := map[string]any{"id": docID}
	if len(set) > 0 {
		patch["set"] = set
	}
	if len(inc) > 0 {
		patch["inc"] = inc
	}
	return c.mutate(ctx, map[string]any{"patch": patch})
}

func (c *httpClient) Delete(ctx context.Context, docID string) error {
	return c.mutate(ctx, map[string]any{"delete": map[string]any{"id": docID}})
}

func (c *httpClient) mutate(ctx context.Context, mutation map[string]any) error {
	body, err := json.Marshal(map[string]any{"mutations": []map[string]any{mutation}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mutate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("mutate", resp)
	}
	return nil
}

func (c *httpClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func statusError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("catalog %s: status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(snippet)))
}
