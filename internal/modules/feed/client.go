package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/georgemunganga/salesboard/internal/apperr"
)

// Client fetches the product transaction feed.
type Client interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// HTTPClient is a resty-backed implementation of Client.
type HTTPClient struct {
	httpClient *resty.Client
	url        string
}

// NewHTTPClient builds a feed client for url.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	restyClient := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &HTTPClient{httpClient: restyClient, url: url}
}

func (c *HTTPClient) Fetch(ctx context.Context) ([]Record, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		return nil, apperr.Upstream("fetch feed", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, apperr.Upstream("fetch feed", fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}

	// The body is decoded by hand: the feed host does not always send a JSON
	// content type, which resty's SetResult relies on.
	var records []Record
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, apperr.Upstream("decode feed", err)
	}
	return records, nil
}
