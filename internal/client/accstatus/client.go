package accstatus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const statusPath = "/api/v2/acc/status"

type Client struct {
	host       string
	userAgent  string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client, host, userAgent string) *Client {
	if host == "" {
		host = "https://acc-status.jonatan.net"
	}
	host = strings.TrimRight(host, "/")
	if userAgent == "" {
		userAgent = "ACC-Monitor/1.0"
	}
	return &Client{
		host:       host,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// GetStatus performs one poll of the status endpoint. Every failure mode is
// returned as a *FetchError so the caller can always produce an analysis.
func (c *Client) GetStatus(ctx context.Context) (*Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+statusPath, nil)
	if err != nil {
		return nil, &FetchError{Kind: FailUnexpected, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()
	elapsed := time.Since(start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: FailConnection, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Kind: FailBadResponse,
			Err:  fmt.Errorf("API HTTP %d - %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	var payload statusPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &FetchError{
			Kind: FailMalformed,
			Err:  fmt.Errorf("API response is not valid JSON: %w", err),
		}
	}

	return &Reading{
		Status:      payload.Status,
		Ping:        payload.Ping,
		Servers:     payload.Servers,
		Players:     payload.Players,
		Date:        payload.Date,
		DownSince:   payload.DownSince,
		FetchedAt:   time.Now().UTC(),
		RequestTime: elapsed,
	}, nil
}

func classifyTransportError(err error) *FetchError {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &FetchError{Kind: FailTimeout, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: FailTimeout, Err: err}
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &FetchError{Kind: FailConnection, Err: err}
	}
	return &FetchError{Kind: FailUnexpected, Err: err}
}
