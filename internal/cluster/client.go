// Package cluster talks to the remote semantic-clustering service. The call
// is best effort: callers substitute a nil label on any failure.
package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"malunita/pkg/retrylimit"
)

type taskRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type request struct {
	Tasks            []taskRef `json:"tasks"`
	PrimaryFocusTask *string   `json:"primaryFocusTask"`
}

type response struct {
	Clusters []struct {
		Label string `json:"label"`
	} `json:"clusters"`
}

// Client is the HTTP client for the clustering service.
type Client struct {
	url     string
	client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
}

// New creates a Client. url may be empty, in which case every call reports
// the service as unconfigured.
func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &Client{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: retrylimit.NewAdaptiveLimiter(2, rate.Limit(0.5), 5, 0.5, 0.5),
	}
}

// Label requests a cluster label for a single task.
func (c *Client) Label(ctx context.Context, id, title string) (string, error) {
	if c == nil || c.url == "" {
		return "", fmt.Errorf("clustering service not configured")
	}

	var label string
	err := retrylimit.WithRetry(ctx, c.limiter, func() error {
		out, err := c.call(ctx, request{Tasks: []taskRef{{ID: id, Title: title}}})
		if err != nil {
			return err
		}
		label = out
		return nil
	})
	return label, err
}

func (c *Client) call(ctx context.Context, payload request) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("cluster http %d: %s", resp.StatusCode, truncate(body))
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", fmt.Errorf("cluster service returned html")
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Clusters) == 0 || strings.TrimSpace(parsed.Clusters[0].Label) == "" {
		return "", fmt.Errorf("cluster response empty")
	}
	return strings.TrimSpace(parsed.Clusters[0].Label), nil
}

func truncate(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}
