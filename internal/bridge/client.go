// Package bridge talks to the external workbook controller process that owns
// the long-running Excel session on the tagging machine.
package bridge

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_controller.go -package=mocks -mock_names=Controller=MockController defensive-analytics/internal/bridge Controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"defensive-analytics/internal/service"
)

// Status describes the controller's view of the bridge process.
type Status struct {
	Running  bool   `json:"running"`
	Workbook string `json:"workbook,omitempty"`
	Sheet    string `json:"sheet,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Controller starts, stops and inspects the external bridge process.
type Controller interface {
	// Status reports whether the bridge process is running.
	Status(ctx context.Context) (*Status, error)
	// Start asks the controller to launch the bridge process.
	Start(ctx context.Context) (*Status, error)
	// Stop asks the controller to shut the bridge process down.
	Stop(ctx context.Context) (*Status, error)
}

// Client is an HTTP client for the bridge controller API.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a controller client. The controller runs on the same
// machine, so the timeout is short: an unreachable controller should fail
// fast, not stall the tagging UI.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 2 * time.Second},
	}
}

// Status reports the controller's current state.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	return c.call(ctx, http.MethodGet, "/status")
}

// Start launches the bridge process.
func (c *Client) Start(ctx context.Context) (*Status, error) {
	return c.call(ctx, http.MethodPost, "/start")
}

// Stop shuts the bridge process down.
func (c *Client) Stop(ctx context.Context) (*Status, error) {
	return c.call(ctx, http.MethodPost, "/stop")
}

func (c *Client) call(ctx context.Context, method, path string) (*Status, error) {
	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: bridge controller unreachable: %v", service.ErrBridgeUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: bridge controller status %d: %s", service.ErrBridgeUnavailable, resp.StatusCode, string(raw))
	}

	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode controller response: %w", err)
	}

	return &status, nil
}
