package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

// Client talks to the resolver API on behalf of one device. Request
// timeouts surface as ordinary errors and count as failures for backoff.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Resolve asks the server what this device should display at the given
// instant.
func (c *Client) Resolve(ctx context.Context, at time.Time) (model.ResolvedBundle, error) {
	url := fmt.Sprintf("%s/api/tv/resolve?at=%s", c.baseURL, at.UTC().Format(time.RFC3339))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.ResolvedBundle{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.ResolvedBundle{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.ResolvedBundle{}, fmt.Errorf("resolve returned status %d", resp.StatusCode)
	}

	var body packets.ResolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.ResolvedBundle{}, fmt.Errorf("failed to decode resolve response: %w", err)
	}

	resolvedAt, err := time.Parse(time.RFC3339, body.ResolvedAt)
	if err != nil {
		return model.ResolvedBundle{}, fmt.Errorf("failed to parse resolved_at: %w", err)
	}

	return model.ResolvedBundle{
		Source:       model.Source(body.Source),
		SceneID:      body.SceneID,
		ContentRef:   body.ContentRef,
		LanguageCode: body.LanguageCode,
		ResolvedAt:   resolvedAt,
	}, nil
}

// PushTelemetry delivers one ordered batch and returns how many events of
// its prefix the server acknowledged.
func (c *Client) PushTelemetry(ctx context.Context, events []model.PlayEvent) (int, error) {
	reqBody := packets.TelemetryRequest{Events: make([]packets.TelemetryEvent, 0, len(events))}
	for _, ev := range events {
		reqBody.Events = append(reqBody.Events, packets.TelemetryEvent{
			ID:              ev.ID,
			DeviceID:        ev.DeviceID,
			ContentRef:      ev.ContentRef,
			StartedAt:       ev.StartedAt,
			DurationSeconds: ev.DurationSeconds,
			Completed:       ev.Completed,
		})
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/tv/telemetry", bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("telemetry returned status %d", resp.StatusCode)
	}

	var body packets.TelemetryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode telemetry response: %w", err)
	}
	return body.Acked, nil
}

// NeedsRefresh reads the configuration-change marker.
func (c *Client) NeedsRefresh(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tv/refresh", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("refresh returned status %d", resp.StatusCode)
	}

	var body packets.RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}
	return body.NeedsRefresh, nil
}
