package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"holotable/core/apperr"
)

// Metadata is the upstream's current version pair.
type Metadata struct {
	LatestGamedataVersion           string `json:"latestGamedataVersion"`
	LatestLocalizationBundleVersion string `json:"latestLocalizationBundleVersion"`
}

// LocalizationBundle is either a base64-encoded zip archive or, when the
// upstream expanded it server-side, a mapping of file name to raw content.
type LocalizationBundle struct {
	Base64Zip string            `json:"localizationBundle,omitempty"`
	Files     map[string]string `json:"files,omitempty"`
}

// Client defines the operations the synchronization engine and the request
// features need from the upstream game-data service.
type Client interface {
	// GetMetadata returns the latest game-data and localization versions.
	GetMetadata(ctx context.Context) (*Metadata, error)
	// GetGameData fetches collections for a version. segment 0 requests the
	// whole data set in one call; segments >= 1 request one partition.
	GetGameData(ctx context.Context, version string, includePveUnits bool, segment int) (map[string]json.RawMessage, error)
	// GetLocalizationBundle fetches the per-language display text for a
	// version, unzipped server-side when unzip is true.
	GetLocalizationBundle(ctx context.Context, version string, unzip bool) (*LocalizationBundle, error)
	// GetPlayer fetches a player record by ally code.
	GetPlayer(ctx context.Context, allyCode string) (json.RawMessage, error)
	// GetGuild fetches a guild record by guild id.
	GetGuild(ctx context.Context, guildID string, includeRecentActivity bool) (json.RawMessage, error)
	// GetEvents fetches the currently scheduled in-game events.
	GetEvents(ctx context.Context) (json.RawMessage, error)
	// GetSegmentEnum returns the ordered game-data segment identifiers.
	GetSegmentEnum(ctx context.Context) ([]string, error)
}

// NewClient creates an HTTP client for the upstream service.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accessKey: cfg.AccessKey,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

type httpClient struct {
	baseURL   string
	accessKey string
	http      *http.Client
}

func (c *httpClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	var meta Metadata
	if err := c.post(ctx, "/metadata", map[string]any{}, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *httpClient) GetGameData(ctx context.Context, version string, includePveUnits bool, segment int) (map[string]json.RawMessage, error) {
	payload := map[string]any{
		"version":         version,
		"includePveUnits": includePveUnits,
		"requestSegment":  segment,
	}
	var collections map[string]json.RawMessage
	if err := c.post(ctx, "/data", payload, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (c *httpClient) GetLocalizationBundle(ctx context.Context, version string, unzip bool) (*LocalizationBundle, error) {
	payload := map[string]any{
		"id":    version,
		"unzip": unzip,
	}
	if unzip {
		var files map[string]string
		if err := c.post(ctx, "/localization", payload, &files); err != nil {
			return nil, err
		}
		return &LocalizationBundle{Files: files}, nil
	}

	var bundle LocalizationBundle
	if err := c.post(ctx, "/localization", payload, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *httpClient) GetPlayer(ctx context.Context, allyCode string) (json.RawMessage, error) {
	payload := map[string]any{"allyCode": allyCode}
	var player json.RawMessage
	if err := c.post(ctx, "/player", payload, &player); err != nil {
		return nil, err
	}
	return player, nil
}

func (c *httpClient) GetGuild(ctx context.Context, guildID string, includeRecentActivity bool) (json.RawMessage, error) {
	payload := map[string]any{
		"guildId":                       guildID,
		"includeRecentGuildActivityInfo": includeRecentActivity,
	}
	var guild json.RawMessage
	if err := c.post(ctx, "/guild", payload, &guild); err != nil {
		return nil, err
	}
	return guild, nil
}

func (c *httpClient) GetEvents(ctx context.Context) (json.RawMessage, error) {
	var events json.RawMessage
	if err := c.post(ctx, "/getEvents", map[string]any{}, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *httpClient) GetSegmentEnum(ctx context.Context) ([]string, error) {
	var enums struct {
		GameDataSegment []string `json:"GameDataSegment"`
	}
	if err := c.post(ctx, "/enums", map[string]any{}, &enums); err != nil {
		return nil, err
	}
	return enums.GameDataSegment, nil
}

// post sends {"payload": body} and decodes the JSON response into out.
func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	reqBody, err := json.Marshal(map[string]any{"payload": body})
	if err != nil {
		return fmt.Errorf("failed to marshal request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessKey != "" {
		req.Header.Set("X-Access-Key", c.accessKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstream, fmt.Sprintf("request to %s failed", path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperr.Newf(apperr.KindUpstream, "upstream %s returned %d: %s", path, resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.KindUpstream, fmt.Sprintf("cannot decode response from %s", path), err)
	}
	return nil
}
