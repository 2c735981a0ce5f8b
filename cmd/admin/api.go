package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"reelchat/backend/internal/models"
)

// apiClient talks to the admin and history endpoints of a running server.
type apiClient struct {
	base  string
	token string
	http  *http.Client
}

func newAPIClient(base, token string) *apiClient {
	return &apiClient{base: strings.TrimRight(base, "/"), token: token, http: http.DefaultClient}
}

func (c *apiClient) do(ctx context.Context, method, path string, body, dst any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("X-Admin-Token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, apiErr.Error)
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *apiClient) liveSessions(ctx context.Context) ([]models.LiveSession, error) {
	var resp struct {
		Sessions []models.LiveSession `json:"sessions"`
	}
	err := c.do(ctx, http.MethodGet, "/api/admin/sessions", nil, &resp)
	return resp.Sessions, err
}

func (c *apiClient) stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &stats)
	return stats, err
}

func (c *apiClient) history(ctx context.Context, participantID string) ([]models.Session, error) {
	var resp struct {
		Sessions []models.Session `json:"sessions"`
	}
	err := c.do(ctx, http.MethodGet, "/api/history/"+url.PathEscape(participantID), nil, &resp)
	return resp.Sessions, err
}

func (c *apiClient) maintenance(ctx context.Context) (bool, error) {
	var resp struct {
		Enabled bool `json:"enabled"`
	}
	err := c.do(ctx, http.MethodGet, "/api/admin/maintenance", nil, &resp)
	return resp.Enabled, err
}

func (c *apiClient) setMaintenance(ctx context.Context, on bool) error {
	return c.do(ctx, http.MethodPost, "/api/admin/maintenance", map[string]bool{"enabled": on}, nil)
}
