// Package client is a Go client for the CityTeam guests API. Each resource
// gets its own client value mirroring the REST surface; errors come back as
// *APIError values that match the service taxonomy via errors.Is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Facilities() *FacilityClient {
	return &FacilityClient{client: c}
}

func (c *Client) Guests() *GuestClient {
	return &GuestClient{client: c}
}

func (c *Client) Registrations() *RegistrationClient {
	return &RegistrationClient{client: c}
}

func (c *Client) Bans() *BanClient {
	return &BanClient{client: c}
}

func (c *Client) Templates() *TemplateClient {
	return &TemplateClient{client: c}
}

func (c *Client) DevMode() *DevModeClient {
	return &DevModeClient{client: c}
}

// do issues one JSON request. A non-nil body is marshalled; a non-nil out
// receives the decoded response body. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var model struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &model); err == nil && (model.Title != "" || model.Detail != "") {
		apiErr.Title = model.Title
		apiErr.Detail = model.Detail
	} else {
		apiErr.Detail = strings.TrimSpace(string(raw))
	}
	return apiErr
}
