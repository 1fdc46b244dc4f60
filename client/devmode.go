package client

import (
	"context"
	"net/http"
)

// DevModeClient drives the fixture reset endpoints. Both calls answer
// ErrForbidden when the server is not running in dev mode; test harnesses
// treat that as "skip the dependent scenario", not a failure.
type DevModeClient struct {
	client *Client
}

func (d *DevModeClient) Populate(ctx context.Context) error {
	return d.client.do(ctx, http.MethodPost, "/devmode/populate", nil, nil)
}

func (d *DevModeClient) Depopulate(ctx context.Context) error {
	return d.client.do(ctx, http.MethodPost, "/devmode/depopulate", nil, nil)
}
