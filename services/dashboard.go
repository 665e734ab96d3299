package services

import (
	"context"

	"github.com/Pranshu115/tatva/endpoints"
	"github.com/Pranshu115/tatva/httpclient"
)

// Dashboard reads the overview counters.
type Dashboard struct {
	client *httpclient.Client
}

// Stats fetches the dashboard counters.
func (d *Dashboard) Stats(ctx context.Context) (Stats, error) {
	return data(httpclient.Get[Stats](ctx, d.client, endpoints.DashboardStats))
}
