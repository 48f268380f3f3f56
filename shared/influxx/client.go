// Package influxx writes crop telemetry points to InfluxDB. The event
// consumer records health and yield series with it.
package influxx

import (
	"context"
	"errors"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"farm-management-system/shared/config"
)

type Client struct {
	client influxdb2.Client
	write  api.WriteAPIBlocking
	query  api.QueryAPI
	org    string
	bucket string
}

func New(cfg config.Config) (*Client, error) {
	switch "" {
	case cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket:
		return nil, errors.New("INFLUX_URL/INFLUX_TOKEN/INFLUX_ORG/INFLUX_BUCKET are required")
	}
	opts := influxdb2.DefaultOptions().
		SetHTTPRequestTimeout(uint(cfg.InfluxTimeoutMS))
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken, opts)
	return &Client{
		client: client,
		write:  client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		query:  client.QueryAPI(cfg.InfluxOrg),
		org:    cfg.InfluxOrg,
		bucket: cfg.InfluxBucket,
	}, nil
}

// WritePoint writes one point synchronously. A zero ts means now.
func (c *Client) WritePoint(ctx context.Context, measurement string, tags map[string]string, fields map[string]any, ts time.Time) error {
	if c == nil || c.write == nil {
		return errors.New("influx client not initialized")
	}
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return c.write.WritePoint(ctx, influxdb2.NewPoint(measurement, tags, fields, ts))
}

func (c *Client) Query(ctx context.Context, flux string) (*api.QueryTableResult, error) {
	if c == nil || c.query == nil {
		return nil, errors.New("influx client not initialized")
	}
	return c.query.Query(ctx, flux)
}

func (c *Client) Close() {
	if c == nil || c.client == nil {
		return
	}
	c.client.Close()
}
