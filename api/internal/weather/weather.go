// Package weather serves the regional forecast feed. The data source is
// an injected read-only provider so handlers and tests never depend on
// in-process static state directly.
package weather

import (
	"context"
	"fmt"
	"time"

	"farm-management-system/shared/cachex"
)

type Current struct {
	Temp        int    `json:"temp"`
	FeelsLike   int    `json:"feelsLike"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
	Pressure    int    `json:"pressure"`
	Visibility  int    `json:"visibility"`
	CloudCover  int    `json:"cloudCover"`
	RainChance  int    `json:"rainChance"`
}

type ForecastDay struct {
	Day       string `json:"day"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Condition string `json:"condition"`
	Rain      int    `json:"rain"`
	Humidity  int    `json:"humidity"`
	WindSpeed int    `json:"windSpeed"`
	Icon      string `json:"icon"`
}

type Advisory struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type Report struct {
	Region          string        `json:"region"`
	Current         Current       `json:"current"`
	Forecast        []ForecastDay `json:"forecast"`
	Alerts          []Advisory    `json:"alerts"`
	Recommendations []string      `json:"recommendations"`
}

// Provider is the opaque weather feed keyed by region name.
type Provider interface {
	Regions(ctx context.Context) ([]string, error)
	Report(ctx context.Context, region string) (Report, bool, error)
}

// StaticProvider serves the built-in table. Lookups are exact-match on
// region name, as the feed defines them.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) Regions(_ context.Context) ([]string, error) {
	out := make([]string, len(regionOrder))
	copy(out, regionOrder)
	return out, nil
}

func (p *StaticProvider) Report(_ context.Context, region string) (Report, bool, error) {
	report, ok := regionReports[region]
	return report, ok, nil
}

// CachedProvider layers a Redis TTL cache over another provider. Cache
// failures fall through to the inner provider.
type CachedProvider struct {
	inner Provider
	cache *cachex.Client
	ttl   time.Duration
}

func NewCachedProvider(inner Provider, cache *cachex.Client, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl}
}

func (p *CachedProvider) Regions(ctx context.Context) ([]string, error) {
	return p.inner.Regions(ctx)
}

func (p *CachedProvider) Report(ctx context.Context, region string) (Report, bool, error) {
	key := fmt.Sprintf("weather:report:%s", region)
	var cached Report
	if p.cache != nil {
		if hit, err := p.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, true, nil
		}
	}

	report, ok, err := p.inner.Report(ctx, region)
	if err != nil || !ok {
		return report, ok, err
	}
	if p.cache != nil {
		_ = p.cache.SetJSON(ctx, key, report, p.ttl)
	}
	return report, true, nil
}
