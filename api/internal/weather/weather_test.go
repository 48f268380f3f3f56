package weather

import (
	"context"
	"testing"
)

func TestStaticProviderRegions(t *testing.T) {
	p := NewStaticProvider()
	regions, err := p.Regions(context.Background())
	if err != nil {
		t.Fatalf("regions: %v", err)
	}
	if len(regions) != 8 {
		t.Fatalf("expected 8 regions, got %d", len(regions))
	}
	if regions[0] != "Punjab" {
		t.Fatalf("expected Punjab first, got %s", regions[0])
	}
}

func TestStaticProviderReport(t *testing.T) {
	p := NewStaticProvider()
	report, ok, err := p.Report(context.Background(), "Tamil Nadu")
	if err != nil || !ok {
		t.Fatalf("expected report, ok=%v err=%v", ok, err)
	}
	if report.Current.Temp != 26 {
		t.Fatalf("expected current temp 26, got %d", report.Current.Temp)
	}
	if len(report.Forecast) != 5 {
		t.Fatalf("expected 5 forecast days, got %d", len(report.Forecast))
	}
	if len(report.Recommendations) == 0 {
		t.Fatalf("expected recommendations")
	}
}

func TestStaticProviderUnknownRegion(t *testing.T) {
	p := NewStaticProvider()
	_, ok, err := p.Report(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("unknown region must not resolve")
	}
}

func TestEveryRegionHasFullReport(t *testing.T) {
	p := NewStaticProvider()
	regions, _ := p.Regions(context.Background())
	for _, region := range regions {
		report, ok, err := p.Report(context.Background(), region)
		if err != nil || !ok {
			t.Fatalf("%s: ok=%v err=%v", region, ok, err)
		}
		if report.Region != region {
			t.Fatalf("report region mismatch: %s vs %s", report.Region, region)
		}
		if len(report.Forecast) != 5 || len(report.Recommendations) != 5 {
			t.Fatalf("%s: incomplete report", region)
		}
	}
}
