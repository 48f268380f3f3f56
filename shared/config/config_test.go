package config

import "testing"

func TestParseCSV(t *testing.T) {
	got := parseCSV("a, b, ,c,,")
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected values: %#v", got)
	}
}

func TestParseAnyCSV(t *testing.T) {
	raw := []any{"x", " ", "y"}
	got := parseAnyCSV(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0] != "x" || got[1] != "y" {
		t.Fatalf("unexpected values: %#v", got)
	}
}

func TestAsBool(t *testing.T) {
	if b, ok := asBool("Yes"); !ok || !b {
		t.Fatalf("expected yes to parse as true")
	}
	if b, ok := asBool("0"); !ok || b {
		t.Fatalf("expected 0 to parse as false")
	}
	if _, ok := asBool("maybe"); ok {
		t.Fatalf("expected maybe to be rejected")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CONFIG_PATH", "")
	cfg, _ := Load("api", 8080)
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.AuthTokenTTLHours != 168 {
		t.Fatalf("expected default token ttl 168h, got %d", cfg.AuthTokenTTLHours)
	}
	if cfg.WateringCooldownHours != 24 {
		t.Fatalf("expected default watering cooldown 24h, got %d", cfg.WateringCooldownHours)
	}
}
