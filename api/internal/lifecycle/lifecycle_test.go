package lifecycle

import (
	"testing"
	"time"

	"farm-management-system/api/internal/models"
)

func daysAgo(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

func TestGrowthStageBands(t *testing.T) {
	now := time.Date(2025, 12, 23, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		days int
		want string
	}{
		{0, StageEarly},
		{29, StageEarly},
		{30, StageMid},
		{59, StageMid},
		{60, StageLate},
		{89, StageLate},
		{90, StageReady},
		{400, StageReady},
	}
	for _, c := range cases {
		got := GrowthStage(daysAgo(now, c.days), now)
		if got != c.want {
			t.Fatalf("days=%d: expected %s, got %s", c.days, c.want, got)
		}
	}
}

func TestGrowthStagePartialDayFloors(t *testing.T) {
	now := time.Date(2025, 12, 23, 12, 0, 0, 0, time.UTC)
	// 29 days and 23 hours elapsed still counts as 29 days.
	planted := now.Add(-(29*24 + 23) * time.Hour)
	if got := GrowthStage(planted, now); got != StageEarly {
		t.Fatalf("expected %s, got %s", StageEarly, got)
	}
}

func TestHealthScoreBases(t *testing.T) {
	cases := []struct {
		stage string
		want  int
	}{
		{StageEarly, 70},
		{StageMid, 85},
		{StageLate, 80},
		{StageReady, 60},
		{"SomethingElse", 50},
	}
	for _, c := range cases {
		if got := HealthScore(c.stage, nil); got != c.want {
			t.Fatalf("stage=%s: expected %d, got %d", c.stage, c.want, got)
		}
	}
}

func TestHealthScorePenaltyAndClamp(t *testing.T) {
	issues := []models.PestIssue{
		{Label: "aphids", Status: PestStatusActive},
		{Label: "rust", Status: PestStatusResolved},
		{Label: "armyworm", Status: PestStatusActive},
	}
	if got := HealthScore(StageMid, issues); got != 55 {
		t.Fatalf("expected 55, got %d", got)
	}

	many := make([]models.PestIssue, 10)
	for i := range many {
		many[i] = models.PestIssue{Label: "weevil", Status: PestStatusActive}
	}
	if got := HealthScore(StageEarly, many); got != 0 {
		t.Fatalf("expected clamp at 0, got %d", got)
	}
}

func TestHealthScoreOrderInsensitive(t *testing.T) {
	a := []models.PestIssue{
		{Label: "aphids", Status: PestStatusActive},
		{Label: "rust", Status: PestStatusResolved},
		{Label: "blight", Status: PestStatusActive},
	}
	b := []models.PestIssue{a[2], a[0], a[1]}
	if HealthScore(StageLate, a) != HealthScore(StageLate, b) {
		t.Fatalf("health score should not depend on issue order")
	}
}

func TestEstimatedYield(t *testing.T) {
	if got := EstimatedYield(0, StageMid, 85); got != 0 {
		t.Fatalf("expected 0 yield for zero area, got %v", got)
	}
	if got := EstimatedYield(2.5, StageLate, 80); got != 3.60 {
		t.Fatalf("expected 3.60, got %v", got)
	}
	if got := EstimatedYield(3, "UnknownStage", 50); got != 1.5 {
		t.Fatalf("expected default multiplier 1.0, got %v", got)
	}
}

func TestEstimatedYieldMonotoneInHealth(t *testing.T) {
	prev := -1.0
	for health := 0; health <= 100; health += 5 {
		got := EstimatedYield(4.2, StageReady, health)
		if got < prev {
			t.Fatalf("yield decreased at health=%d: %v < %v", health, got, prev)
		}
		prev = got
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(StageReady) {
		t.Fatalf("ReadyForHarvest is not terminal")
	}
	if !IsTerminal(StageHarvest) {
		t.Fatalf("Harvested is terminal")
	}
}
