// Package lifecycle derives a crop's growth stage, health score, and
// estimated yield. All functions are pure; time is passed in by the
// caller. Derivations run on write events only, stored values are
// served as-is on reads.
package lifecycle

import (
	"math"
	"time"

	"farm-management-system/api/internal/models"
)

const (
	StageEarly   = "EarlyStage"
	StageMid     = "MidStage"
	StageLate    = "LateStage"
	StageReady   = "ReadyForHarvest"
	StageHarvest = "Harvested"
)

const (
	PestStatusActive   = "active"
	PestStatusResolved = "resolved"
)

// GrowthStage maps elapsed days since planting onto a pre-harvest stage.
// Harvested is never returned here; only an explicit harvest sets it.
func GrowthStage(plantingDate time.Time, now time.Time) string {
	days := int(math.Floor(now.Sub(plantingDate).Hours() / 24))
	switch {
	case days < 30:
		return StageEarly
	case days < 60:
		return StageMid
	case days < 90:
		return StageLate
	default:
		return StageReady
	}
}

// HealthScore starts from a per-stage base and subtracts 15 for each
// active pest issue, floored at zero. Only the count of active issues
// matters, not their order.
func HealthScore(stage string, pestIssues []models.PestIssue) int {
	base := 50
	switch stage {
	case StageEarly:
		base = 70
	case StageMid:
		base = 85
	case StageLate:
		base = 80
	case StageReady:
		base = 60
	}

	active := 0
	for _, issue := range pestIssues {
		if issue.Status == PestStatusActive {
			active++
		}
	}

	score := base - active*15
	if score < 0 {
		score = 0
	}
	return score
}

// EstimatedYield projects yield from area, stage multiplier, and health,
// rounded half away from zero to two decimals.
func EstimatedYield(area float64, stage string, healthScore int) float64 {
	multiplier := 1.0
	switch stage {
	case StageEarly:
		multiplier = 0.5
	case StageMid:
		multiplier = 1.2
	case StageLate:
		multiplier = 1.8
	case StageReady:
		multiplier = 2.0
	}
	return math.Round(area*multiplier*(float64(healthScore)/100)*100) / 100
}

// IsTerminal reports whether the crop has left the lifecycle. A
// harvested crop is never re-derived.
func IsTerminal(stage string) bool {
	return stage == StageHarvest
}
