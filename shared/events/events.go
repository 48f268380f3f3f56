package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Envelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
}

const (
	AggregateTypeCrop    = "crop"
	AggregateTypeAlert   = "alert"
	AggregateTypeHarvest = "harvest"
)

const (
	EventTypeCropCreated   = "crop_created"
	EventTypePestReported  = "pest_reported"
	EventTypeActivityAdded = "activity_logged"
	EventTypeCropHarvested = "crop_harvested"
	EventTypeAlertRaised   = "alert_raised"
)

const (
	TopicCropEvents = "crop.events"
	TopicAlerts     = "alerts"
)
