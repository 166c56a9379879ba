package response_models

import (
	"time"

	"github.com/google/uuid"
)

type SummaryRange struct {
	From time.Time `json:"from"`
	// Exclusive.
	To       time.Time `json:"to"`
	Interval string    `json:"interval"`
	Timezone string    `json:"timezone"`
}

type SummaryTotals struct {
	Activities         int64    `json:"activities"`
	DistanceMeters     float64  `json:"distance_meters"`
	MovingTimeSeconds  int64    `json:"moving_time_seconds"`
	ElevationGain      float64  `json:"elevation_gain_meters"`
	LongestMeters      float64  `json:"longest_meters"`
	AveragePaceSeconds float64  `json:"average_pace_seconds_per_km"`
	AverageHeartRate   *float64 `json:"average_heart_rate,omitempty"`
}

type SummaryPoint struct {
	Bucket            time.Time `json:"bucket"`
	Activities        int64     `json:"activities"`
	DistanceMeters    float64   `json:"distance_meters"`
	MovingTimeSeconds int64     `json:"moving_time_seconds"`
}

type TrainingSummary struct {
	AthleteID uuid.UUID      `json:"athlete_id"`
	Range     SummaryRange   `json:"range"`
	Totals    SummaryTotals  `json:"totals"`
	Series    []SummaryPoint `json:"series"`
}
