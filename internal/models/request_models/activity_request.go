package request_models

import "time"

type CreateActivityRequest struct {
	Name             string    `json:"name" binding:"required,max=200"`
	SportType        string    `json:"sport_type" binding:"required"`
	StartDate        time.Time `json:"start_date" binding:"required"`
	DistanceMeters   float64   `json:"distance_meters" binding:"gte=0"`
	MovingTime       int       `json:"moving_time_seconds" binding:"gte=0"`
	ElapsedTime      int       `json:"elapsed_time_seconds" binding:"gte=0"`
	ElevationGain    float64   `json:"elevation_gain_meters"`
	AverageHeartRate *float64  `json:"average_heart_rate,omitempty"`
	Calories         *float64  `json:"calories,omitempty"`
}

type MentalStateRequest struct {
	Mood   int    `json:"mood" binding:"required,min=1,max=10"`
	Focus  int    `json:"focus" binding:"required,min=1,max=10"`
	Stress int    `json:"stress" binding:"required,min=1,max=10"`
	Notes  string `json:"notes" binding:"max=2000"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}
