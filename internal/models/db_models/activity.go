package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Activity struct {
	BaseModel
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_activities_user_start,priority:1" json:"user_id"`
	StravaActivityID *int64         `gorm:"uniqueIndex" json:"strava_activity_id,omitempty"`
	Name             string         `gorm:"not null" json:"name"`
	SportType        string         `gorm:"type:varchar(32);not null" json:"sport_type"`
	StartDate        time.Time      `gorm:"not null;index:idx_activities_user_start,priority:2,sort:desc" json:"start_date"`
	DistanceMeters   float64        `json:"distance_meters"`
	MovingTime       int            `json:"moving_time_seconds"`
	ElapsedTime      int            `json:"elapsed_time_seconds"`
	ElevationGain    float64        `json:"elevation_gain_meters"`
	AverageSpeed     float64        `json:"average_speed"`
	AverageHeartRate *float64       `json:"average_heart_rate,omitempty"`
	Calories         *float64       `json:"calories,omitempty"`
	Raw              datatypes.JSON `gorm:"type:jsonb" json:"-"`

	MentalState *MentalState `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"mental_state,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"-"`
}

// MentalState is the athlete's subjective log for one activity.
type MentalState struct {
	BaseModel
	ActivityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"activity_id"`
	Mood       int       `gorm:"not null;check:chk_mental_mood,mood BETWEEN 1 AND 10" json:"mood"`
	Focus      int       `gorm:"not null;check:chk_mental_focus,focus BETWEEN 1 AND 10" json:"focus"`
	Stress     int       `gorm:"not null;check:chk_mental_stress,stress BETWEEN 1 AND 10" json:"stress"`
	Notes      string    `gorm:"type:text" json:"notes"`
}

type Comment struct {
	BaseModel
	ActivityID uuid.UUID `gorm:"type:uuid;not null;index" json:"activity_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Body       string    `gorm:"type:text;not null" json:"body"`

	Author *User `gorm:"foreignKey:UserID" json:"-"`
}
