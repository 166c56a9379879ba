package db_models

import (
	"time"

	"github.com/google/uuid"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

func ParseGoalStatus(s string) (GoalStatus, bool) {
	switch GoalStatus(s) {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusAbandoned:
		return GoalStatus(s), true
	}
	return "", false
}

// CanTransition: active moves to completed or abandoned, and every status
// may be reactivated.
func (s GoalStatus) CanTransition(to GoalStatus) bool {
	if to == GoalStatusActive {
		return true
	}
	return s == GoalStatusActive
}

var GoalTypes = []string{"distance", "time", "frequency", "custom"}

type Goal struct {
	BaseModel
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	GoalType    string     `gorm:"type:varchar(16);not null" json:"goal_type"`
	TargetValue float64    `json:"target_value"`
	Unit        string     `json:"unit"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      GoalStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
}
