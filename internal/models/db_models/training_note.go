package db_models

import (
	"time"

	"github.com/google/uuid"
)

// TrainingNote is written by a coach for one linked athlete.
type TrainingNote struct {
	BaseModel
	CoachID   uuid.UUID `gorm:"type:uuid;not null;index:idx_notes_pair,priority:1" json:"coach_id"`
	AthleteID uuid.UUID `gorm:"type:uuid;not null;index:idx_notes_pair,priority:2;index" json:"athlete_id"`
	NoteDate  time.Time `gorm:"type:date;not null" json:"note_date"`
	Title     string    `json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`

	Coach *User `gorm:"foreignKey:CoachID" json:"-"`
}
