package db_models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleRunner = "runner"
	RoleCoach  = "coach"
)

func IsValidRole(role string) bool {
	return role == RoleRunner || role == RoleCoach
}

// User is an athlete or a coach. Role is fixed at creation. A user has a
// password, a Strava linkage, or both.
type User struct {
	BaseModel
	Name            string  `gorm:"not null" json:"name"`
	Email           *string `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash    *string `json:"-"`
	Role            string  `gorm:"type:varchar(16);not null;check:chk_users_role,role IN ('runner','coach')" json:"role"`
	StravaAthleteID *int64  `gorm:"uniqueIndex" json:"strava_athlete_id,omitempty"`
}

func (u *User) IsCoach() bool  { return u.Role == RoleCoach }
func (u *User) IsRunner() bool { return u.Role == RoleRunner }

func (u *User) HasCredential() bool {
	return (u.PasswordHash != nil && *u.PasswordHash != "") || u.StravaAthleteID != nil
}

func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// StravaToken holds the OAuth token of a user's Strava connection.
type StravaToken struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccessToken  string    `gorm:"not null"`
	RefreshToken string    `gorm:"not null"`
	TokenType    string    `gorm:"not null"`
	Expiry       time.Time `gorm:"not null"`
	Scope        string
	UpdatedAt    time.Time
}
