package db_models

import "github.com/google/uuid"

type LinkStatus string

const (
	LinkStatusPending  LinkStatus = "pending"
	LinkStatusAccepted LinkStatus = "accepted"
	LinkStatusDeclined LinkStatus = "declined"
	// LinkStatusRevoked is accepted as a filter value. Revoking deletes the
	// link, so no row ever carries it.
	LinkStatusRevoked LinkStatus = "revoked"
)

func ParseLinkStatus(s string) (LinkStatus, bool) {
	switch LinkStatus(s) {
	case LinkStatusPending, LinkStatusAccepted, LinkStatusDeclined, LinkStatusRevoked:
		return LinkStatus(s), true
	}
	return "", false
}

type LinkInitiator string

const (
	InitiatorCoach   LinkInitiator = "coach"
	InitiatorAthlete LinkInitiator = "athlete"
)

// CoachAthleteLink is the relationship between one coach and one athlete.
// There is at most one row per (coach, athlete) pair whatever its status.
type CoachAthleteLink struct {
	BaseModel
	CoachID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_coach_athlete_pair;check:chk_link_distinct_parties,coach_id <> athlete_id" json:"coach_id"`
	AthleteID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_coach_athlete_pair;index" json:"athlete_id"`
	Status    LinkStatus    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	Initiator LinkInitiator `gorm:"type:varchar(16);not null" json:"initiator"`

	Coach   *User `gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE" json:"-"`
	Athlete *User `gorm:"foreignKey:AthleteID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CoachAthleteLink) TableName() string {
	return "coach_athlete_links"
}

// IsParty reports whether userID is the coach or the athlete of the link.
func (l *CoachAthleteLink) IsParty(userID uuid.UUID) bool {
	return l.CoachID == userID || l.AthleteID == userID
}
