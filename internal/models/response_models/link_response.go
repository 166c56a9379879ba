package response_models

import (
	"time"

	"runmind/internal/models/db_models"
)

type LinkResponse struct {
	ID        string       `json:"id"`
	CoachID   string       `json:"coach_id"`
	AthleteID string       `json:"athlete_id"`
	Status    string       `json:"status"`
	Initiator string       `json:"initiator"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Athlete   *UserSummary `json:"athlete,omitempty"`
	Coach     *UserSummary `json:"coach,omitempty"`
}

func NewLinkResponse(l *db_models.CoachAthleteLink) LinkResponse {
	return LinkResponse{
		ID:        l.ID.String(),
		CoachID:   l.CoachID.String(),
		AthleteID: l.AthleteID.String(),
		Status:    string(l.Status),
		Initiator: string(l.Initiator),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Athlete:   NewUserSummary(l.Athlete),
		Coach:     NewUserSummary(l.Coach),
	}
}

func NewLinkResponses(links []db_models.CoachAthleteLink) []LinkResponse {
	out := make([]LinkResponse, 0, len(links))
	for i := range links {
		out = append(out, NewLinkResponse(&links[i]))
	}
	return out
}
