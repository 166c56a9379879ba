package response_models

import "runmind/internal/models/db_models"

type AccountLoginResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

type AccountResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Role            string `json:"role"`
	StravaConnected bool   `json:"strava_connected"`
}

func NewAccountResponse(u *db_models.User) AccountResponse {
	return AccountResponse{
		ID:              u.ID.String(),
		Name:            u.Name,
		Email:           u.EmailValue(),
		Role:            u.Role,
		StravaConnected: u.StravaAthleteID != nil,
	}
}

// UserSummary is the part of a user shown to the other side of a link.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func NewUserSummary(u *db_models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID.String(), Name: u.Name, Email: u.EmailValue()}
}
