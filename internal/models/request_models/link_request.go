package request_models

type CreateLinkRequest struct {
	CoachEmail string `json:"coachEmail" binding:"required,email"`
}

type RespondLinkRequest struct {
	Status string `json:"status" binding:"required"`
}
