package request_models

type CreateGoalRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description"`
	GoalType    string  `json:"goal_type" binding:"required,oneof=distance time frequency custom"`
	TargetValue float64 `json:"target_value" binding:"gte=0"`
	Unit        string  `json:"unit"`
	Deadline    string  `json:"deadline"`
}

type UpdateGoalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TrainingNoteRequest struct {
	NoteDate string `json:"note_date" binding:"required"`
	Title    string `json:"title" binding:"max=200"`
	Content  string `json:"content" binding:"required"`
}
