package response_models

import (
	"time"

	"runmind/internal/models/db_models"
)

type CommentResponse struct {
	ID         string       `json:"id"`
	ActivityID string       `json:"activity_id"`
	Body       string       `json:"body"`
	CreatedAt  time.Time    `json:"created_at"`
	Author     *UserSummary `json:"author,omitempty"`
	AuthorID   string       `json:"author_id"`
}

func NewCommentResponse(c *db_models.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID.String(),
		ActivityID: c.ActivityID.String(),
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
		Author:     NewUserSummary(c.Author),
		AuthorID:   c.UserID.String(),
	}
}

type TrainingNoteResponse struct {
	ID        string       `json:"id"`
	CoachID   string       `json:"coach_id"`
	AthleteID string       `json:"athlete_id"`
	NoteDate  string       `json:"note_date"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Coach     *UserSummary `json:"coach,omitempty"`
}

func NewTrainingNoteResponse(n *db_models.TrainingNote) TrainingNoteResponse {
	return TrainingNoteResponse{
		ID:        n.ID.String(),
		CoachID:   n.CoachID.String(),
		AthleteID: n.AthleteID.String(),
		NoteDate:  n.NoteDate.Format("2006-01-02"),
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Coach:     NewUserSummary(n.Coach),
	}
}

type SyncResult struct {
	Imported int `json:"imported"`
}
