package services

import (
	"context"

	"github.com/google/uuid"

	"runmind/internal/models/db_models"
	"runmind/internal/models/request_models"
	resp "runmind/internal/models/response_models"
	"runmind/internal/repositories"
	"runmind/pkg/utils"
)

type TrainingNoteServiceInterface interface {
	ListForAthlete(ctx context.Context, actor Actor, athleteID uuid.UUID) ([]resp.TrainingNoteResponse, error)
	Create(ctx context.Context, actor Actor, athleteID uuid.UUID, req request_models.TrainingNoteRequest) (*resp.TrainingNoteResponse, error)
	Update(ctx context.Context, actor Actor, noteID uuid.UUID, req request_models.TrainingNoteRequest) (*resp.TrainingNoteResponse, error)
	Delete(ctx context.Context, actor Actor, noteID uuid.UUID) error
	ListReceived(ctx context.Context, actor Actor) ([]resp.TrainingNoteResponse, error)
}

// TrainingNoteService manages notes a coach writes for a linked athlete. A
// coach only ever sees their own notes; the athlete sees every note written
// for them.
type TrainingNoteService struct {
	notes repositories.TrainingNoteRepository
	gate  AccessGate
}

func NewTrainingNoteService(notes repositories.TrainingNoteRepository, gate AccessGate) TrainingNoteServiceInterface {
	return &TrainingNoteService{notes: notes, gate: gate}
}

func (s *TrainingNoteService) ListForAthlete(ctx context.Context, actor Actor, athleteID uuid.UUID) ([]resp.TrainingNoteResponse, error) {
	if err := s.requireCoachAccess(ctx, actor, athleteID); err != nil {
		return nil, err
	}
	notes, err := s.notes.ListForPair(ctx, actor.ID, athleteID)
	if err != nil {
		return nil, utils.Internal(err, "failed to list training notes")
	}
	return newNoteResponses(notes), nil
}

func (s *TrainingNoteService) Create(ctx context.Context, actor Actor, athleteID uuid.UUID, req request_models.TrainingNoteRequest) (*resp.TrainingNoteResponse, error) {
	date, err := parseRequiredDate("note_date", req.NoteDate)
	if err != nil {
		return nil, err
	}
	if err := s.requireCoachAccess(ctx, actor, athleteID); err != nil {
		return nil, err
	}

	note := &db_models.TrainingNote{
		CoachID:   actor.ID,
		AthleteID: athleteID,
		NoteDate:  date,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, utils.Internal(err, "failed to create training note")
	}
	out := resp.NewTrainingNoteResponse(note)
	return &out, nil
}

func (s *TrainingNoteService) Update(ctx context.Context, actor Actor, noteID uuid.UUID, req request_models.TrainingNoteRequest) (*resp.TrainingNoteResponse, error) {
	date, err := parseRequiredDate("note_date", req.NoteDate)
	if err != nil {
		return nil, err
	}
	note, err := s.loadAuthored(ctx, actor, noteID)
	if err != nil {
		return nil, err
	}

	note.NoteDate = date
	note.Title = req.Title
	note.Content = req.Content
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, utils.Internal(err, "failed to update training note")
	}
	out := resp.NewTrainingNoteResponse(note)
	return &out, nil
}

func (s *TrainingNoteService) Delete(ctx context.Context, actor Actor, noteID uuid.UUID) error {
	if _, err := s.loadAuthored(ctx, actor, noteID); err != nil {
		return err
	}
	if _, err := s.notes.Delete(ctx, noteID); err != nil {
		return utils.Internal(err, "failed to delete training note")
	}
	return nil
}

func (s *TrainingNoteService) ListReceived(ctx context.Context, actor Actor) ([]resp.TrainingNoteResponse, error) {
	if !actor.IsRunner() {
		return nil, utils.ErrRunnerOnly
	}
	notes, err := s.notes.ListForAthlete(ctx, actor.ID)
	if err != nil {
		return nil, utils.Internal(err, "failed to list training notes")
	}
	return newNoteResponses(notes), nil
}

func (s *TrainingNoteService) requireCoachAccess(ctx context.Context, actor Actor, athleteID uuid.UUID) error {
	if !actor.IsCoach() {
		return utils.ErrCoachOnly
	}
	if actor.ID == athleteID {
		return utils.ErrSelfLink
	}
	return s.gate.RequireAccess(ctx, actor, athleteID)
}

// loadAuthored checks authorship first, then that the link is still
// accepted.
func (s *TrainingNoteService) loadAuthored(ctx context.Context, actor Actor, noteID uuid.UUID) (*db_models.TrainingNote, error) {
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load training note")
	}
	if note == nil {
		return nil, utils.ErrNoteNotFound
	}
	if note.CoachID != actor.ID {
		return nil, utils.ErrNotOwner
	}
	if err := s.requireCoachAccess(ctx, actor, note.AthleteID); err != nil {
		return nil, err
	}
	return note, nil
}

func newNoteResponses(notes []db_models.TrainingNote) []resp.TrainingNoteResponse {
	out := make([]resp.TrainingNoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, resp.NewTrainingNoteResponse(&notes[i]))
	}
	return out
}
