package services

import (
	"context"

	"github.com/google/uuid"

	"runmind/internal/models/db_models"
	"runmind/internal/models/request_models"
	"runmind/internal/repositories"
	"runmind/pkg/utils"
)

type DiaryServiceInterface interface {
	List(ctx context.Context, actor Actor, ownerID uuid.UUID, q request_models.DateRangeQuery) ([]db_models.DiaryEntry, error)
	Create(ctx context.Context, actor Actor, req request_models.DiaryEntryRequest) (*db_models.DiaryEntry, error)
	Update(ctx context.Context, actor Actor, entryID uuid.UUID, req request_models.DiaryEntryRequest) (*db_models.DiaryEntry, error)
	Delete(ctx context.Context, actor Actor, entryID uuid.UUID) error
}

type DiaryService struct {
	entries repositories.DiaryRepository
	gate    AccessGate
}

func NewDiaryService(entries repositories.DiaryRepository, gate AccessGate) DiaryServiceInterface {
	return &DiaryService{entries: entries, gate: gate}
}

func (s *DiaryService) List(ctx context.Context, actor Actor, ownerID uuid.UUID, q request_models.DateRangeQuery) ([]db_models.DiaryEntry, error) {
	rng, err := parseDateRange(q)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireAccess(ctx, actor, ownerID); err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByUser(ctx, ownerID, rng)
	if err != nil {
		return nil, utils.Internal(err, "failed to list diary entries")
	}
	return entries, nil
}

func (s *DiaryService) Create(ctx context.Context, actor Actor, req request_models.DiaryEntryRequest) (*db_models.DiaryEntry, error) {
	date, err := parseRequiredDate("entry_date", req.EntryDate)
	if err != nil {
		return nil, err
	}
	entry := &db_models.DiaryEntry{
		UserID:    actor.ID,
		EntryDate: date,
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, utils.Internal(err, "failed to create diary entry")
	}
	return entry, nil
}

func (s *DiaryService) Update(ctx context.Context, actor Actor, entryID uuid.UUID, req request_models.DiaryEntryRequest) (*db_models.DiaryEntry, error) {
	date, err := parseRequiredDate("entry_date", req.EntryDate)
	if err != nil {
		return nil, err
	}
	entry, err := s.loadOwned(ctx, actor, entryID)
	if err != nil {
		return nil, err
	}

	entry.EntryDate = date
	entry.Title = req.Title
	entry.Content = req.Content
	entry.Mood = req.Mood
	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, utils.Internal(err, "failed to update diary entry")
	}
	return entry, nil
}

func (s *DiaryService) Delete(ctx context.Context, actor Actor, entryID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actor, entryID); err != nil {
		return err
	}
	if _, err := s.entries.Delete(ctx, entryID); err != nil {
		return utils.Internal(err, "failed to delete diary entry")
	}
	return nil
}

// loadOwned returns not found for a missing entry and forbidden for another
// user's entry.
func (s *DiaryService) loadOwned(ctx context.Context, actor Actor, entryID uuid.UUID) (*db_models.DiaryEntry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load diary entry")
	}
	if entry == nil {
		return nil, utils.ErrDiaryNotFound
	}
	if err := requireOwner(actor, entry.UserID); err != nil {
		return nil, err
	}
	return entry, nil
}
