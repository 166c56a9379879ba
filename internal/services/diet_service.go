package services

import (
	"context"

	"github.com/google/uuid"

	"runmind/internal/models/db_models"
	"runmind/internal/models/request_models"
	"runmind/internal/repositories"
	"runmind/pkg/utils"
)

type DietServiceInterface interface {
	List(ctx context.Context, actor Actor, ownerID uuid.UUID, q request_models.DateRangeQuery) ([]db_models.DietLog, error)
	Create(ctx context.Context, actor Actor, req request_models.CreateDietLogRequest) (*db_models.DietLog, error)
	Patch(ctx context.Context, actor Actor, logID uuid.UUID, patch request_models.DietLogPatch) (*db_models.DietLog, error)
	Delete(ctx context.Context, actor Actor, logID uuid.UUID) error
}

type DietService struct {
	logs repositories.DietRepository
	gate AccessGate
}

func NewDietService(logs repositories.DietRepository, gate AccessGate) DietServiceInterface {
	return &DietService{logs: logs, gate: gate}
}

func (s *DietService) List(ctx context.Context, actor Actor, ownerID uuid.UUID, q request_models.DateRangeQuery) ([]db_models.DietLog, error) {
	rng, err := parseDateRange(q)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireAccess(ctx, actor, ownerID); err != nil {
		return nil, err
	}
	logs, err := s.logs.ListByUser(ctx, ownerID, rng)
	if err != nil {
		return nil, utils.Internal(err, "failed to list diet logs")
	}
	return logs, nil
}

func (s *DietService) Create(ctx context.Context, actor Actor, req request_models.CreateDietLogRequest) (*db_models.DietLog, error) {
	date, err := parseRequiredDate("log_date", req.LogDate)
	if err != nil {
		return nil, err
	}
	if !db_models.IsValidMeal(req.Meal) {
		return nil, utils.Validation("invalid meal %q", req.Meal)
	}
	entry := &db_models.DietLog{
		UserID:      actor.ID,
		LogDate:     date,
		Meal:        req.Meal,
		Description: req.Description,
		Calories:    req.Calories,
		ProteinG:    req.ProteinG,
		CarbsG:      req.CarbsG,
		FatG:        req.FatG,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, utils.Internal(err, "failed to create diet log")
	}
	return entry, nil
}

func (s *DietService) Patch(ctx context.Context, actor Actor, logID uuid.UUID, patch request_models.DietLogPatch) (*db_models.DietLog, error) {
	if patch.IsEmpty() {
		return nil, utils.Validation("no fields to update")
	}
	entry, err := s.loadOwned(ctx, actor, logID)
	if err != nil {
		return nil, err
	}
	if err := ApplyDietPatch(entry, patch); err != nil {
		return nil, err
	}
	if err := s.logs.Update(ctx, entry); err != nil {
		return nil, utils.Internal(err, "failed to update diet log")
	}
	return entry, nil
}

// ApplyDietPatch copies every non-nil patch field onto entry. Owner, id and
// timestamps are not patchable.
func ApplyDietPatch(entry *db_models.DietLog, patch request_models.DietLogPatch) error {
	if patch.LogDate != nil {
		date, err := parseRequiredDate("log_date", *patch.LogDate)
		if err != nil {
			return err
		}
		entry.LogDate = date
	}
	if patch.Meal != nil {
		if !db_models.IsValidMeal(*patch.Meal) {
			return utils.Validation("invalid meal %q", *patch.Meal)
		}
		entry.Meal = *patch.Meal
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.Calories != nil {
		entry.Calories = patch.Calories
	}
	if patch.ProteinG != nil {
		entry.ProteinG = patch.ProteinG
	}
	if patch.CarbsG != nil {
		entry.CarbsG = patch.CarbsG
	}
	if patch.FatG != nil {
		entry.FatG = patch.FatG
	}
	return nil
}

func (s *DietService) Delete(ctx context.Context, actor Actor, logID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actor, logID); err != nil {
		return err
	}
	if _, err := s.logs.Delete(ctx, logID); err != nil {
		return utils.Internal(err, "failed to delete diet log")
	}
	return nil
}

func (s *DietService) loadOwned(ctx context.Context, actor Actor, logID uuid.UUID) (*db_models.DietLog, error) {
	entry, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load diet log")
	}
	if entry == nil {
		return nil, utils.ErrDietLogNotFound
	}
	if err := requireOwner(actor, entry.UserID); err != nil {
		return nil, err
	}
	return entry, nil
}
