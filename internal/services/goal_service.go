package services

import (
	"context"

	"github.com/google/uuid"

	"runmind/internal/models/db_models"
	"runmind/internal/models/request_models"
	"runmind/internal/repositories"
	"runmind/pkg/utils"
)

type GoalServiceInterface interface {
	List(ctx context.Context, actor Actor, ownerID uuid.UUID, status string) ([]db_models.Goal, error)
	Create(ctx context.Context, actor Actor, req request_models.CreateGoalRequest) (*db_models.Goal, error)
	UpdateStatus(ctx context.Context, actor Actor, goalID uuid.UUID, status string) (*db_models.Goal, error)
	Delete(ctx context.Context, actor Actor, goalID uuid.UUID) error
}

type GoalService struct {
	goals repositories.GoalRepository
	gate  AccessGate
}

func NewGoalService(goals repositories.GoalRepository, gate AccessGate) GoalServiceInterface {
	return &GoalService{goals: goals, gate: gate}
}

func (s *GoalService) List(ctx context.Context, actor Actor, ownerID uuid.UUID, status string) ([]db_models.Goal, error) {
	var filter *db_models.GoalStatus
	if status != "" {
		parsed, ok := db_models.ParseGoalStatus(status)
		if !ok {
			return nil, utils.Validation("invalid goal status %q", status)
		}
		filter = &parsed
	}
	if err := s.gate.RequireAccess(ctx, actor, ownerID); err != nil {
		return nil, err
	}
	goals, err := s.goals.ListByUser(ctx, ownerID, filter)
	if err != nil {
		return nil, utils.Internal(err, "failed to list goals")
	}
	return goals, nil
}

func (s *GoalService) Create(ctx context.Context, actor Actor, req request_models.CreateGoalRequest) (*db_models.Goal, error) {
	deadline, err := utils.ParseOptionalDate(req.Deadline)
	if err != nil {
		return nil, utils.Validation("deadline must be a date in YYYY-MM-DD format")
	}
	goal := &db_models.Goal{
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		Deadline:    deadline,
		Status:      db_models.GoalStatusActive,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, utils.Internal(err, "failed to create goal")
	}
	return goal, nil
}

func (s *GoalService) UpdateStatus(ctx context.Context, actor Actor, goalID uuid.UUID, status string) (*db_models.Goal, error) {
	next, ok := db_models.ParseGoalStatus(status)
	if !ok {
		return nil, utils.Validation("invalid goal status %q", status)
	}
	goal, err := s.loadOwned(ctx, actor, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == next {
		return goal, nil
	}
	if !goal.Status.CanTransition(next) {
		return nil, utils.NewServiceError(utils.ErrConflict, "goal cannot move from %s to %s", goal.Status, next).
			WithDetails(map[string]interface{}{"current_status": string(goal.Status)})
	}

	goal.Status = next
	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, utils.Internal(err, "failed to update goal")
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, actor Actor, goalID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actor, goalID); err != nil {
		return err
	}
	if _, err := s.goals.Delete(ctx, goalID); err != nil {
		return utils.Internal(err, "failed to delete goal")
	}
	return nil
}

func (s *GoalService) loadOwned(ctx context.Context, actor Actor, goalID uuid.UUID) (*db_models.Goal, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load goal")
	}
	if goal == nil {
		return nil, utils.ErrGoalNotFound
	}
	if err := requireOwner(actor, goal.UserID); err != nil {
		return nil, err
	}
	return goal, nil
}
