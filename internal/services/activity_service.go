package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"runmind/internal/models/db_models"
	"runmind/internal/models/request_models"
	"runmind/internal/repositories"
	"runmind/pkg/utils"
)

type ActivityServiceInterface interface {
	List(ctx context.Context, actor Actor, ownerID uuid.UUID, q request_models.ActivityQuery) ([]db_models.Activity, error)
	Get(ctx context.Context, actor Actor, activityID uuid.UUID) (*db_models.Activity, error)
	Create(ctx context.Context, actor Actor, req request_models.CreateActivityRequest) (*db_models.Activity, error)
	SetMentalState(ctx context.Context, actor Actor, activityID uuid.UUID, req request_models.MentalStateRequest) (*db_models.Activity, error)
	Delete(ctx context.Context, actor Actor, activityID uuid.UUID) error
}

type ActivityService struct {
	activities repositories.ActivityRepository
	gate       AccessGate
}

func NewActivityService(activities repositories.ActivityRepository, gate AccessGate) ActivityServiceInterface {
	return &ActivityService{activities: activities, gate: gate}
}

func (s *ActivityService) List(ctx context.Context, actor Actor, ownerID uuid.UUID, q request_models.ActivityQuery) ([]db_models.Activity, error) {
	rng, err := parseDateRange(q.DateRangeQuery)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireAccess(ctx, actor, ownerID); err != nil {
		return nil, err
	}

	// start_date carries a clock, so the inclusive "to" day becomes an
	// exclusive bound at the next midnight.
	if rng.To != nil {
		end := utils.EndOfDay(*rng.To)
		rng.To = &end
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	activities, err := s.activities.ListByUser(ctx, ownerID, repositories.ActivityFilter{
		DateRange: rng,
		SportType: q.Type,
		Limit:     limit,
	})
	if err != nil {
		return nil, utils.Internal(err, "failed to list activities")
	}
	return activities, nil
}

func (s *ActivityService) Get(ctx context.Context, actor Actor, activityID uuid.UUID) (*db_models.Activity, error) {
	activity, err := s.load(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireAccess(ctx, actor, activity.UserID); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ActivityService) Create(ctx context.Context, actor Actor, req request_models.CreateActivityRequest) (*db_models.Activity, error) {
	activity := &db_models.Activity{}
	if err := copier.Copy(activity, &req); err != nil {
		return nil, utils.Internal(err, "failed to map activity")
	}
	activity.UserID = actor.ID
	activity.StartDate = req.StartDate.UTC()
	if req.MovingTime > 0 {
		activity.AverageSpeed = req.DistanceMeters / float64(req.MovingTime)
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, utils.Internal(err, "failed to create activity")
	}
	return activity, nil
}

func (s *ActivityService) SetMentalState(ctx context.Context, actor Actor, activityID uuid.UUID, req request_models.MentalStateRequest) (*db_models.Activity, error) {
	activity, err := s.load(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, activity.UserID); err != nil {
		return nil, err
	}

	state := &db_models.MentalState{
		ActivityID: activity.ID,
		Mood:       req.Mood,
		Focus:      req.Focus,
		Stress:     req.Stress,
		Notes:      req.Notes,
	}
	if err := s.activities.UpsertMentalState(ctx, state); err != nil {
		return nil, utils.Internal(err, "failed to save mental state")
	}

	// Reload so the response carries the stored row, not the upsert input.
	return s.load(ctx, activityID)
}

func (s *ActivityService) Delete(ctx context.Context, actor Actor, activityID uuid.UUID) error {
	activity, err := s.load(ctx, activityID)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, activity.UserID); err != nil {
		return err
	}
	deleted, err := s.activities.Delete(ctx, activityID)
	if err != nil {
		return utils.Internal(err, "failed to delete activity")
	}
	if !deleted {
		return utils.ErrActivityNotFound
	}
	return nil
}

func (s *ActivityService) load(ctx context.Context, activityID uuid.UUID) (*db_models.Activity, error) {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load activity")
	}
	if activity == nil {
		return nil, utils.ErrActivityNotFound
	}
	return activity, nil
}
