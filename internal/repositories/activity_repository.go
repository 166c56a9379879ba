package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"runmind/internal/models/db_models"
)

type ActivityFilter struct {
	DateRange
	SportType string
	Limit     int
}

type ActivityRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, filter ActivityFilter) ([]db_models.Activity, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Activity, error)
	Create(ctx context.Context, activity *db_models.Activity) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	UpsertMentalState(ctx context.Context, state *db_models.MentalState) error
	// UpsertStravaActivities writes the whole batch in one transaction keyed by
	// strava_activity_id. Nothing is written when any row fails.
	UpsertStravaActivities(ctx context.Context, activities []db_models.Activity) error
	LatestStravaStart(ctx context.Context, userID uuid.UUID) (*time.Time, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter ActivityFilter) ([]db_models.Activity, error) {
	q := r.db.WithContext(ctx).
		Preload("MentalState").
		Where("user_id = ?", userID)

	if filter.From != nil {
		q = q.Where("start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("start_date < ?", *filter.To)
	}
	if filter.SportType != "" {
		q = q.Where("sport_type = ?", filter.SportType)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var activities []db_models.Activity
	err := q.Order("start_date DESC").Find(&activities).Error
	return activities, err
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Activity, error) {
	return findByID[db_models.Activity](ctx, r.db, id, "MentalState")
}

func (r *activityRepository) Create(ctx context.Context, activity *db_models.Activity) error {
	return translate(r.db.WithContext(ctx).Create(activity).Error)
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID[db_models.Activity](ctx, r.db, id)
}

func (r *activityRepository) UpsertMentalState(ctx context.Context, state *db_models.MentalState) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "activity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"mood", "focus", "stress", "notes", "updated_at"}),
		}).
		Create(state).Error
}

func (r *activityRepository) UpsertStravaActivities(ctx context.Context, activities []db_models.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "strava_activity_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "sport_type", "start_date", "distance_meters", "moving_time",
					"elapsed_time", "elevation_gain", "average_speed", "average_heart_rate",
					"calories", "raw", "updated_at",
				}),
			}).
			CreateInBatches(&activities, 100).Error
	})
}

func (r *activityRepository) LatestStravaStart(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	var activity db_models.Activity
	err := r.db.WithContext(ctx).
		Select("start_date").
		Where("user_id = ? AND strava_activity_id IS NOT NULL", userID).
		Order("start_date DESC").
		First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &activity.StartDate, nil
}

type CommentRepository interface {
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]db_models.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Comment, error)
	Create(ctx context.Context, comment *db_models.Comment) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]db_models.Comment, error) {
	var comments []db_models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Comment, error) {
	return findByID[db_models.Comment](ctx, r.db, id)
}

func (r *commentRepository) Create(ctx context.Context, comment *db_models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID[db_models.Comment](ctx, r.db, id)
}
