package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"runmind/internal/models/db_models"
)

type GoalRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, status *db_models.GoalStatus) ([]db_models.Goal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Goal, error)
	Create(ctx context.Context, goal *db_models.Goal) error
	Update(ctx context.Context, goal *db_models.Goal) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *db_models.GoalStatus) ([]db_models.Goal, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var goals []db_models.Goal
	err := q.Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Goal, error) {
	return findByID[db_models.Goal](ctx, r.db, id)
}

func (r *goalRepository) Create(ctx context.Context, goal *db_models.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) Update(ctx context.Context, goal *db_models.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID[db_models.Goal](ctx, r.db, id)
}

type TrainingNoteRepository interface {
	ListForPair(ctx context.Context, coachID, athleteID uuid.UUID) ([]db_models.TrainingNote, error)
	ListForAthlete(ctx context.Context, athleteID uuid.UUID) ([]db_models.TrainingNote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.TrainingNote, error)
	Create(ctx context.Context, note *db_models.TrainingNote) error
	Update(ctx context.Context, note *db_models.TrainingNote) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type trainingNoteRepository struct {
	db *gorm.DB
}

func NewTrainingNoteRepository(db *gorm.DB) TrainingNoteRepository {
	return &trainingNoteRepository{db: db}
}

func (r *trainingNoteRepository) ListForPair(ctx context.Context, coachID, athleteID uuid.UUID) ([]db_models.TrainingNote, error) {
	var notes []db_models.TrainingNote
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND athlete_id = ?", coachID, athleteID).
		Order("note_date DESC").
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (r *trainingNoteRepository) ListForAthlete(ctx context.Context, athleteID uuid.UUID) ([]db_models.TrainingNote, error) {
	var notes []db_models.TrainingNote
	err := r.db.WithContext(ctx).
		Preload("Coach").
		Where("athlete_id = ?", athleteID).
		Order("note_date DESC").
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (r *trainingNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.TrainingNote, error) {
	return findByID[db_models.TrainingNote](ctx, r.db, id)
}

func (r *trainingNoteRepository) Create(ctx context.Context, note *db_models.TrainingNote) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(note).Error
}

func (r *trainingNoteRepository) Update(ctx context.Context, note *db_models.TrainingNote) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(note).Error
}

func (r *trainingNoteRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID[db_models.TrainingNote](ctx, r.db, id)
}
