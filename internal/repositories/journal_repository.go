package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"runmind/internal/models/db_models"
)

type DiaryRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, rng DateRange) ([]db_models.DiaryEntry, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.DiaryEntry, error)
	Create(ctx context.Context, entry *db_models.DiaryEntry) error
	Update(ctx context.Context, entry *db_models.DiaryEntry) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type diaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

func (r *diaryRepository) ListByUser(ctx context.Context, userID uuid.UUID, rng DateRange) ([]db_models.DiaryEntry, error) {
	var entries []db_models.DiaryEntry
	err := r.db.WithContext(ctx).
		Scopes(rng.scope("entry_date")).
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *diaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.DiaryEntry, error) {
	return findByID[db_models.DiaryEntry](ctx, r.db, id)
}

func (r *diaryRepository) Create(ctx context.Context, entry *db_models.DiaryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *diaryRepository) Update(ctx context.Context, entry *db_models.DiaryEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *diaryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID[db_models.DiaryEntry](ctx, r.db, id)
}

type DietRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, rng DateRange) ([]db_models.DietLog, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.DietLog, error)
	Create(ctx context.Context, log *db_models.DietLog) error
	Update(ctx context.Context, log *db_models.DietLog) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type dietRepository struct {
	db *gorm.DB
}

func NewDietRepository(db *gorm.DB) DietRepository {
	return &dietRepository{db: db}
}

func (r *dietRepository) ListByUser(ctx context.Context, userID uuid.UUID, rng DateRange) ([]db_models.DietLog, error) {
	var logs []db_models.DietLog
	err := r.db.WithContext(ctx).
		Scopes(rng.scope("log_date")).
		Where("user_id = ?", userID).
		Order("log_date DESC").
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *dietRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.DietLog, error) {
	return findByID[db_models.DietLog](ctx, r.db, id)
}

func (r *dietRepository) Create(ctx context.Context, log *db_models.DietLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *dietRepository) Update(ctx context.Context, log *db_models.DietLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *dietRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID[db_models.DietLog](ctx, r.db, id)
}
