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

type UserRepository interface {
	Create(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByStravaID(ctx context.Context, stravaID int64) (*db_models.User, error)
	SetStravaAthleteID(ctx context.Context, userID uuid.UUID, stravaID int64) error
	// UpdatePassword reports whether the user exists.
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *db_models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return findByID[db_models.User](ctx, r.db, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByStravaID(ctx context.Context, stravaID int64) (*db_models.User, error) {
	return r.findOne(ctx, "strava_athlete_id = ?", stravaID)
}

func (r *userRepository) findOne(ctx context.Context, query string, args ...interface{}) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetStravaAthleteID(ctx context.Context, userID uuid.UUID, stravaID int64) error {
	err := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Update("strava_athlete_id", stravaID).Error
	return translate(err)
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type StravaTokenRepository interface {
	Find(ctx context.Context, userID uuid.UUID) (*db_models.StravaToken, error)
	Save(ctx context.Context, token *db_models.StravaToken) error
}

type stravaTokenRepository struct {
	db *gorm.DB
}

func NewStravaTokenRepository(db *gorm.DB) StravaTokenRepository {
	return &stravaTokenRepository{db: db}
}

func (r *stravaTokenRepository) Find(ctx context.Context, userID uuid.UUID) (*db_models.StravaToken, error) {
	var tok db_models.StravaToken
	err := r.db.WithContext(ctx).First(&tok, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tok, nil
}

func (r *stravaTokenRepository) Save(ctx context.Context, token *db_models.StravaToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "token_type", "expiry", "scope", "updated_at"}),
		}).
		Create(token).Error
}
