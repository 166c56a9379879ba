package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"runmind/internal/models/db_models"
)

type LinkRepository interface {
	// Create inserts a link in its own transaction. A second link for the same
	// (coach, athlete) pair fails with ErrDuplicate.
	Create(ctx context.Context, link *db_models.CoachAthleteLink) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.CoachAthleteLink, error)
	FindByPair(ctx context.Context, coachID, athleteID uuid.UUID) (*db_models.CoachAthleteLink, error)
	// ListPendingForCoach returns pending links with the athlete preloaded,
	// oldest request first.
	ListPendingForCoach(ctx context.Context, coachID uuid.UUID) ([]db_models.CoachAthleteLink, error)
	// ListForUser returns the links of a coach (athlete preloaded) or of an
	// athlete (coach preloaded) in a status, sorted by the counterpart name.
	ListForUser(ctx context.Context, userID uuid.UUID, asCoach bool, status db_models.LinkStatus) ([]db_models.CoachAthleteLink, error)
	// UpdateStatusIfPending moves a pending link owned by coachID to status.
	// It returns nil without error when no row matched.
	UpdateStatusIfPending(ctx context.Context, linkID, coachID uuid.UUID, status db_models.LinkStatus) (*db_models.CoachAthleteLink, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	HasAcceptedLink(ctx context.Context, coachID, athleteID uuid.UUID) (bool, error)
}

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *db_models.CoachAthleteLink) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return translate(tx.Create(link).Error)
	})
}

func (r *linkRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.CoachAthleteLink, error) {
	return findByID[db_models.CoachAthleteLink](ctx, r.db, id)
}

func (r *linkRepository) FindByPair(ctx context.Context, coachID, athleteID uuid.UUID) (*db_models.CoachAthleteLink, error) {
	var link db_models.CoachAthleteLink
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND athlete_id = ?", coachID, athleteID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) ListPendingForCoach(ctx context.Context, coachID uuid.UUID) ([]db_models.CoachAthleteLink, error) {
	var links []db_models.CoachAthleteLink
	err := r.db.WithContext(ctx).
		Preload("Athlete").
		Where("coach_id = ? AND status = ?", coachID, db_models.LinkStatusPending).
		Order("created_at ASC").
		Order("id ASC").
		Find(&links).Error
	return links, err
}

func (r *linkRepository) ListForUser(ctx context.Context, userID uuid.UUID, asCoach bool, status db_models.LinkStatus) ([]db_models.CoachAthleteLink, error) {
	selfColumn, counterpartColumn, preload := "athlete_id", "coach_id", "Coach"
	if asCoach {
		selfColumn, counterpartColumn, preload = "coach_id", "athlete_id", "Athlete"
	}

	var links []db_models.CoachAthleteLink
	err := r.db.WithContext(ctx).
		Select("coach_athlete_links.*").
		Joins("JOIN users AS counterpart ON counterpart.id = coach_athlete_links."+counterpartColumn).
		Preload(preload).
		Where("coach_athlete_links."+selfColumn+" = ? AND coach_athlete_links.status = ?", userID, status).
		Order("counterpart.name ASC").
		Find(&links).Error
	return links, err
}

func (r *linkRepository) UpdateStatusIfPending(ctx context.Context, linkID, coachID uuid.UUID, status db_models.LinkStatus) (*db_models.CoachAthleteLink, error) {
	var updated *db_models.CoachAthleteLink
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.CoachAthleteLink{}).
			Where("id = ? AND coach_id = ? AND status = ?", linkID, coachID, db_models.LinkStatusPending).
			UpdateColumns(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var link db_models.CoachAthleteLink
		if err := tx.First(&link, "id = ?", linkID).Error; err != nil {
			return err
		}
		updated = &link
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *linkRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID[db_models.CoachAthleteLink](ctx, r.db, id)
}

func (r *linkRepository) HasAcceptedLink(ctx context.Context, coachID, athleteID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.CoachAthleteLink{}).
		Where("coach_id = ? AND athlete_id = ? AND status = ?", coachID, athleteID, db_models.LinkStatusAccepted).
		Count(&count).Error
	return count > 0, err
}
