package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"runmind/internal/models/db_models"
)

// SummaryWindow selects one athlete's activities with start_date in [From, To).
type SummaryWindow struct {
	UserID    uuid.UUID
	From      time.Time
	To        time.Time
	SportType string
}

type SummaryTotals struct {
	Activities    int64    `gorm:"column:activities"`
	Distance      float64  `gorm:"column:distance"`
	MovingTime    int64    `gorm:"column:moving_time"`
	ElevationGain float64  `gorm:"column:elevation_gain"`
	Longest       float64  `gorm:"column:longest"`
	AvgHeartRate  *float64 `gorm:"column:avg_heart_rate"`
}

type BucketTotals struct {
	Bucket     time.Time `gorm:"column:bucket"`
	Activities int64     `gorm:"column:activities"`
	Distance   float64   `gorm:"column:distance"`
	MovingTime int64     `gorm:"column:moving_time"`
}

type SummaryRepository interface {
	Totals(ctx context.Context, w SummaryWindow) (*SummaryTotals, error)
	// Series groups the window into date_trunc buckets ("day", "week" or
	// "month") in the given IANA timezone, oldest first. Empty buckets are
	// not returned.
	Series(ctx context.Context, w SummaryWindow, interval, tz string) ([]BucketTotals, error)
}

type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) window(ctx context.Context, w SummaryWindow) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&db_models.Activity{}).
		Where("user_id = ?", w.UserID).
		Where("start_date >= ? AND start_date < ?", w.From, w.To)
	if w.SportType != "" {
		q = q.Where("sport_type = ?", w.SportType)
	}
	return q
}

func (r *summaryRepository) Totals(ctx context.Context, w SummaryWindow) (*SummaryTotals, error) {
	var out SummaryTotals
	err := r.window(ctx, w).
		Select(`
			COUNT(*) AS activities,
			COALESCE(SUM(distance_meters), 0) AS distance,
			COALESCE(SUM(moving_time), 0) AS moving_time,
			COALESCE(SUM(elevation_gain), 0) AS elevation_gain,
			COALESCE(MAX(distance_meters), 0) AS longest,
			AVG(average_heart_rate) AS avg_heart_rate`).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *summaryRepository) Series(ctx context.Context, w SummaryWindow, interval, tz string) ([]BucketTotals, error) {
	var rows []BucketTotals
	err := r.window(ctx, w).
		Select(dateTrunc(tz, "start_date")+` AS bucket,
			COUNT(*) AS activities,
			SUM(distance_meters) AS distance,
			SUM(moving_time) AS moving_time`, truncArgs(interval, tz)...).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	return rows, err
}

// dateTrunc buckets a timestamptz column in the athlete's local time, e.g.
// date_trunc('week', timezone('Europe/Paris', start_date)).
func dateTrunc(tz, column string) string {
	if tz == "" {
		return "date_trunc(?, " + column + ")"
	}
	return "date_trunc(?, timezone(?, " + column + "))"
}

func truncArgs(interval, tz string) []interface{} {
	if tz == "" {
		return []interface{}{interval}
	}
	return []interface{}{interval, tz}
}
