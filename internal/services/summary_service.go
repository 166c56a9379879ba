package services

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"

	"runmind/internal/models/request_models"
	resp "runmind/internal/models/response_models"
	"runmind/internal/repositories"
	"runmind/pkg/utils"
)

const (
	defaultSummaryInterval = "week"
	defaultSummaryTimezone = "UTC"
	// Twelve calendar weeks including today.
	defaultSummaryDays = 84
)

type SummaryServiceInterface interface {
	Build(ctx context.Context, actor Actor, ownerID uuid.UUID, q request_models.SummaryQuery) (*resp.TrainingSummary, error)
}

type SummaryService struct {
	repo repositories.SummaryRepository
	gate AccessGate
	now  func() time.Time
}

func NewSummaryService(repo repositories.SummaryRepository, gate AccessGate) SummaryServiceInterface {
	return &SummaryService{repo: repo, gate: gate, now: time.Now}
}

func (s *SummaryService) Build(ctx context.Context, actor Actor, ownerID uuid.UUID, q request_models.SummaryQuery) (*resp.TrainingSummary, error) {
	rng, err := s.normalizeRange(q)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireAccess(ctx, actor, ownerID); err != nil {
		return nil, err
	}

	w := repositories.SummaryWindow{UserID: ownerID, From: rng.From, To: rng.To, SportType: q.Type}
	totals, err := s.repo.Totals(ctx, w)
	if err != nil {
		return nil, utils.Internal(err, "failed to compute training totals")
	}
	rows, err := s.repo.Series(ctx, w, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, utils.Internal(err, "failed to compute training series")
	}

	out := &resp.TrainingSummary{
		AthleteID: ownerID,
		Range:     rng,
		Totals: resp.SummaryTotals{
			Activities:        totals.Activities,
			DistanceMeters:    totals.Distance,
			MovingTimeSeconds: totals.MovingTime,
			ElevationGain:     totals.ElevationGain,
			LongestMeters:     totals.Longest,
			AverageHeartRate:  totals.AvgHeartRate,
		},
		Series: make([]resp.SummaryPoint, 0, len(rows)),
	}
	if totals.Distance > 0 {
		out.Totals.AveragePaceSeconds = float64(totals.MovingTime) / (totals.Distance / 1000)
	}
	for _, r := range rows {
		out.Series = append(out.Series, resp.SummaryPoint{
			Bucket:            r.Bucket,
			Activities:        r.Activities,
			DistanceMeters:    r.Distance,
			MovingTimeSeconds: r.MovingTime,
		})
	}
	return out, nil
}

// normalizeRange fills defaults and turns the inclusive calendar days into
// [From, To) bounds at local midnights of the requested timezone, the same
// clock the buckets are cut with.
func (s *SummaryService) normalizeRange(q request_models.SummaryQuery) (resp.SummaryRange, error) {
	out := resp.SummaryRange{Interval: q.Interval, Timezone: q.TZ}
	if out.Interval == "" {
		out.Interval = defaultSummaryInterval
	}
	if !validInterval(out.Interval) {
		return out, utils.Validation("interval must be one of: day, week, month")
	}
	if out.Timezone == "" {
		out.Timezone = defaultSummaryTimezone
	}
	loc, err := loadTimezone(out.Timezone)
	if err != nil {
		return out, err
	}

	dates, err := parseDateRange(q.DateRangeQuery)
	if err != nil {
		return out, err
	}
	to := localMidnight(s.now().In(loc), loc)
	if dates.To != nil {
		to = localMidnight(*dates.To, loc)
	}
	from := to.AddDate(0, 0, 1-defaultSummaryDays)
	if dates.From != nil {
		from = localMidnight(*dates.From, loc)
	}
	if to.Before(from) {
		return out, utils.Validation("to must not be before from")
	}
	out.From = from
	out.To = to.AddDate(0, 0, 1)
	return out, nil
}

// loadTimezone accepts names Postgres timezone() understands. "Local" is a
// Go alias for the server zone and has no meaning to the database.
func loadTimezone(name string) (*time.Location, error) {
	if name == "Local" {
		return nil, utils.Validation("tz must be an IANA timezone name")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, utils.Validation("tz must be an IANA timezone name")
	}
	return loc, nil
}

// localMidnight is the start of t's calendar day in loc. t's own day is read
// in its own location, so a UTC-parsed date keeps its year, month and day.
func localMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func validInterval(s string) bool {
	switch s {
	case "day", "week", "month":
		return true
	default:
		return false
	}
}
