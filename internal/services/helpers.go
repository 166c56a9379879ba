package services

import (
	"time"

	"runmind/internal/models/request_models"
	"runmind/internal/repositories"
	"runmind/pkg/utils"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

func parseDateRange(q request_models.DateRangeQuery) (repositories.DateRange, error) {
	from, err := utils.ParseOptionalDate(q.From)
	if err != nil {
		return repositories.DateRange{}, utils.Validation("from must be a date in YYYY-MM-DD format")
	}
	to, err := utils.ParseOptionalDate(q.To)
	if err != nil {
		return repositories.DateRange{}, utils.Validation("to must be a date in YYYY-MM-DD format")
	}
	if from != nil && to != nil && to.Before(*from) {
		return repositories.DateRange{}, utils.Validation("to must not be before from")
	}
	return repositories.DateRange{From: from, To: to}, nil
}

func parseRequiredDate(field, value string) (time.Time, error) {
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, utils.Validation("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}
