package handlers

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-playground/validator/v10"

	"olist-dashboard/internal/errors"
	"olist-dashboard/internal/models"
	"olist-dashboard/internal/services"
)

var validate = validator.New()

// rangeQuery is a requested date range as sent by the client. Empty dates
// default to the dataset span.
type rangeQuery struct {
	Start string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

func (q rangeQuery) resolve(a *services.Analytics) (models.DateRange, error) {
	if err := validate.Struct(q); err != nil {
		return models.DateRange{}, errors.ValidationWrap(err, "dates must be formatted YYYY-MM-DD")
	}

	var start, end time.Time
	if q.Start != "" {
		start, _ = time.Parse(time.DateOnly, q.Start)
	}
	if q.End != "" {
		end, _ = time.Parse(time.DateOnly, q.End)
	}

	r, err := a.ResolveRange(start, end)
	if err != nil {
		return models.DateRange{}, appError(err)
	}
	return r, nil
}

// appError maps service errors onto HTTP error codes.
func appError(err error) error {
	switch {
	case stderrors.Is(err, services.ErrInvalidRange):
		return errors.ValidationWrap(err, "start date must not be after end date")
	case stderrors.Is(err, services.ErrNoDataset):
		return errors.Wrap(err, errors.CodeServiceUnavail, "no dataset loaded")
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Timeout(err, "report computation timed out")
	default:
		return errors.InternalWrap(err, "failed to compute report")
	}
}
