package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidDate      = errors.New("invalid_date")
	ErrInvalidDateRange = errors.New("invalid_date_range")
)

type Service interface {
	GetDashboard(context.Context, Request) (Payload, error)
}
