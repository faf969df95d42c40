package domain

import "errors"

var (
	ErrNotFound           = errors.New("not_found")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidCarrier     = errors.New("invalid_carrier")
	ErrInvalidDestination = errors.New("invalid_destination")
	ErrInvalidMode        = errors.New("invalid_mode")
	ErrInvalidRow         = errors.New("invalid_row")
)
