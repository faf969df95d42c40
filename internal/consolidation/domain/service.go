package domain

import (
	"context"
	"errors"
)

var ErrInvalidMinGroupSize = errors.New("invalid_min_group_size")

type Service interface {
	GetGroups(context.Context, Request) (Response, error)
}
