package domain

import "context"

type Repository interface {
	ListDestinations(ctx context.Context) ([]Option, error)
	ListCarriers(ctx context.Context) ([]Option, error)
	ListModes(ctx context.Context) ([]Option, error)
	ListStatuses(ctx context.Context) ([]Option, error)
}
