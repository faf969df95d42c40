package domain

import (
	"context"

	"gorm.io/gorm"
)

type RunRepository interface {
	Insert(ctx context.Context, db *gorm.DB, run *IngestionRun) error
	ListRecent(ctx context.Context, db *gorm.DB, limit int) ([]IngestionRun, error)
}
