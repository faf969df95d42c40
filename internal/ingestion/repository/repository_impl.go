package repository

import (
	"context"

	"github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.RunRepository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, run *domain.IngestionRun) error {
	if run.Metadata == nil {
		run.Metadata = datatypes.JSONMap{}
	}
	return db.WithContext(ctx).Create(run).Error
}

func (r *repo) ListRecent(ctx context.Context, db *gorm.DB, limit int) ([]domain.IngestionRun, error) {
	var runs []domain.IngestionRun
	err := db.WithContext(ctx).
		Model(&domain.IngestionRun{}).
		Order("started_at desc, id desc").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
