package repository

import (
	"context"

	"quizapp_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(ctx context.Context, result *model.Result) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

func (r *ResultRepository) List(ctx context.Context, filter model.ResultFilter) ([]model.Result, error) {
	query := r.DB.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.Technology != "" {
		query = query.Where("technology = ?", filter.Technology)
	}

	var results []model.Result
	err := query.Order("created_at desc").Find(&results).Error
	return results, err
}
