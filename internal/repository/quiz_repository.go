package repository

import (
	"context"

	"quizapp_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Create(quiz).Error
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.DB.WithContext(ctx).First(&quiz, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListActive(ctx context.Context, filter model.QuizFilter) ([]model.Quiz, error) {
	query := r.DB.WithContext(ctx).Where("is_active = ?", true)
	if filter.Technology != "" {
		query = query.Where("technology = ?", filter.Technology)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}

	var quizzes []model.Quiz
	err := query.Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

// Update 只写 columns 中列出的列，避免覆盖并发提交累加的 total_attempts
func (r *QuizRepository) Update(ctx context.Context, quiz *model.Quiz, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	selected := append(append([]string(nil), columns...), "updated_at")
	return r.DB.WithContext(ctx).Model(quiz).Select(selected).Updates(quiz).Error
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Delete(&model.Quiz{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementAttempts 单行原子自增，不触发钩子也不修改 updated_at
func (r *QuizRepository) IncrementAttempts(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Model(&model.Quiz{}).
		Where("id = ?", id).
		UpdateColumn("total_attempts", gorm.Expr("total_attempts + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
