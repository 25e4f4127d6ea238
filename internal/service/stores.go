package service

import (
	"context"

	"quizapp_backend/internal/model"
)

// QuizStore 由 repository.QuizRepository（MySQL）和 memory.QuizStore 实现。
// 找不到文档时返回 gorm.ErrRecordNotFound
type QuizStore interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	FindByID(ctx context.Context, id string) (*model.Quiz, error)
	ListActive(ctx context.Context, filter model.QuizFilter) ([]model.Quiz, error)
	Update(ctx context.Context, quiz *model.Quiz, columns ...string) error
	Delete(ctx context.Context, id string) error
	IncrementAttempts(ctx context.Context, id string) error
}

type ResultStore interface {
	Create(ctx context.Context, result *model.Result) error
	List(ctx context.Context, filter model.ResultFilter) ([]model.Result, error)
}
