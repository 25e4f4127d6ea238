package controller

import (
	"errors"

	"quizapp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层错误映射为状态码；未识别的错误按存储错误处理（500）
func respondError(ctx *gin.Context, err error, serverMessage string) {
	var vErr *util.ValidationError
	switch {
	case errors.As(err, &vErr):
		util.BadRequest(ctx, vErr.Message)
	case errors.Is(err, util.ErrUnauthorized):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx, "Quiz not found")
	default:
		util.ServerError(ctx, serverMessage, err)
	}
}
