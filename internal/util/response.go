package util

import (
	"net/http"

	"quizapp_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 统一失败响应结构，成功响应按操作使用命名字段（quiz、quizzes、result、results）
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func respond(c *gin.Context, code int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(code, payload)
}

func Success(c *gin.Context, payload gin.H) {
	respond(c, http.StatusOK, payload)
}

func Created(c *gin.Context, payload gin.H) {
	respond(c, http.StatusCreated, payload)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Success: false,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Not authorized")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// ServerError 记录日志并把底层错误信息附加在 error 字段
func ServerError(c *gin.Context, message string, err error) {
	logger.Log.Error(message,
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}
