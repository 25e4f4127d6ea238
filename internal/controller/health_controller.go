package controller

import (
	"context"
	"net/http"
	"time"

	"quizapp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// Pinger 存储健康检查；内存模式下为 nil
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	DB     Pinger
	Driver string
}

func NewHealthController(db Pinger, driver string) *HealthController {
	return &HealthController{DB: db, Driver: driver}
}

// @Summary 健康检查
// @Description 检查服务与数据库状态
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} util.ErrorResponse
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if c.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.DB.PingContext(pingCtx); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": c.Driver,
		},
	})
}
