package controller

import (
	"quizapp_backend/internal/service"
	"quizapp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	Service *service.ResultService
}

func NewResultController(svc *service.ResultService) *ResultController {
	return &ResultController{Service: svc}
}

// @Summary 保存答题结果
// @Tags 答题结果
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateResultReq true "结果"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /api/results [post]
func (c *ResultController) CreateResult(ctx *gin.Context) {
	callerID := util.CallerID(ctx)
	if callerID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateResultReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.CreateResult(ctx.Request.Context(), req, callerID)
	if err != nil {
		respondError(ctx, err, "Server Error")
		return
	}

	util.Created(ctx, gin.H{"message": "Result Created", "result": result})
}

// @Summary 我的答题结果
// @Tags 答题结果
// @Produce json
// @Security BearerAuth
// @Param technology query string false "技术方向，all 表示全部"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} util.ErrorResponse
// @Router /api/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	results, err := c.Service.ListResults(ctx.Request.Context(), ctx.Query("technology"), util.CallerID(ctx))
	if err != nil {
		respondError(ctx, err, "Server Error")
		return
	}

	util.Success(ctx, gin.H{"results": results})
}
