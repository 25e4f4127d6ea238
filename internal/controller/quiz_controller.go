package controller

import (
	"errors"
	"io"

	"quizapp_backend/internal/model"
	"quizapp_backend/internal/service"
	"quizapp_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary 创建测验
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateQuizReq true "测验信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.CreateQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.CreateQuiz(ctx.Request.Context(), req, util.CallerID(ctx))
	if err != nil {
		respondError(ctx, err, "Error creating quiz")
		return
	}

	util.Created(ctx, gin.H{"message": "Quiz created successfully", "quiz": quiz})
}

// @Summary 获取测验列表
// @Description 只返回启用的测验，题目不含正确答案和解析，按创建时间倒序
// @Tags 测验
// @Produce json
// @Param technology query string false "技术方向"
// @Param level query string false "难度"
// @Success 200 {object} map[string]interface{}
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	filter := model.QuizFilter{
		Technology: ctx.Query("technology"),
		Level:      ctx.Query("level"),
	}

	quizzes, err := c.Service.ListQuizzes(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err, "Error fetching quizzes")
		return
	}

	util.Success(ctx, gin.H{"count": len(quizzes), "quizzes": quizzes})
}

// @Summary 获取测验详情
// @Tags 测验
// @Produce json
// @Param id path string true "测验ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.Service.GetQuiz(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Error fetching quiz")
		return
	}

	util.Success(ctx, gin.H{"quiz": quiz})
}

// @Summary 提交答案并判分
// @Description 每次提交都会累加测验的 totalAttempts；能确定身份时保存一条答题结果
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "测验ID"
// @Param body body service.SubmitQuizReq true "答案"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req service.SubmitQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.Service.SubmitAnswers(ctx.Request.Context(), ctx.Param("id"), req, util.CallerID(ctx))
	if err != nil {
		respondError(ctx, err, "Error submitting quiz")
		return
	}

	util.Success(ctx, gin.H{"results": submission})
}

// @Summary 更新测验
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path string true "测验ID"
// @Param body body service.UpdateQuizReq true "需要修改的字段"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req service.UpdateQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.UpdateQuiz(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err, "Error updating quiz")
		return
	}

	util.Success(ctx, gin.H{"message": "Quiz updated successfully", "quiz": quiz})
}

// @Summary 删除测验
// @Tags 测验
// @Produce json
// @Param id path string true "测验ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.Service.DeleteQuiz(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err, "Error deleting quiz")
		return
	}

	util.Success(ctx, gin.H{"message": "Quiz deleted successfully"})
}
