package app

import (
	"quizapp_backend/docs"
	"quizapp_backend/internal/config"
	"quizapp_backend/internal/middleware"
	"quizapp_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	// 测验：可选认证，登录用户会被记录为创建者/答题人
	quizzes := api.Group("/quizzes")
	{
		quizzes.POST("", middleware.TryAuthMiddleware(cfg), c.quiz.CreateQuiz)
		quizzes.GET("", c.quiz.ListQuizzes)
		quizzes.GET("/:id", c.quiz.GetQuiz)
		quizzes.PUT("/:id", c.quiz.UpdateQuiz)
		quizzes.DELETE("/:id", c.quiz.DeleteQuiz)
		quizzes.POST("/:id/submit", middleware.TryAuthMiddleware(cfg), c.quiz.SubmitQuiz)
	}

	// 成绩：强制认证
	results := api.Group("/results")
	results.Use(middleware.AuthMiddleware(cfg))
	{
		results.POST("", c.result.CreateResult)
		results.GET("", c.result.ListResults)
	}
}
