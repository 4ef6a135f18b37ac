// Package routesはroutingを行います。
package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"go-task-manager/backend/internal/config"
	"go-task-manager/backend/internal/handlers"
	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/repositories"
	"go-task-manager/backend/internal/response"
	"go-task-manager/backend/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(cfg *config.Config, db *sqlx.DB, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}

	// CORS対策
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"}
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}

	r.Use(
		GinZapMiddleware(logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
			handlers.Abort(c, response.InternalError(response.MsgInternalError))
		}),
		cors.New(corsConfig),
		LanguageMiddleware(),
	)

	// ユニットオブワーク
	uow := repositories.NewUnitOfWork(db)

	// サービス
	jwtService := services.NewJWTService(cfg.JWT)
	taskService := services.NewTaskService(uow, logger)
	categoryService := services.NewCategoryService(uow, logger)
	userService := services.NewUserService(uow, jwtService, logger)

	// ハンドラー
	taskHandler := handlers.NewTaskHandler(taskService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(db, cfg.AppName, cfg.AppVersion)

	// ルーティング
	api := r.Group("/api")
	api.GET("/health", healthHandler.CheckHealth)
	api.POST("/users/register", userHandler.RegisterHandler)
	api.POST("/users/login", userHandler.LoginHandler)

	authorized := api.Group("/")
	authorized.Use(AuthMiddleware(jwtService))
	owner := RequireRole(models.RoleOwner)
	{
		authorized.GET("/users/profile", userHandler.ProfileHandler)
		authorized.GET("/users", owner, userHandler.GetUsersHandler)
		authorized.GET("/users/:id", owner, userHandler.GetUserByIDHandler)

		authorized.GET("/tasks", taskHandler.GetTasksHandler)
		authorized.GET("/tasks/:id", taskHandler.GetTaskByIDHandler)
		authorized.POST("/tasks", owner, taskHandler.CreateTaskHandler)
		authorized.PUT("/tasks/:id", owner, taskHandler.UpdateTaskHandler)
		authorized.DELETE("/tasks/:id", owner, taskHandler.DeleteTaskHandler)
		authorized.PATCH("/tasks/:id/complete", owner, taskHandler.ToggleCompleteHandler)

		authorized.GET("/categories", categoryHandler.GetCategoriesHandler)
		authorized.GET("/categories/:id", categoryHandler.GetCategoryByIDHandler)
		authorized.POST("/categories", owner, categoryHandler.CreateCategoryHandler)
		authorized.PUT("/categories/:id", owner, categoryHandler.UpdateCategoryHandler)
		authorized.DELETE("/categories/:id", owner, categoryHandler.DeleteCategoryHandler)
	}

	return r
}
