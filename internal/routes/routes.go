package routes

import (
	"argent_backend/internal/handlers"
	"argent_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты. Группы повторяют
// поверхности API: /auth, /user, /job, /admin.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW *middleware.AuthMiddleware,
	filesBasePath string,
) {
	// Загруженные файлы (аватары, баннеры, резюме) раздаются как статика.
	ginRouter.Static("/files", filesBasePath)

	appHandlers.AuthHandler.RegisterRoutes(ginRouter.Group("/auth"))
	appHandlers.UserHandler.RegisterRoutes(ginRouter.Group("/user"), authMW)
	appHandlers.JobHandler.RegisterRoutes(ginRouter.Group("/job"), authMW)
	appHandlers.AdminHandler.RegisterRoutes(ginRouter.Group("/admin"), authMW)
}
