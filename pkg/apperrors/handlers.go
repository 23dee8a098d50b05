package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// HandleError - единая точка сериализации ошибок для Gin.
// Любая не-AppError ошибка превращается в 500 без утечки деталей клиенту.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.Status >= 500 {
		slog.Error("server error", "error", appErr.Error(), "path", c.Request.URL.Path)
		// Стек и исходная ошибка остаются только в логах
		appErr = New(appErr.Status, appErr.Message)
	}

	c.AbortWithStatusJSON(appErr.Status, appErr)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
