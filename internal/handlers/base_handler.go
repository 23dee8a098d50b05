package handlers

import (
	"strconv"

	"argent_backend/internal/logger"
	"argent_backend/internal/middleware"
	"argent_backend/internal/models"
	"argent_backend/internal/validator"
	"argent_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Envelope - конверт успешного ответа. Форма {code, message, data} -
// внешний контракт, фронт разбирает ее как есть.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type BaseHandler struct {
	validator *validator.Validator
	secure    bool
}

// NewBaseHandler создает базовый обработчик. secure управляет флагами
// auth-кук и берется из Config.IsProduction().
func NewBaseHandler(v *validator.Validator, secure bool) *BaseHandler {
	return &BaseHandler{
		validator: v,
		secure:    secure,
	}
}

// Secure - флаг Secure/SameSite=None для auth-кук.
func (h *BaseHandler) Secure() bool {
	return h.secure
}

// Success пишет успешный ответ в конверте {code, message, data}.
func (h *BaseHandler) Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Code: status, Message: message, Data: data})
}

func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.runValidation(c, obj)
}

func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	return h.runValidation(c, obj)
}

func (h *BaseHandler) runValidation(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// CurrentAccount достает аккаунт, положенный auth-middleware.
// Отсутствие аккаунта на защищенном маршруте - ошибка конфигурации роутера.
func (h *BaseHandler) CurrentAccount(c *gin.Context) (*models.Account, bool) {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "account missing in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return nil, false
	}
	return account, true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
