package handlers

import (
	"net/http"
	"time"

	"argent_backend/internal/middleware"
	"argent_backend/internal/services"
	"argent_backend/internal/services/dto"
	"argent_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, mw *middleware.AuthMiddleware) {
	// Публичные маршруты: регистрация и переход по ссылке из письма.
	rg.POST("", h.Signup)
	rg.GET("/verify/:userId/:token", h.VerifyEmail)

	authed := rg.Group("", mw.RequireUser())
	authed.GET("", h.Current)
	authed.GET("/:userId", h.GetByID)
	authed.PATCH("/:userId", h.Update)
	authed.PUT("/upload/:userId", h.UploadImage)
	authed.PUT("/uploadfile/:userId", h.UploadCV)
	// Повторная отправка письма ограничена, чтобы не заспамить почту.
	authed.POST("/send-verify/:userId",
		middleware.RateLimit("to many request please wait for 15 minutes", 5, 15*time.Minute),
		h.SendVerification)
	authed.POST("/report/:userId", h.Report)
	authed.DELETE("/:userId", h.Delete)
}

// Signup - POST /user. Multipart-форма с обязательным файлом avatar.
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Please upload your avatar"))
		return
	}

	account, err := h.userService.Signup(&req, avatar)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, "Verification email sent", dto.ToUserResponse(account))
}

// Current - GET /user. Текущий аккаунт из middleware.
func (h *UserHandler) Current(c *gin.Context) {
	account, ok := h.CurrentAccount(c)
	if !ok {
		return
	}
	h.Success(c, http.StatusOK, "success", dto.ToUserResponse(account))
}

// GetByID - GET /user/:userId
func (h *UserHandler) GetByID(c *gin.Context) {
	account, err := h.userService.GetByID(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", dto.ToUserResponse(account))
}

// Update - PATCH /user/:userId. Только свой профиль.
func (h *UserHandler) Update(c *gin.Context) {
	requester, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	account, err := h.userService.Update(requester.ID, c.Param("userId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Profile updated", dto.ToUserResponse(account))
}

// UploadImage - PUT /user/upload/:userId?type=avatar|banner.
// Файл всегда приходит в поле image, type выбирает назначение.
func (h *UserHandler) UploadImage(c *gin.Context) {
	requester, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	imageType := c.DefaultQuery("type", "avatar")
	file, err := c.FormFile("image")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No file uploaded"))
		return
	}

	saved, err := h.userService.UploadImage(requester.ID, c.Param("userId"), imageType, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "File uploaded", saved)
}

// UploadCV - PUT /user/uploadfile/:userId. Поле cv, только PDF.
func (h *UserHandler) UploadCV(c *gin.Context) {
	requester, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	file, err := c.FormFile("cv")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No file uploaded"))
		return
	}

	saved, err := h.userService.UploadCV(requester.ID, c.Param("userId"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "File uploaded", saved)
}

// SendVerification - POST /user/send-verify/:userId
func (h *UserHandler) SendVerification(c *gin.Context) {
	requester, ok := h.CurrentAccount(c)
	if !ok {
		return
	}
	if requester.ID != c.Param("userId") {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return
	}

	if err := h.userService.SendVerification(requester.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Verification email sent", nil)
}

// VerifyEmail - GET /user/verify/:userId/:token. Публичный переход
// по ссылке из письма.
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	if err := h.userService.VerifyEmail(c.Param("userId"), c.Param("token")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Email verified", nil)
}

// Report - POST /user/report/:userId
func (h *UserHandler) Report(c *gin.Context) {
	requester, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	var req dto.ReportRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.Report(requester.ID, c.Param("userId"), req.Description); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, "Report submitted", nil)
}

// Delete - DELETE /user/:userId. Самоудаление с каскадом.
func (h *UserHandler) Delete(c *gin.Context) {
	requester, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(requester.ID, c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Account deleted", nil)
}
