package handlers

import (
	"net/http"

	"argent_backend/internal/auth"
	"argent_backend/internal/models"
	"argent_backend/internal/services"
	"argent_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AuthHandler обслуживает пользовательские сессии. Админская копия тех же
// маршрутов живет в AdminHandler со своей парой кук.
type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.GET("/refresh", h.Refresh)
	rg.POST("/logout", h.Logout)
	rg.POST("/reset-password", h.RequestPasswordReset)
	rg.GET("/reset-password/check/:token", h.CheckResetToken)
	rg.POST("/reset-password/:token", h.ConfirmPasswordReset)
}

// Login - POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	account, pair, err := h.authService.Login(req.Email, req.Password, models.AccountKindUser)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	auth.SetSessionCookies(c, models.AccountKindUser, pair.Access, pair.Refresh, h.Secure())
	h.Success(c, http.StatusOK, "Logged in", dto.AccountIDData{AccountID: account.ID})
}

// Refresh - GET /auth/refresh. Живая access-кука дает короткий ответ,
// иначе по refresh-куке ротируются оба токена.
func (h *AuthHandler) Refresh(c *gin.Context) {
	accessName, refreshName := auth.CookieNames(models.AccountKindUser)
	accessToken, _ := c.Cookie(accessName)
	refreshToken, _ := c.Cookie(refreshName)

	accountID, pair, err := h.authService.Refresh(accessToken, refreshToken, models.AccountKindUser)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if pair != nil {
		auth.SetSessionCookies(c, models.AccountKindUser, pair.Access, pair.Refresh, h.Secure())
	}
	h.Success(c, http.StatusOK, "Token refreshed", dto.AccountIDData{AccountID: accountID})
}

// Logout - POST /auth/logout. Идемпотентен: чистит куки и отвечает 200
// независимо от состояния сессии.
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookies(c, models.AccountKindUser, h.Secure())
	h.Success(c, http.StatusOK, "Logged out", nil)
}

// RequestPasswordReset - POST /auth/reset-password
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, "Reset password email sent", nil)
}

// CheckResetToken - GET /auth/reset-password/check/:token. Проба ссылки
// перед показом формы нового пароля.
func (h *AuthHandler) CheckResetToken(c *gin.Context) {
	if err := h.authService.CheckResetToken(c.Param("token")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Valid link", true)
}

// ConfirmPasswordReset - POST /auth/reset-password/:token
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.ResetPasswordConfirm
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Param("token"), req.Password); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Password updated", nil)
}
