package handlers

import (
	"net/http"

	"argent_backend/internal/auth"
	"argent_backend/internal/middleware"
	"argent_backend/internal/models"
	"argent_backend/internal/services"
	"argent_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler - вся админка: собственная сессия на паре кук
// adminAuth/adminRefreshToken, управление пользователями и жалобами.
type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
	authService  services.AuthService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, authService services.AuthService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
		authService:  authService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, mw *middleware.AuthMiddleware) {
	rg.POST("", h.Create)
	rg.POST("/login", h.Login)
	rg.GET("/refresh", h.Refresh)
	rg.POST("/logout", h.Logout)

	authed := rg.Group("", mw.RequireAdmin())
	authed.GET("/user", h.ListUsers)
	authed.GET("/user/total", h.TotalUsers)
	authed.PATCH("/user/banned/:userId", h.ToggleBan)
	authed.DELETE("/user/delete", h.DeleteUsers)
	authed.GET("/user/report", h.ListReports)
	authed.GET("/user/report/total", h.TotalReports)
	authed.DELETE("/user/report/delete", h.DeleteReports)
	authed.GET("/user/report/:reportId", h.GetReport)
	authed.DELETE("/user/report/:reportId", h.DeleteReport)
	authed.DELETE("/user/:userId", h.DeleteUser)
	authed.GET("/:adminId", h.GetByID)
}

// Create - POST /admin
func (h *AdminHandler) Create(c *gin.Context) {
	var req dto.CreateAdminRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	account, err := h.adminService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, "Admin created", dto.AccountIDData{AccountID: account.ID})
}

// Login - POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	account, pair, err := h.authService.Login(req.Email, req.Password, models.AccountKindAdmin)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	auth.SetSessionCookies(c, models.AccountKindAdmin, pair.Access, pair.Refresh, h.Secure())
	h.Success(c, http.StatusOK, "Logged in", dto.AccountIDData{AccountID: account.ID})
}

// Refresh - GET /admin/refresh
func (h *AdminHandler) Refresh(c *gin.Context) {
	accessName, refreshName := auth.CookieNames(models.AccountKindAdmin)
	accessToken, _ := c.Cookie(accessName)
	refreshToken, _ := c.Cookie(refreshName)

	accountID, pair, err := h.authService.Refresh(accessToken, refreshToken, models.AccountKindAdmin)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if pair != nil {
		auth.SetSessionCookies(c, models.AccountKindAdmin, pair.Access, pair.Refresh, h.Secure())
	}
	h.Success(c, http.StatusOK, "Token refreshed", dto.AccountIDData{AccountID: accountID})
}

// Logout - POST /admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookies(c, models.AccountKindAdmin, h.Secure())
	h.Success(c, http.StatusOK, "Logged out", nil)
}

// GetByID - GET /admin/:adminId
func (h *AdminHandler) GetByID(c *gin.Context) {
	account, err := h.adminService.GetByID(c.Param("adminId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", dto.ToUserResponse(account))
}

// ListUsers - GET /admin/user?page=&limit=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.UserListQuery
	if !h.BindAndValidateQuery(c, &q) {
		return
	}

	users, total, err := h.adminService.ListUsers(q.Page, q.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.ToUserResponse(&users[i]))
	}
	h.Success(c, http.StatusOK, "success", dto.UserListResponse{Users: out, Total: total})
}

// TotalUsers - GET /admin/user/total
func (h *AdminHandler) TotalUsers(c *gin.Context) {
	total, err := h.adminService.TotalUsers()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", dto.TotalData{Total: total})
}

// ToggleBan - PATCH /admin/user/banned/:userId
func (h *AdminHandler) ToggleBan(c *gin.Context) {
	status, err := h.adminService.ToggleBan(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "User status updated", status)
}

// DeleteUser - DELETE /admin/user/:userId
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeleteUser(c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "User deleted", nil)
}

// DeleteUsers - DELETE /admin/user/delete. Массовое удаление по списку id.
func (h *AdminHandler) DeleteUsers(c *gin.Context) {
	var req dto.DeleteUsersRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.adminService.DeleteUsers(req.IDs); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Users deleted", nil)
}

// ListReports - GET /admin/user/report?page=&limit=
func (h *AdminHandler) ListReports(c *gin.Context) {
	var q dto.UserListQuery
	if !h.BindAndValidateQuery(c, &q) {
		return
	}

	reports, total, err := h.adminService.ListReports(q.Page, q.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, dto.ToReportResponse(&reports[i]))
	}
	h.Success(c, http.StatusOK, "success", dto.ReportListResponse{Reports: out, Total: total})
}

// TotalReports - GET /admin/user/report/total
func (h *AdminHandler) TotalReports(c *gin.Context) {
	total, err := h.adminService.TotalReports()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", dto.TotalData{Total: total})
}

// GetReport - GET /admin/user/report/:reportId
func (h *AdminHandler) GetReport(c *gin.Context) {
	report, err := h.adminService.GetReport(c.Param("reportId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", dto.ToReportResponse(report))
}

// DeleteReport - DELETE /admin/user/report/:reportId
func (h *AdminHandler) DeleteReport(c *gin.Context) {
	if err := h.adminService.DeleteReport(c.Param("reportId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Report deleted", nil)
}

// DeleteReports - DELETE /admin/user/report/delete
func (h *AdminHandler) DeleteReports(c *gin.Context) {
	var req dto.DeleteReportsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.adminService.DeleteReports(req.IDs); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Reports deleted", nil)
}
