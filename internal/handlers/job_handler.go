package handlers

import (
	"net/http"

	"argent_backend/internal/middleware"
	"argent_backend/internal/services"
	"argent_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, applicationService services.ApplicationService) *JobHandler {
	return &JobHandler{
		BaseHandler:        base,
		jobService:         jobService,
		applicationService: applicationService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup, mw *middleware.AuthMiddleware) {
	authed := rg.Group("", mw.RequireUser())
	authed.POST("", h.Create)
	authed.GET("", h.List)
	authed.GET("/nearly", h.Nearly)
	authed.GET("/user/:userId", h.GetByUser)
	authed.GET("/check-apply/:jobId", h.CheckApplied)
	authed.GET("/applications/:userId", h.ListApplications)
	authed.POST("/apply/:jobId", h.Apply)
	authed.POST("/approve/:id/:userId/:jobId", h.Approve)
	authed.POST("/reject/:id/:userId/:jobId", h.Reject)
	authed.GET("/:jobId", h.GetByID)
	authed.GET("/:jobId/appliciants", h.ListApplicants)
	authed.PATCH("/:jobId", h.Update)
	authed.DELETE("/:jobId", h.Delete)
}

// Create - POST /job
func (h *JobHandler) Create(c *gin.Context) {
	account, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(account.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, "Job created", dto.ToJobResponse(job))
}

// List - GET /job. Страница вакансий, новые первыми.
func (h *JobHandler) List(c *gin.Context) {
	var q dto.JobListQuery
	if !h.BindAndValidateQuery(c, &q) {
		return
	}

	jobs, total, err := h.jobService.List(q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", dto.JobListResponse{
		Jobs:  dto.ToJobResponses(jobs),
		Total: total,
	})
}

// Nearly - GET /job/nearly. Вакансии в городе запрашивающего.
func (h *JobHandler) Nearly(c *gin.Context) {
	account, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.Nearly(account.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", dto.ToJobResponses(jobs))
}

// GetByID - GET /job/:jobId. Вместе с аватаром владельца для карточки.
func (h *JobHandler) GetByID(c *gin.Context) {
	job, owner, err := h.jobService.GetByID(c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	ownerAvatar := ""
	if owner != nil {
		ownerAvatar = owner.Avatar
	}
	h.Success(c, http.StatusOK, "success", gin.H{
		"job":         dto.ToJobResponse(job),
		"ownerAvatar": ownerAvatar,
	})
}

// GetByUser - GET /job/user/:userId
func (h *JobHandler) GetByUser(c *gin.Context) {
	jobs, err := h.jobService.GetByUser(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", dto.ToJobResponses(jobs))
}

// Update - PATCH /job/:jobId. Только владелец.
func (h *JobHandler) Update(c *gin.Context) {
	account, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(account.ID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Job updated", dto.ToJobResponse(job))
}

// Delete - DELETE /job/:jobId. Только владелец, отклики уходят каскадом.
func (h *JobHandler) Delete(c *gin.Context) {
	account, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(account.ID, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "Job deleted", nil)
}

// Apply - POST /job/apply/:jobId. Переключатель отклика.
func (h *JobHandler) Apply(c *gin.Context) {
	account, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	applied, err := h.applicationService.Toggle(account.ID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if applied {
		h.Success(c, http.StatusOK, "success apply", true)
		return
	}
	h.Success(c, http.StatusOK, "success unapply", false)
}

// CheckApplied - GET /job/check-apply/:jobId. Статус отклика, сентинел
// owner для владельца или false, если отклика нет.
func (h *JobHandler) CheckApplied(c *gin.Context) {
	account, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	status, err := h.applicationService.CheckApplied(account.ID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var data interface{} = status
	if status == "" {
		data = false
	}
	h.Success(c, http.StatusOK, "success", data)
}

// ListApplicants - GET /job/:jobId/appliciants?pane=. Вкладка откликов
// владельца, по умолчанию pending.
func (h *JobHandler) ListApplicants(c *gin.Context) {
	account, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	applicants, err := h.applicationService.ListApplicants(account.ID, c.Param("jobId"), c.Query("pane"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", applicants)
}

// Approve - POST /job/approve/:id/:userId/:jobId
func (h *JobHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject - POST /job/reject/:id/:userId/:jobId
func (h *JobHandler) Reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *JobHandler) decide(c *gin.Context, approve bool) {
	account, ok := h.CurrentAccount(c)
	if !ok {
		return
	}

	// Сообщение владельца опционально, тело может отсутствовать вовсе.
	var body struct {
		Message string `json:"message"`
	}
	c.ShouldBindJSON(&body)

	err := h.applicationService.Decide(account.ID, c.Param("id"), c.Param("userId"), c.Param("jobId"), approve, body.Message)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if approve {
		h.Success(c, http.StatusOK, "Appliciant approved", nil)
		return
	}
	h.Success(c, http.StatusOK, "Appliciant rejected", nil)
}

// ListApplications - GET /job/applications/:userId. Отклики пользователя
// вместе с вакансиями.
func (h *JobHandler) ListApplications(c *gin.Context) {
	applications, err := h.applicationService.ListApplications(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, "success", applications)
}
