package dto

import (
	"time"

	"argent_backend/internal/models"
)

// CreateJobRequest - создание вакансии
type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Type        string   `json:"type" binding:"required,job-type"`
	Level       string   `json:"level" binding:"required,job-level"`
	WorkPlace   string   `json:"workPlace" binding:"required,job-workplace"`
	Location    string   `json:"location" binding:"required"`
	Salary      string   `json:"salary" binding:"required"`
	Categories  []string `json:"category" binding:"required,min=1"`
}

// UpdateJobRequest - частичное обновление вакансии владельцем
type UpdateJobRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Type        *string  `json:"type" binding:"omitempty,job-type"`
	Level       *string  `json:"level" binding:"omitempty,job-level"`
	WorkPlace   *string  `json:"workPlace" binding:"omitempty,job-workplace"`
	Location    *string  `json:"location"`
	Salary      *string  `json:"salary"`
	Categories  []string `json:"category"`
	Closed      *bool    `json:"closed"`
}

// JobListQuery - параметры списка вакансий
type JobListQuery struct {
	Search     string `form:"search"`
	Location   string `form:"location"`
	StartIndex int    `form:"startIndex" binding:"omitempty,min=0"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
}

// JobResponse - вакансия в ответах API
type JobResponse struct {
	ID          string    `json:"_id"`
	AccountID   string    `json:"userId"`
	Username    string    `json:"username"`
	EmailUser   string    `json:"emailUser"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Level       string    `json:"level"`
	WorkPlace   string    `json:"workPlace"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Categories  []string  `json:"category"`
	Closed      bool      `json:"closed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// JobListResponse - страница вакансий с общим количеством
type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int64         `json:"total"`
}

// ApplicantResponse - отклик вместе с данными соискателя (вкладка appliciants)
type ApplicantResponse struct {
	ApplicationID string                   `json:"applicationId"`
	Status        models.ApplicationStatus `json:"status"`
	Message       string                   `json:"message"`
	AppliedAt     time.Time                `json:"appliedAt"`
	Applicant     UserResponse             `json:"applicant"`
}

// AppliedJobResponse - вакансия вместе со статусом отклика соискателя
type AppliedJobResponse struct {
	Job     JobResponse              `json:"job"`
	Status  models.ApplicationStatus `json:"status"`
	Message string                   `json:"message"`
}
