package dto

import "time"

// CreateAdminRequest - создание администратора
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserListQuery - постраничный список пользователей в админке
type UserListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// DeleteUsersRequest - массовое удаление пользователей
type DeleteUsersRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// DeleteReportsRequest - массовое удаление жалоб
type DeleteReportsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ReportResponse - жалоба в ответах админки
type ReportResponse struct {
	ID          string    `json:"_id"`
	ReportedID  string    `json:"userReportedId"`
	ReporterID  string    `json:"userReportById"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserListResponse - страница пользователей с общим количеством
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

// ReportListResponse - страница жалоб с общим количеством
type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
}

// TotalData - тело data для счетчиков
type TotalData struct {
	Total int64 `json:"total"`
}
