package dto

import (
	"time"

	"argent_backend/internal/models"
)

// SignupRequest - регистрация пользователя. Приходит multipart-формой
// вместе с файлом аватара, поэтому теги form, а не json.
type SignupRequest struct {
	Username    string `form:"username" binding:"required,min=3"`
	Email       string `form:"email" binding:"required,email"`
	Password    string `form:"password" binding:"required,min=8"`
	FullName    string `form:"fullName" binding:"required"`
	Gender      string `form:"gender" binding:"required,account-gender"`
	PhoneNumber string `form:"phoneNumber" binding:"required"`
	Birthday    string `form:"birthday" binding:"required"` // RFC3339 или YYYY-MM-DD
	Street      string `form:"street" binding:"required"`
	City        string `form:"city" binding:"required"`
	Country     string `form:"country" binding:"required"`
	ZipCode     string `form:"zipCode" binding:"required"`
}

// UpdateUserRequest - частичное обновление профиля. nil-поля не трогаем.
type UpdateUserRequest struct {
	Username    *string  `json:"username" binding:"omitempty,min=3"`
	Email       *string  `json:"email" binding:"omitempty,email"`
	FullName    *string  `json:"fullName"`
	Gender      *string  `json:"gender" binding:"omitempty,account-gender"`
	PhoneNumber *string  `json:"phoneNumber"`
	Birthday    *string  `json:"birthday"`
	About       *string  `json:"about"`
	Street      *string  `json:"street"`
	City        *string  `json:"city"`
	Country     *string  `json:"country"`
	ZipCode     *string  `json:"zipCode"`
	Skills      []string `json:"skills"`
}

// ReportRequest - жалоба на пользователя
type ReportRequest struct {
	Description string `json:"description" binding:"required"`
}

// UserResponse - публичное представление пользователя
type UserResponse struct {
	ID          string               `json:"_id"`
	Username    string               `json:"username"`
	Email       string               `json:"email"`
	FullName    string               `json:"fullName"`
	Gender      models.Gender        `json:"gender"`
	PhoneNumber string               `json:"phoneNumber"`
	Birthday    *time.Time           `json:"birthday"`
	About       string               `json:"about"`
	Address     models.Address       `json:"address"`
	Avatar      string               `json:"avatar"`
	Banner      string               `json:"banner"`
	CV          string               `json:"cv"`
	Skills      []string             `json:"skills"`
	Status      models.AccountStatus `json:"status"`
	Verified    bool                 `json:"verified"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// CVStatusData - тело data ответа apply при отсутствии резюме
type CVStatusData struct {
	CV      string `json:"cv"`
	IsExist bool   `json:"isExist"`
}
