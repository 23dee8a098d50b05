package dto

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest - запрос ссылки на сброс пароля
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordConfirm - новый пароль; токен и id аккаунта приходят в пути
type ResetPasswordConfirm struct {
	Password string `json:"password" binding:"required,min=8"`
}

// AccountIDData - тело data для login/refresh
type AccountIDData struct {
	AccountID string `json:"accountId"`
}
