package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - основная структура ошибки приложения.
// Сериализуется клиенту как {status, message} (+ data при наличии).
type AppError struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Details interface{} `json:"data,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s (%v)", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New - базовый конструктор
func New(status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
	}
}

// Wrap - оборачивает существующую ошибку в AppError
func Wrap(err error, status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- ОБЩИЕ ХЕЛПЕРЫ ---

// InternalError оборачивает неизвестную системную ошибку
func InternalError(err error) *AppError {
	return Wrap(err, http.StatusInternalServerError, "Internal Server Error")
}

// ValidationError создает ошибку валидации с деталями
func ValidationError(details interface{}) *AppError {
	return New(http.StatusBadRequest, "Validation failed").WithDetails(details)
}

// NewBadRequestError создает ошибку 400
func NewBadRequestError(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NewUnauthorizedError создает ошибку 401
func NewUnauthorizedError(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}

// NewNotFoundError создает ошибку 404
func NewNotFoundError(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// NewConflictError создает ошибку 409
func NewConflictError(message string) *AppError {
	return New(http.StatusConflict, message)
}
