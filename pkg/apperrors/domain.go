package apperrors

import "net/http"

/*
Предопределенные доменные ошибки. Тексты сообщений являются частью
внешнего контракта API и не должны меняться без согласования с фронтом.
*/

// --- Auth & Session ---

// ErrEmailNotFound - email не зарегистрирован (логин).
var ErrEmailNotFound = New(http.StatusNotFound, "Email was not found")

// ErrPasswordMismatch - неверный пароль.
var ErrPasswordMismatch = New(http.StatusConflict, "Password is not matching")

// ErrAccountBanned - аккаунт заблокирован. Middleware дополнительно
// сбрасывает обе auth-куки.
var ErrAccountBanned = New(http.StatusConflict, "account has been banned")

// ErrAccountNotFound - аккаунт отсутствует (refresh по токену удаленного
// пользователя отвечает 409, как в исходном контракте).
var ErrAccountNotFound = New(http.StatusConflict, "User not found")

// ErrTokenMissing - auth-кука отсутствует.
var ErrTokenMissing = New(http.StatusNotFound, "Authentication token missing")

// ErrWrongToken - подпись/срок действия токена не прошли проверку.
var ErrWrongToken = New(http.StatusUnauthorized, "Wrong authentication token")

// ErrRefreshMissing - refresh-кука отсутствует.
var ErrRefreshMissing = New(http.StatusUnauthorized, "Unauthorized")

// ErrSessionStale - токен цел, но аккаунта за ним уже нет.
var ErrSessionStale = New(http.StatusUnauthorized, "Unauthorized")

// --- Accounts ---

var ErrUserNotFound = New(http.StatusNotFound, "User not found")

var ErrEmailAlreadyExists = New(http.StatusConflict, "Email already exists")

var ErrUsernameAlreadyExists = New(http.StatusConflict, "Username already exists")

var ErrAlreadyVerified = New(http.StatusConflict, "User already verified")

var ErrNotVerified = New(http.StatusConflict, "User not verified")

// --- Verification & reset password ---

var ErrResetAlreadyRequested = New(http.StatusConflict, "User already requested check your email")

// ErrLinkExpired покрывает обе одноразовые ссылки: подтверждение email
// и сброс пароля.
var ErrLinkExpired = New(http.StatusNotFound, "Invalid Link or Expired")

var ErrSamePassword = New(http.StatusConflict, "Password is the same")

// --- Jobs & Applications ---

var ErrJobNotFound = New(http.StatusNotFound, "Job not found")

var ErrNotJobOwner = New(http.StatusUnauthorized, "Unauthorized")

var ErrApplicationNotFound = New(http.StatusNotFound, "Application not found")

var ErrAlreadyApproved = New(http.StatusBadRequest, "Appliciant already approved")

var ErrAlreadyRejected = New(http.StatusBadRequest, "Appliciant already rejected")

var ErrApplyApproved = New(http.StatusBadRequest, "You have already been approved for this job")

var ErrApplyRejected = New(http.StatusBadRequest, "You have already been rejected for this job")

// --- Reports ---

var ErrReportNotFound = New(http.StatusNotFound, "Report not found")

// --- Mail ---

var ErrEmailSendFailed = New(http.StatusBadRequest, "Email failed to send")
