package services

import (
	"fmt"
	"strings"
	"time"

	"argent_backend/internal/auth"
	"argent_backend/internal/email"
	"argent_backend/internal/models"
	"argent_backend/internal/repositories"
	"argent_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// Срок жизни записи сброса пароля.
const resetRecordTTL = 10 * time.Minute

// TokenPair - свежевыпущенная пара токенов на установку в куки
type TokenPair struct {
	Access  auth.TokenData
	Refresh auth.TokenData
}

type AuthService interface {
	Login(email, password string, kind models.AccountKind) (*models.Account, *TokenPair, error)
	Refresh(accessToken, refreshToken string, kind models.AccountKind) (string, *TokenPair, error)
	RequestPasswordReset(emailAddr string) error
	CheckResetToken(token string) error
	ConfirmPasswordReset(token, newPassword string) error
}

type AuthServiceImpl struct {
	accountRepo repositories.AccountRepository
	resetRepo   repositories.ResetPasswordRepository
	tokens      *auth.TokenManager
	mail        email.Provider
	frontendURL string
}

func NewAuthService(
	accountRepo repositories.AccountRepository,
	resetRepo repositories.ResetPasswordRepository,
	tokens *auth.TokenManager,
	mail email.Provider,
	frontendURL string,
) AuthService {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		resetRepo:   resetRepo,
		tokens:      tokens,
		mail:        mail,
		frontendURL: frontendURL,
	}
}

// Login - вход по email и паролю. Коды ошибок - внешний контракт:
// 404 незнакомый email, 409 неверный пароль, 409 бан.
func (s *AuthServiceImpl) Login(emailAddr, password string, kind models.AccountKind) (*models.Account, *TokenPair, error) {
	account, err := s.accountRepo.FindByEmail(emailAddr, kind)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, nil, apperrors.ErrEmailNotFound
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(password, account.PasswordHash) {
		return nil, nil, apperrors.ErrPasswordMismatch
	}
	if account.IsBanned() {
		return nil, nil, apperrors.ErrAccountBanned
	}

	pair, err := s.issuePair(account)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// Refresh - обновление сессии. Живой access-токен приводит к короткому
// ответу без ротации; иначе по refresh-токену выпускается новая пара
// (ротация обоих токенов сразу). Обе ветки перечитывают аккаунт из БД:
// удаление и бан роняют сессию независимо от срока жизни токена.
func (s *AuthServiceImpl) Refresh(accessToken, refreshToken string, kind models.AccountKind) (string, *TokenPair, error) {
	if accessToken != "" {
		if claims, err := s.tokens.VerifyAccessToken(accessToken, kind); err == nil {
			account, err := s.sessionAccount(claims.AccountID, kind)
			if err != nil {
				return "", nil, err
			}
			return account.ID, nil, nil
		}
	}

	if refreshToken == "" {
		return "", nil, apperrors.ErrRefreshMissing
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken, kind)
	if err != nil {
		return "", nil, apperrors.ErrWrongToken
	}

	account, err := s.sessionAccount(claims.AccountID, kind)
	if err != nil {
		return "", nil, err
	}

	pair, err := s.issuePair(account)
	if err != nil {
		return "", nil, err
	}
	return account.ID, pair, nil
}

// RequestPasswordReset - создание записи сброса и письмо со ссылкой.
// Повторный запрос при живой записи отклоняется, протухшая запись
// молча пересоздается.
func (s *AuthServiceImpl) RequestPasswordReset(emailAddr string) error {
	account, err := s.accountRepo.FindByEmail(emailAddr, models.AccountKindUser)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrEmailNotFound
		}
		return apperrors.InternalError(err)
	}

	record, err := s.resetRepo.FindByAccount(account.ID)
	if err == nil {
		if !record.Expired() {
			return apperrors.ErrResetAlreadyRequested
		}
		if err := s.resetRepo.DeleteByAccount(account.ID); err != nil {
			return apperrors.InternalError(err)
		}
	} else if !apperrors.Is(err, repositories.ErrRecordNotFound) {
		return apperrors.InternalError(err)
	}

	uniqueString := uuid.NewString()
	hash, err := auth.HashPassword(uniqueString)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.resetRepo.Create(&models.ResetPasswordRecord{
		AccountID:    account.ID,
		UniqueString: hash,
		ExpiresAt:    time.Now().Add(resetRecordTTL),
	}); err != nil {
		return apperrors.InternalError(err)
	}

	link := fmt.Sprintf("%s/auth/reset-password/%s", s.frontendURL, composeResetToken(account.ID, uniqueString))
	if err := s.mail.SendResetPassword(account.Email, link); err != nil {
		s.resetRepo.DeleteByAccount(account.ID)
		return apperrors.ErrEmailSendFailed
	}
	return nil
}

// CheckResetToken - проба ссылки перед показом формы нового пароля.
func (s *AuthServiceImpl) CheckResetToken(token string) error {
	_, _, err := s.resolveResetToken(token)
	return err
}

// ConfirmPasswordReset - установка нового пароля по действующей ссылке.
func (s *AuthServiceImpl) ConfirmPasswordReset(token, newPassword string) error {
	account, _, err := s.resolveResetToken(token)
	if err != nil {
		return err
	}

	if auth.CheckPasswordHash(newPassword, account.PasswordHash) {
		return apperrors.ErrSamePassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.accountRepo.UpdatePassword(account.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.resetRepo.DeleteByAccount(account.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// sessionAccount перечитывает аккаунт действующей сессии из БД.
func (s *AuthServiceImpl) sessionAccount(accountID string, kind models.AccountKind) (*models.Account, error) {
	account, err := s.accountRepo.FindByIDAndKind(accountID, kind)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if account.IsBanned() {
		return nil, apperrors.ErrAccountBanned
	}
	return account, nil
}

func (s *AuthServiceImpl) issuePair(account *models.Account) (*TokenPair, error) {
	access, err := s.tokens.CreateAccessToken(account)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refresh, err := s.tokens.CreateRefreshToken(account)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// resolveResetToken разбирает токен ссылки, проверяет запись и ее срок.
// Любая несостыковка отвечает одинаково, чтобы не раскрывать причину.
func (s *AuthServiceImpl) resolveResetToken(token string) (*models.Account, *models.ResetPasswordRecord, error) {
	accountID, uniqueString, ok := splitResetToken(token)
	if !ok {
		return nil, nil, apperrors.ErrLinkExpired
	}

	record, err := s.resetRepo.FindByAccount(accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrLinkExpired
		}
		return nil, nil, apperrors.InternalError(err)
	}
	if record.Expired() {
		s.resetRepo.DeleteByAccount(accountID)
		return nil, nil, apperrors.ErrLinkExpired
	}
	if !auth.CheckPasswordHash(uniqueString, record.UniqueString) {
		return nil, nil, apperrors.ErrLinkExpired
	}

	account, err := s.accountRepo.FindByIDAndKind(accountID, models.AccountKindUser)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, nil, apperrors.ErrLinkExpired
		}
		return nil, nil, apperrors.InternalError(err)
	}
	return account, record, nil
}

// Токен ссылки - "<accountID>.<uniqueString>": uuid не содержит точек,
// так что разбор однозначен.
func composeResetToken(accountID, uniqueString string) string {
	return accountID + "." + uniqueString
}

func splitResetToken(token string) (string, string, bool) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
