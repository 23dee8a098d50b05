package middleware

import (
	"argent_backend/internal/auth"
	"argent_backend/internal/models"
	"argent_backend/internal/repositories"
	"argent_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Ключ аккаунта в контексте Gin.
const ContextAccountKey = "account"

// AuthMiddleware проверяет access-куку и загружает аккаунт из БД на каждом
// запросе: бан и удаление вступают в силу немедленно, а не по истечении
// токена.
type AuthMiddleware struct {
	tokens      *auth.TokenManager
	accountRepo repositories.AccountRepository
	secure      bool
}

func NewAuthMiddleware(tokens *auth.TokenManager, accountRepo repositories.AccountRepository, secure bool) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:      tokens,
		accountRepo: accountRepo,
		secure:      secure,
	}
}

// RequireUser - защита пользовательских маршрутов.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return m.require(models.AccountKindUser)
}

// RequireAdmin - защита маршрутов админки.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.require(models.AccountKindAdmin)
}

func (m *AuthMiddleware) require(kind models.AccountKind) gin.HandlerFunc {
	accessName, _ := auth.CookieNames(kind)

	return func(c *gin.Context) {
		token, err := c.Cookie(accessName)
		if err != nil || token == "" {
			apperrors.HandleError(c, apperrors.ErrTokenMissing)
			return
		}

		claims, err := m.tokens.VerifyAccessToken(token, kind)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrWrongToken)
			return
		}

		account, err := m.accountRepo.FindByIDAndKind(claims.AccountID, kind)
		if err != nil {
			auth.ClearSessionCookies(c, kind, m.secure)
			apperrors.HandleError(c, apperrors.ErrSessionStale)
			return
		}
		if account.IsBanned() {
			auth.ClearSessionCookies(c, kind, m.secure)
			apperrors.HandleError(c, apperrors.ErrAccountBanned)
			return
		}

		c.Set(ContextAccountKey, account)
		c.Next()
	}
}

// AccountFromContext достает аккаунт, положенный middleware.
func AccountFromContext(c *gin.Context) (*models.Account, bool) {
	v, ok := c.Get(ContextAccountKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*models.Account)
	return account, ok
}
