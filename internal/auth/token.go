package auth

import (
	"errors"
	"time"

	"argent_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Access-токены живут час для обоих видов аккаунтов.
	AccessTokenTTL = time.Hour

	UserRefreshTokenTTL  = 7 * 24 * time.Hour
	AdminRefreshTokenTTL = 24 * time.Hour
)

// Имена кук - внешний контракт, фронт читает их по этим именам.
const (
	UserAccessCookie   = "Authorization"
	UserRefreshCookie  = "refreshToken"
	AdminAccessCookie  = "adminAuth"
	AdminRefreshCookie = "adminRefreshToken"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims - полезная нагрузка access/refresh токена.
type Claims struct {
	AccountID string             `json:"_id"`
	Kind      models.AccountKind `json:"kind"`
	jwt.RegisteredClaims
}

// Secrets - пары секретов для одного вида аккаунта.
type Secrets struct {
	Access  string
	Refresh string
}

// TokenData - подписанный токен вместе с его TTL (нужен для Max-Age куки).
type TokenData struct {
	Token     string
	ExpiresIn time.Duration
}

// TokenManager выпускает и проверяет JWT обеих разновидностей.
// Валидность access-токена чисто криптографическая: он нигде не хранится
// и по одному не отзывается; бан аккаунта проверяется на каждом запросе
// отдельным обращением к БД (middleware).
type TokenManager struct {
	user  Secrets
	admin Secrets
}

func NewTokenManager(user, admin Secrets) *TokenManager {
	return &TokenManager{user: user, admin: admin}
}

// CreateAccessToken подписывает {accountId, kind} access-секретом. Чистая
// функция от аккаунта и часов, без побочных эффектов.
func (m *TokenManager) CreateAccessToken(account *models.Account) (TokenData, error) {
	return m.sign(account, m.secrets(account.Kind).Access, AccessTokenTTL)
}

// CreateRefreshToken подписывает refresh-секретом с TTL по виду аккаунта.
func (m *TokenManager) CreateRefreshToken(account *models.Account) (TokenData, error) {
	ttl := UserRefreshTokenTTL
	if account.Kind == models.AccountKindAdmin {
		ttl = AdminRefreshTokenTTL
	}
	return m.sign(account, m.secrets(account.Kind).Refresh, ttl)
}

// VerifyAccessToken - синхронная проверка подписи и срока действия.
func (m *TokenManager) VerifyAccessToken(token string, kind models.AccountKind) (*Claims, error) {
	return m.verify(token, m.secrets(kind).Access, kind)
}

// VerifyRefreshToken проверяет refresh-токен соответствующим секретом.
func (m *TokenManager) VerifyRefreshToken(token string, kind models.AccountKind) (*Claims, error) {
	return m.verify(token, m.secrets(kind).Refresh, kind)
}

// CookieNames возвращает пару (access, refresh) имен кук для вида аккаунта.
func CookieNames(kind models.AccountKind) (string, string) {
	if kind == models.AccountKindAdmin {
		return AdminAccessCookie, AdminRefreshCookie
	}
	return UserAccessCookie, UserRefreshCookie
}

func (m *TokenManager) secrets(kind models.AccountKind) Secrets {
	if kind == models.AccountKindAdmin {
		return m.admin
	}
	return m.user
}

func (m *TokenManager) sign(account *models.Account, secret string, ttl time.Duration) (TokenData, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: account.ID,
		Kind:      account.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return TokenData{}, err
	}

	return TokenData{Token: signed, ExpiresIn: ttl}, nil
}

func (m *TokenManager) verify(token, secret string, kind models.AccountKind) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
