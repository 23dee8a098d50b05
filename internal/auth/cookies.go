package auth

import (
	"net/http"

	"argent_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetSessionCookies ставит пару HttpOnly кук для вида аккаунта.
// В проде куки Secure с SameSite=None (фронт живет на другом origin),
// в dev - Lax без Secure.
func SetSessionCookies(c *gin.Context, kind models.AccountKind, access, refresh TokenData, secure bool) {
	accessName, refreshName := CookieNames(kind)

	setSameSite(c, secure)
	c.SetCookie(accessName, access.Token, int(access.ExpiresIn.Seconds()), "/", "", secure, true)
	c.SetCookie(refreshName, refresh.Token, int(refresh.ExpiresIn.Seconds()), "/", "", secure, true)
}

// ClearSessionCookies сбрасывает обе куки вида аккаунта.
func ClearSessionCookies(c *gin.Context, kind models.AccountKind, secure bool) {
	accessName, refreshName := CookieNames(kind)

	setSameSite(c, secure)
	c.SetCookie(accessName, "", -1, "/", "", secure, true)
	c.SetCookie(refreshName, "", -1, "/", "", secure, true)
}

func setSameSite(c *gin.Context, secure bool) {
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
}
