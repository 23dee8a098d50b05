package app

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"argent_backend/internal/auth"
	"argent_backend/internal/config"
	"argent_backend/internal/logger"
	"argent_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "password123"

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	logger.Init("development")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))

	cfg := &config.Config{
		Server: config.ServerConfig{Env: "development"},
		JWT: config.JWTConfig{
			UserAccessSecret:   "user-access",
			UserRefreshSecret:  "user-refresh",
			AdminAccessSecret:  "admin-access",
			AdminRefreshSecret: "admin-refresh",
		},
		Storage: config.StorageConfig{BasePath: t.TempDir(), BaseURL: "/files"},
		Upload:  config.UploadConfig{MaxSize: 10 << 20},
		Email: config.EmailConfig{
			FrontendURL: "http://localhost:3000",
			CurrentURL:  "http://localhost:4000",
		},
	}

	return SetupRouter(cfg, db), db
}

func createAccount(t *testing.T, db *gorm.DB, kind models.AccountKind, username, email string) *models.Account {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	account := &models.Account{
		Kind:         kind,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Status:       models.AccountStatusActive,
		FullName:     "Test User",
		Gender:       models.GenderMale,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func doJSON(router *gin.Engine, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestRouter_AuthFlow(t *testing.T) {
	router, db := newTestRouter(t)
	user := createAccount(t, db, models.AccountKindUser, "flow", "flow@example.com")

	t.Run("refresh without cookies", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/auth/refresh", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Unauthorized", body["message"])
	})

	t.Run("protected route without cookie", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/user", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Authentication token missing", body["message"])
	})

	t.Run("login with unknown email", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/login",
			`{"email":"ghost@example.com","password":"whatever123"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	var access, refresh *http.Cookie

	t.Run("login sets both cookies", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/login",
			`{"email":"flow@example.com","password":"`+testPassword+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, user.ID, data["accountId"])

		access = cookieByName(rec, auth.UserAccessCookie)
		refresh = cookieByName(rec, auth.UserRefreshCookie)
		require.NotNil(t, access)
		require.NotNil(t, refresh)
		assert.True(t, access.HttpOnly)
		assert.True(t, refresh.HttpOnly)
	})

	t.Run("protected route with access cookie", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/user", "", access)
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, user.ID, data["_id"])
	})

	t.Run("refresh with valid access does not rotate", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/auth/refresh", "", access, refresh)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, cookieByName(rec, auth.UserAccessCookie))
	})

	t.Run("refresh with only refresh cookie rotates", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/auth/refresh", "", refresh)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, cookieByName(rec, auth.UserAccessCookie))
		require.NotNil(t, cookieByName(rec, auth.UserRefreshCookie))
	})

	t.Run("garbage refresh token", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/auth/refresh", "",
			&http.Cookie{Name: auth.UserRefreshCookie, Value: "garbage"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Wrong authentication token", body["message"])
	})

	t.Run("logout clears cookies and is idempotent", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/logout", "", access, refresh)
		assert.Equal(t, http.StatusOK, rec.Code)

		cleared := cookieByName(rec, auth.UserAccessCookie)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)

		rec = doJSON(router, http.MethodPost, "/auth/logout", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_BannedAccount(t *testing.T) {
	router, db := newTestRouter(t)
	user := createAccount(t, db, models.AccountKindUser, "banned", "banned@example.com")

	rec := doJSON(router, http.MethodPost, "/auth/login",
		`{"email":"banned@example.com","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	access := cookieByName(rec, auth.UserAccessCookie)
	require.NotNil(t, access)

	require.NoError(t, db.Model(user).Update("status", models.AccountStatusBanned).Error)

	t.Run("login is rejected", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/login",
			`{"email":"banned@example.com","password":"`+testPassword+`"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("live session is cut off and cookies cleared", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/user", "", access)
		assert.Equal(t, http.StatusConflict, rec.Code)

		cleared := cookieByName(rec, auth.UserAccessCookie)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
	})
}

func TestRouter_UploadImage(t *testing.T) {
	router, db := newTestRouter(t)
	user := createAccount(t, db, models.AccountKindUser, "painter", "painter@example.com")

	rec := doJSON(router, http.MethodPost, "/auth/login",
		`{"email":"painter@example.com","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	access := cookieByName(rec, auth.UserAccessCookie)
	require.NotNil(t, access)

	upload := func(field string) *httptest.ResponseRecorder {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile(field, "pic.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPut, "/user/upload/"+user.ID+"?type=banner", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.AddCookie(access)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("file is read from the image field", func(t *testing.T) {
		rec := upload("image")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other field names are ignored", func(t *testing.T) {
		rec := upload("banner")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "No file uploaded", body["message"])
	})
}

func TestRouter_DeletedAccount(t *testing.T) {
	router, db := newTestRouter(t)
	user := createAccount(t, db, models.AccountKindUser, "ghost", "ghost@example.com")

	rec := doJSON(router, http.MethodPost, "/auth/login",
		`{"email":"ghost@example.com","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	access := cookieByName(rec, auth.UserAccessCookie)
	require.NotNil(t, access)

	require.NoError(t, db.Delete(&models.Account{}, "id = ?", user.ID).Error)

	t.Run("live token of a deleted account gets 401 and cleared cookies", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/user", "", access)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "Unauthorized", body["message"])

		cleared := cookieByName(rec, auth.UserAccessCookie)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
	})
}

func TestRouter_AdminScope(t *testing.T) {
	router, db := newTestRouter(t)
	createAccount(t, db, models.AccountKindAdmin, "root", "root@example.com")
	user := createAccount(t, db, models.AccountKindUser, "mortal", "mortal@example.com")

	rec := doJSON(router, http.MethodPost, "/admin/login",
		`{"email":"root@example.com","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	adminAccess := cookieByName(rec, auth.AdminAccessCookie)
	require.NotNil(t, adminAccess)
	require.NotNil(t, cookieByName(rec, auth.AdminRefreshCookie))

	t.Run("user cookie does not open admin routes", func(t *testing.T) {
		loginRec := doJSON(router, http.MethodPost, "/auth/login",
			`{"email":"mortal@example.com","password":"`+testPassword+`"}`)
		require.Equal(t, http.StatusOK, loginRec.Code)
		userAccess := cookieByName(loginRec, auth.UserAccessCookie)
		require.NotNil(t, userAccess)

		rec := doJSON(router, http.MethodGet, "/admin/user", "", userAccess)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("admin lists users", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/admin/user", "", adminAccess)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin bans a user", func(t *testing.T) {
		rec := doJSON(router, http.MethodPatch, "/admin/user/banned/"+user.ID, "", adminAccess)
		assert.Equal(t, http.StatusOK, rec.Code)

		var updated models.Account
		require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
		assert.Equal(t, models.AccountStatusBanned, updated.Status)
	})
}
