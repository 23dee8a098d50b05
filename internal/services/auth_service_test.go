package services

import (
	"strings"
	"testing"

	"argent_backend/internal/models"
	"argent_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB, mail *captureMail) AuthService {
	t.Helper()
	accountRepo, _, _, _, _, resetRepo := newTestRepos(db)
	return NewAuthService(accountRepo, resetRepo, newTestTokenManager(), mail, "http://front.local")
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newAuthService(t, db, &captureMail{})
	user := createTestUser(t, db, "alice", "alice@example.com")

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login("ghost@example.com", testPassword, models.AccountKindUser)
		assert.ErrorIs(t, err, apperrors.ErrEmailNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(user.Email, "wrong-password", models.AccountKindUser)
		assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
	})

	t.Run("success", func(t *testing.T) {
		account, pair, err := svc.Login(user.Email, testPassword, models.AccountKindUser)
		require.NoError(t, err)
		assert.Equal(t, user.ID, account.ID)
		require.NotNil(t, pair)
		assert.NotEmpty(t, pair.Access.Token)
		assert.NotEmpty(t, pair.Refresh.Token)
	})

	t.Run("banned", func(t *testing.T) {
		banned := createTestUser(t, db, "bob", "bob@example.com")
		require.NoError(t, db.Model(banned).Update("status", models.AccountStatusBanned).Error)

		_, _, err := svc.Login(banned.Email, testPassword, models.AccountKindUser)
		assert.ErrorIs(t, err, apperrors.ErrAccountBanned)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newAuthService(t, db, &captureMail{})
	user := createTestUser(t, db, "carol", "carol@example.com")

	_, pair, err := svc.Login(user.Email, testPassword, models.AccountKindUser)
	require.NoError(t, err)

	t.Run("valid access short-circuits without rotation", func(t *testing.T) {
		accountID, newPair, err := svc.Refresh(pair.Access.Token, pair.Refresh.Token, models.AccountKindUser)
		require.NoError(t, err)
		assert.Equal(t, user.ID, accountID)
		assert.Nil(t, newPair)
	})

	t.Run("expired access rotates both tokens", func(t *testing.T) {
		accountID, newPair, err := svc.Refresh("", pair.Refresh.Token, models.AccountKindUser)
		require.NoError(t, err)
		assert.Equal(t, user.ID, accountID)
		require.NotNil(t, newPair)
		assert.NotEmpty(t, newPair.Access.Token)
		assert.NotEmpty(t, newPair.Refresh.Token)
	})

	t.Run("missing refresh cookie", func(t *testing.T) {
		_, _, err := svc.Refresh("", "", models.AccountKindUser)
		assert.ErrorIs(t, err, apperrors.ErrRefreshMissing)
	})

	t.Run("garbage refresh token", func(t *testing.T) {
		_, _, err := svc.Refresh("", "garbage", models.AccountKindUser)
		assert.ErrorIs(t, err, apperrors.ErrWrongToken)
	})

	t.Run("deleted account", func(t *testing.T) {
		gone := createTestUser(t, db, "dave", "dave@example.com")
		_, gonePair, err := svc.Login(gone.Email, testPassword, models.AccountKindUser)
		require.NoError(t, err)

		require.NoError(t, db.Delete(&models.Account{}, "id = ?", gone.ID).Error)

		_, _, err = svc.Refresh("", gonePair.Refresh.Token, models.AccountKindUser)
		assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	})

	t.Run("banned account", func(t *testing.T) {
		banned := createTestUser(t, db, "erin", "erin@example.com")
		_, bannedPair, err := svc.Login(banned.Email, testPassword, models.AccountKindUser)
		require.NoError(t, err)

		require.NoError(t, db.Model(banned).Update("status", models.AccountStatusBanned).Error)

		_, _, err = svc.Refresh("", bannedPair.Refresh.Token, models.AccountKindUser)
		assert.ErrorIs(t, err, apperrors.ErrAccountBanned)
	})

	t.Run("live access token of a banned account", func(t *testing.T) {
		banned := createTestUser(t, db, "fred", "fred@example.com")
		_, bannedPair, err := svc.Login(banned.Email, testPassword, models.AccountKindUser)
		require.NoError(t, err)

		require.NoError(t, db.Model(banned).Update("status", models.AccountStatusBanned).Error)

		// Короткий путь с живым access-токеном тоже обязан уронить сессию.
		_, _, err = svc.Refresh(bannedPair.Access.Token, bannedPair.Refresh.Token, models.AccountKindUser)
		assert.ErrorIs(t, err, apperrors.ErrAccountBanned)
	})

	t.Run("live access token of a deleted account", func(t *testing.T) {
		gone := createTestUser(t, db, "greg", "greg@example.com")
		_, gonePair, err := svc.Login(gone.Email, testPassword, models.AccountKindUser)
		require.NoError(t, err)

		require.NoError(t, db.Delete(&models.Account{}, "id = ?", gone.ID).Error)

		_, _, err = svc.Refresh(gonePair.Access.Token, gonePair.Refresh.Token, models.AccountKindUser)
		assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	mail := &captureMail{}
	svc := newAuthService(t, db, mail)
	user := createTestUser(t, db, "frank", "frank@example.com")

	t.Run("unknown email", func(t *testing.T) {
		err := svc.RequestPasswordReset("ghost@example.com")
		assert.ErrorIs(t, err, apperrors.ErrEmailNotFound)
	})

	require.NoError(t, svc.RequestPasswordReset(user.Email))
	link := mail.lastResetLink(t)
	token := link[strings.LastIndex(link, "/")+1:]

	t.Run("second request while record alive", func(t *testing.T) {
		err := svc.RequestPasswordReset(user.Email)
		assert.ErrorIs(t, err, apperrors.ErrResetAlreadyRequested)
	})

	t.Run("check valid link", func(t *testing.T) {
		require.NoError(t, svc.CheckResetToken(token))
	})

	t.Run("check mangled link", func(t *testing.T) {
		err := svc.CheckResetToken(user.ID + ".not-the-right-string")
		assert.ErrorIs(t, err, apperrors.ErrLinkExpired)
	})

	t.Run("same password rejected", func(t *testing.T) {
		err := svc.ConfirmPasswordReset(token, testPassword)
		assert.ErrorIs(t, err, apperrors.ErrSamePassword)
	})

	t.Run("confirm updates password and burns the record", func(t *testing.T) {
		require.NoError(t, svc.ConfirmPasswordReset(token, "brand-new-password"))

		_, _, err := svc.Login(user.Email, "brand-new-password", models.AccountKindUser)
		require.NoError(t, err)

		// Запись одноразовая: повторный переход по той же ссылке не работает.
		err = svc.ConfirmPasswordReset(token, "another-password")
		assert.ErrorIs(t, err, apperrors.ErrLinkExpired)
	})
}
