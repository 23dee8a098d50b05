package services

import (
	"strings"
	"testing"

	"argent_backend/internal/models"
	"argent_backend/internal/services/dto"
	"argent_backend/internal/storage"
	"argent_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB, mail *captureMail) UserService {
	t.Helper()

	accountRepo, jobRepo, applicationRepo, reportRepo, verificationRepo, resetRepo := newTestRepos(db)
	files, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	return NewUserService(accountRepo, jobRepo, applicationRepo, reportRepo,
		verificationRepo, resetRepo, files, mail, "http://api.local")
}

func TestUserService_VerificationFlow(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	mail := &captureMail{}
	svc := newUserService(t, db, mail)
	user := createTestUser(t, db, "verify", "verify@example.com")

	require.NoError(t, svc.SendVerification(user.ID))

	link := mail.lastVerificationLink(t)
	token := link[strings.LastIndex(link, "/")+1:]

	t.Run("wrong token", func(t *testing.T) {
		err := svc.VerifyEmail(user.ID, "not-the-token")
		assert.ErrorIs(t, err, apperrors.ErrLinkExpired)
	})

	t.Run("success flips the flag and burns the record", func(t *testing.T) {
		require.NoError(t, svc.VerifyEmail(user.ID, token))

		account, err := svc.GetByID(user.ID)
		require.NoError(t, err)
		assert.True(t, account.Verified)

		err = svc.VerifyEmail(user.ID, token)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
	})

	t.Run("resend after verification", func(t *testing.T) {
		err := svc.SendVerification(user.ID)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
	})
}

func TestUserService_Update(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newUserService(t, db, &captureMail{})
	user := createTestUser(t, db, "upd", "upd@example.com")
	other := createTestUser(t, db, "taken", "taken@example.com")

	t.Run("foreign profile", func(t *testing.T) {
		about := "hello"
		_, err := svc.Update(user.ID, other.ID, &dto.UpdateUserRequest{About: &about})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.Status)
	})

	t.Run("duplicate email", func(t *testing.T) {
		email := other.Email
		_, err := svc.Update(user.ID, user.ID, &dto.UpdateUserRequest{Email: &email})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("partial update", func(t *testing.T) {
		about := "updated about"
		city := "Astana"
		updated, err := svc.Update(user.ID, user.ID, &dto.UpdateUserRequest{
			About:  &about,
			City:   &city,
			Skills: []string{"go", "sql"},
		})
		require.NoError(t, err)
		assert.Equal(t, about, updated.About)
		assert.Equal(t, city, updated.Address.City)
		// Не тронутые поля остаются на месте.
		assert.Equal(t, user.Username, updated.Username)
	})
}

func TestUserService_CascadeDelete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newUserService(t, db, &captureMail{})

	user := createTestUser(t, db, "gone", "gone@example.com")
	bystander := createTestUser(t, db, "stay", "stay@example.com")
	giveCV(t, db, bystander)

	job := createTestJob(t, db, user, "Doomed Job")
	require.NoError(t, db.Create(&models.Application{
		JobID:     job.ID,
		AccountID: bystander.ID,
		Status:    models.ApplicationStatusPending,
	}).Error)
	require.NoError(t, svc.Report(bystander.ID, user.ID, "spam"))

	require.NoError(t, svc.Delete(user.ID, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.Account{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	require.NoError(t, db.Model(&models.Job{}).Where("account_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	require.NoError(t, db.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	require.NoError(t, db.Model(&models.Report{}).Where("reported_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// Посторонний аккаунт каскад не задевает.
	require.NoError(t, db.Model(&models.Account{}).Where("id = ?", bystander.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUserService_EmailSendFailureSurfaces(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	mail := &captureMail{fail: true}
	svc := newUserService(t, db, mail)
	user := createTestUser(t, db, "smtp", "smtp@example.com")

	err := svc.SendVerification(user.ID)
	assert.ErrorIs(t, err, apperrors.ErrEmailSendFailed)

	// Запись не должна переживать неотправленное письмо.
	var count int64
	require.NoError(t, db.Model(&models.VerificationRecord{}).Where("account_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
