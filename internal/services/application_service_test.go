package services

import (
	"testing"
	"time"

	"argent_backend/internal/models"
	"argent_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApplicationService(db *gorm.DB, mail *captureMail) ApplicationService {
	accountRepo, jobRepo, applicationRepo, _, _, _ := newTestRepos(db)
	return NewApplicationService(applicationRepo, jobRepo, accountRepo, mail)
}

func TestApplicationService_Toggle(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newApplicationService(db, &captureMail{})

	owner := createTestUser(t, db, "owner", "owner@example.com")
	seeker := createTestUser(t, db, "seeker", "seeker@example.com")
	job := createTestJob(t, db, owner, "Backend Engineer")

	t.Run("job not found", func(t *testing.T) {
		_, err := svc.Toggle(seeker.ID, "missing-job")
		assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	})

	t.Run("owner cannot apply", func(t *testing.T) {
		_, err := svc.Toggle(owner.ID, job.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)
	})

	t.Run("without CV", func(t *testing.T) {
		_, err := svc.Toggle(seeker.ID, job.ID)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Status)
		assert.Equal(t, "Please upload your CV", appErr.Message)
	})

	giveCV(t, db, seeker)

	t.Run("apply then withdraw", func(t *testing.T) {
		applied, err := svc.Toggle(seeker.ID, job.ID)
		require.NoError(t, err)
		assert.True(t, applied)

		status, err := svc.CheckApplied(seeker.ID, job.ID)
		require.NoError(t, err)
		assert.Equal(t, string(models.ApplicationStatusPending), status)

		applied, err = svc.Toggle(seeker.ID, job.ID)
		require.NoError(t, err)
		assert.False(t, applied)

		status, err = svc.CheckApplied(seeker.ID, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "", status)
	})

	t.Run("terminal states block the toggle", func(t *testing.T) {
		applied, err := svc.Toggle(seeker.ID, job.ID)
		require.NoError(t, err)
		require.True(t, applied)

		var app models.Application
		require.NoError(t, db.First(&app, "job_id = ? AND account_id = ?", job.ID, seeker.ID).Error)

		require.NoError(t, svc.Decide(owner.ID, app.ID, seeker.ID, job.ID, true, ""))

		_, err = svc.Toggle(seeker.ID, job.ID)
		assert.ErrorIs(t, err, apperrors.ErrApplyApproved)
	})
}

func TestApplicationService_CheckApplied_Owner(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newApplicationService(db, &captureMail{})

	owner := createTestUser(t, db, "owner2", "owner2@example.com")
	job := createTestJob(t, db, owner, "Frontend Engineer")

	status, err := svc.CheckApplied(owner.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusOwner, status)
}

func TestApplicationService_Decide(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	mail := &captureMail{}
	svc := newApplicationService(db, mail)

	owner := createTestUser(t, db, "boss", "boss@example.com")
	seeker := createTestUser(t, db, "worker", "worker@example.com")
	giveCV(t, db, seeker)
	job := createTestJob(t, db, owner, "DevOps Engineer")

	_, err := svc.Toggle(seeker.ID, job.ID)
	require.NoError(t, err)
	var app models.Application
	require.NoError(t, db.First(&app, "job_id = ? AND account_id = ?", job.ID, seeker.ID).Error)

	t.Run("non-owner cannot decide", func(t *testing.T) {
		err := svc.Decide(seeker.ID, app.ID, seeker.ID, job.ID, true, "")
		assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)
	})

	t.Run("approve is single-use", func(t *testing.T) {
		require.NoError(t, svc.Decide(owner.ID, app.ID, seeker.ID, job.ID, true, "welcome aboard"))

		err := svc.Decide(owner.ID, app.ID, seeker.ID, job.ID, true, "")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)

		// Терминальное состояние блокирует и противоположное решение.
		err = svc.Decide(owner.ID, app.ID, seeker.ID, job.ID, false, "")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)
	})

	t.Run("approve notice carries the decision message", func(t *testing.T) {
		// Письмо уходит в фоне, дожидаемся его появления.
		require.Eventually(t, func() bool {
			_, ok := mail.lastApproveNotice()
			return ok
		}, time.Second, 10*time.Millisecond)

		notice, _ := mail.lastApproveNotice()
		assert.Equal(t, seeker.Email, notice.to)
		assert.Equal(t, job.Title, notice.jobTitle)
		assert.Equal(t, "welcome aboard", notice.message)
	})

	t.Run("decision stores the message", func(t *testing.T) {
		var updated models.Application
		require.NoError(t, db.First(&updated, "id = ?", app.ID).Error)
		assert.Equal(t, models.ApplicationStatusApproved, updated.Status)
		assert.Equal(t, "welcome aboard", updated.Message)
	})

	t.Run("reject is single-use", func(t *testing.T) {
		second := createTestUser(t, db, "worker2", "worker2@example.com")
		giveCV(t, db, second)
		_, err := svc.Toggle(second.ID, job.ID)
		require.NoError(t, err)

		var app2 models.Application
		require.NoError(t, db.First(&app2, "job_id = ? AND account_id = ?", job.ID, second.ID).Error)

		require.NoError(t, svc.Decide(owner.ID, app2.ID, second.ID, job.ID, false, ""))
		err = svc.Decide(owner.ID, app2.ID, second.ID, job.ID, false, "")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyRejected)

		_, err = svc.Toggle(second.ID, job.ID)
		assert.ErrorIs(t, err, apperrors.ErrApplyRejected)

		// Сообщение не задано, в уведомление подставляется текст по умолчанию.
		require.Eventually(t, func() bool {
			_, ok := mail.lastRejectNotice()
			return ok
		}, time.Second, 10*time.Millisecond)

		notice, _ := mail.lastRejectNotice()
		assert.Equal(t, second.Email, notice.to)
		assert.Equal(t, defaultRejectMessage, notice.message)
	})
}

func TestApplicationService_ListApplicants(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newApplicationService(db, &captureMail{})

	owner := createTestUser(t, db, "lister", "lister@example.com")
	job := createTestJob(t, db, owner, "QA Engineer")

	first := createTestUser(t, db, "cand1", "cand1@example.com")
	second := createTestUser(t, db, "cand2", "cand2@example.com")
	giveCV(t, db, first)
	giveCV(t, db, second)

	_, err := svc.Toggle(first.ID, job.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(second.ID, job.ID)
	require.NoError(t, err)

	var app models.Application
	require.NoError(t, db.First(&app, "job_id = ? AND account_id = ?", job.ID, second.ID).Error)
	require.NoError(t, svc.Decide(owner.ID, app.ID, second.ID, job.ID, true, ""))

	t.Run("non-owner is rejected", func(t *testing.T) {
		_, err := svc.ListApplicants(first.ID, job.ID, "pending")
		assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)
	})

	t.Run("default pane is pending", func(t *testing.T) {
		applicants, err := svc.ListApplicants(owner.ID, job.ID, "")
		require.NoError(t, err)
		require.Len(t, applicants, 1)
		assert.Equal(t, first.ID, applicants[0].Applicant.ID)
	})

	t.Run("approved pane", func(t *testing.T) {
		applicants, err := svc.ListApplicants(owner.ID, job.ID, "approved")
		require.NoError(t, err)
		require.Len(t, applicants, 1)
		assert.Equal(t, second.ID, applicants[0].Applicant.ID)
	})

	t.Run("unknown pane falls back to pending", func(t *testing.T) {
		applicants, err := svc.ListApplicants(owner.ID, job.ID, "whatever")
		require.NoError(t, err)
		require.Len(t, applicants, 1)
		assert.Equal(t, first.ID, applicants[0].Applicant.ID)
	})
}

func TestApplicationService_ListApplications(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newApplicationService(db, &captureMail{})

	owner := createTestUser(t, db, "emp", "emp@example.com")
	seeker := createTestUser(t, db, "app", "app@example.com")
	giveCV(t, db, seeker)

	jobA := createTestJob(t, db, owner, "Job A")
	jobB := createTestJob(t, db, owner, "Job B")

	_, err := svc.Toggle(seeker.ID, jobA.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(seeker.ID, jobB.ID)
	require.NoError(t, err)

	applications, err := svc.ListApplications(seeker.ID)
	require.NoError(t, err)
	require.Len(t, applications, 2)
	for _, item := range applications {
		assert.Equal(t, models.ApplicationStatusPending, item.Status)
		assert.NotEmpty(t, item.Job.Title)
	}
}
