package services

import (
	"sync"
	"testing"

	"argent_backend/internal/auth"
	"argent_backend/internal/models"
	"argent_backend/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "password123"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// In-memory SQLite живет в рамках одного соединения.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Job{},
		&models.Application{},
		&models.VerificationRecord{},
		&models.ResetPasswordRecord{},
		&models.Report{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.Account {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	account := &models.Account{
		Kind:         models.AccountKindUser,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Status:       models.AccountStatusActive,
		FullName:     "Test User",
		Gender:       models.GenderMale,
		Address:      models.Address{City: "Almaty", Country: "KZ"},
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func createTestJob(t *testing.T, db *gorm.DB, owner *models.Account, title string) *models.Job {
	t.Helper()

	job := &models.Job{
		AccountID:   owner.ID,
		Username:    owner.Username,
		EmailUser:   owner.Email,
		Title:       title,
		Description: "some work",
		Type:        "full-time",
		Level:       "entry",
		WorkPlace:   "remote",
		Location:    "Almaty",
		Salary:      "1000",
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func giveCV(t *testing.T, db *gorm.DB, account *models.Account) {
	t.Helper()
	require.NoError(t, db.Model(account).Update("cv", "profile/cv/123-cv.pdf").Error)
	account.CV = "profile/cv/123-cv.pdf"
}

// captureMail записывает отправленные письма вместо реальной отправки.
type captureMail struct {
	mu                sync.Mutex
	verificationLinks []string
	resetLinks        []string
	approveNotices    []decisionNotice
	rejectNotices     []decisionNotice
	fail              bool
}

type decisionNotice struct {
	to       string
	jobTitle string
	message  string
}

func (m *captureMail) SendVerification(to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return assertionError("smtp down")
	}
	m.verificationLinks = append(m.verificationLinks, link)
	return nil
}

func (m *captureMail) SendResetPassword(to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return assertionError("smtp down")
	}
	m.resetLinks = append(m.resetLinks, link)
	return nil
}

func (m *captureMail) SendApproveJobNotice(to, jobTitle, contactEmail, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approveNotices = append(m.approveNotices, decisionNotice{to: to, jobTitle: jobTitle, message: message})
	return nil
}

func (m *captureMail) SendRejectJobNotice(to, jobTitle, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejectNotices = append(m.rejectNotices, decisionNotice{to: to, jobTitle: jobTitle, message: message})
	return nil
}

func (m *captureMail) lastApproveNotice() (decisionNotice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.approveNotices) == 0 {
		return decisionNotice{}, false
	}
	return m.approveNotices[len(m.approveNotices)-1], true
}

func (m *captureMail) lastRejectNotice() (decisionNotice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rejectNotices) == 0 {
		return decisionNotice{}, false
	}
	return m.rejectNotices[len(m.rejectNotices)-1], true
}

func (m *captureMail) lastResetLink(t *testing.T) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.resetLinks)
	return m.resetLinks[len(m.resetLinks)-1]
}

func (m *captureMail) lastVerificationLink(t *testing.T) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.verificationLinks)
	return m.verificationLinks[len(m.verificationLinks)-1]
}

type assertionError string

func (e assertionError) Error() string { return string(e) }

func newTestRepos(db *gorm.DB) (
	repositories.AccountRepository,
	repositories.JobRepository,
	repositories.ApplicationRepository,
	repositories.ReportRepository,
	repositories.VerificationRepository,
	repositories.ResetPasswordRepository,
) {
	return repositories.NewAccountRepository(db),
		repositories.NewJobRepository(db),
		repositories.NewApplicationRepository(db),
		repositories.NewReportRepository(db),
		repositories.NewVerificationRepository(db),
		repositories.NewResetPasswordRepository(db)
}

func newTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(
		auth.Secrets{Access: "ua", Refresh: "ur"},
		auth.Secrets{Access: "aa", Refresh: "ar"},
	)
}
