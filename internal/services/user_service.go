package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"argent_backend/internal/auth"
	"argent_backend/internal/email"
	"argent_backend/internal/logger"
	"argent_backend/internal/models"
	"argent_backend/internal/repositories"
	"argent_backend/internal/services/dto"
	"argent_backend/internal/storage"
	"argent_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// Срок жизни записи подтверждения email.
const verificationRecordTTL = 6 * time.Hour

const (
	uploadTypeAvatar = "avatar"
	uploadTypeBanner = "banner"
)

type UserService interface {
	Signup(req *dto.SignupRequest, avatar *multipart.FileHeader) (*models.Account, error)
	GetByID(id string) (*models.Account, error)
	Update(requesterID, targetID string, req *dto.UpdateUserRequest) (*models.Account, error)
	UploadImage(requesterID, targetID, imageType string, file *multipart.FileHeader) (string, error)
	UploadCV(requesterID, targetID string, file *multipart.FileHeader) (string, error)
	SendVerification(accountID string) error
	VerifyEmail(accountID, token string) error
	Report(reporterID, reportedID, description string) error
	Delete(requesterID, targetID string) error
	CascadeDelete(accountID string) error
}

type UserServiceImpl struct {
	accountRepo      repositories.AccountRepository
	jobRepo          repositories.JobRepository
	applicationRepo  repositories.ApplicationRepository
	reportRepo       repositories.ReportRepository
	verificationRepo repositories.VerificationRepository
	resetRepo        repositories.ResetPasswordRepository
	files            storage.Storage
	mail             email.Provider
	serviceURL       string
}

func NewUserService(
	accountRepo repositories.AccountRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	reportRepo repositories.ReportRepository,
	verificationRepo repositories.VerificationRepository,
	resetRepo repositories.ResetPasswordRepository,
	files storage.Storage,
	mail email.Provider,
	serviceURL string,
) UserService {
	return &UserServiceImpl{
		accountRepo:      accountRepo,
		jobRepo:          jobRepo,
		applicationRepo:  applicationRepo,
		reportRepo:       reportRepo,
		verificationRepo: verificationRepo,
		resetRepo:        resetRepo,
		files:            files,
		mail:             mail,
		serviceURL:       serviceURL,
	}
}

// Signup - регистрация пользователя. Аватар обязателен и приходит
// в той же multipart-форме.
func (s *UserServiceImpl) Signup(req *dto.SignupRequest, avatar *multipart.FileHeader) (*models.Account, error) {
	if avatar == nil {
		return nil, apperrors.NewBadRequestError("Please upload your avatar")
	}
	if !isImageFile(avatar.Filename) {
		return nil, apperrors.NewBadRequestError("Only JPEG and PNG images are allowed")
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid birthday format")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	account := &models.Account{
		Kind:         models.AccountKindUser,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       models.AccountStatusActive,
		FullName:     req.FullName,
		Gender:       models.Gender(req.Gender),
		PhoneNumber:  req.PhoneNumber,
		Birthday:     &birthday,
		Address: models.Address{
			Street:  req.Street,
			City:    req.City,
			Country: req.Country,
			ZipCode: req.ZipCode,
		},
		Skills: dto.StringsToJSON(nil),
	}

	if err := s.accountRepo.Create(account); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrEmailAlreadyTaken):
			return nil, apperrors.ErrEmailAlreadyExists
		case apperrors.Is(err, repositories.ErrUsernameAlreadyTaken):
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	avatarPath, err := s.saveUpload("profile/avatar", avatar)
	if err != nil {
		return nil, err
	}
	account.Avatar = avatarPath
	if err := s.accountRepo.Update(account); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.issueVerification(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *UserServiceImpl) GetByID(id string) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return account, nil
}

// Update - частичное обновление профиля. Чужой профиль трогать нельзя.
func (s *UserServiceImpl) Update(requesterID, targetID string, req *dto.UpdateUserRequest) (*models.Account, error) {
	if requesterID != targetID {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	account, err := s.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != account.Email {
		if _, err := s.accountRepo.FindByEmail(*req.Email, account.Kind); err == nil {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		account.Email = *req.Email
	}
	if req.Username != nil && *req.Username != account.Username {
		if _, err := s.accountRepo.FindByUsername(*req.Username, account.Kind); err == nil {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		account.Username = *req.Username
	}
	if req.FullName != nil {
		account.FullName = *req.FullName
	}
	if req.Gender != nil {
		account.Gender = models.Gender(*req.Gender)
	}
	if req.PhoneNumber != nil {
		account.PhoneNumber = *req.PhoneNumber
	}
	if req.Birthday != nil {
		birthday, err := parseBirthday(*req.Birthday)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid birthday format")
		}
		account.Birthday = &birthday
	}
	if req.About != nil {
		account.About = *req.About
	}
	if req.Street != nil {
		account.Address.Street = *req.Street
	}
	if req.City != nil {
		account.Address.City = *req.City
	}
	if req.Country != nil {
		account.Address.Country = *req.Country
	}
	if req.ZipCode != nil {
		account.Address.ZipCode = *req.ZipCode
	}
	if req.Skills != nil {
		account.Skills = dto.StringsToJSON(req.Skills)
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return account, nil
}

// UploadImage - загрузка аватара или баннера профиля.
func (s *UserServiceImpl) UploadImage(requesterID, targetID, imageType string, file *multipart.FileHeader) (string, error) {
	if requesterID != targetID {
		return "", apperrors.NewUnauthorizedError("Unauthorized")
	}
	if imageType != uploadTypeAvatar && imageType != uploadTypeBanner {
		return "", apperrors.NewBadRequestError("Invalid upload type")
	}
	if file == nil {
		return "", apperrors.NewBadRequestError("No file uploaded")
	}
	if !isImageFile(file.Filename) {
		return "", apperrors.NewBadRequestError("Only JPEG and PNG images are allowed")
	}

	account, err := s.GetByID(targetID)
	if err != nil {
		return "", err
	}

	saved, err := s.saveUpload("profile/"+imageType, file)
	if err != nil {
		return "", err
	}

	if imageType == uploadTypeAvatar {
		account.Avatar = saved
	} else {
		account.Banner = saved
	}
	if err := s.accountRepo.Update(account); err != nil {
		return "", apperrors.InternalError(err)
	}
	return saved, nil
}

// UploadCV - загрузка резюме. Только PDF.
func (s *UserServiceImpl) UploadCV(requesterID, targetID string, file *multipart.FileHeader) (string, error) {
	if requesterID != targetID {
		return "", apperrors.NewUnauthorizedError("Unauthorized")
	}
	if file == nil {
		return "", apperrors.NewBadRequestError("No file uploaded")
	}
	if !strings.EqualFold(path.Ext(file.Filename), ".pdf") {
		return "", apperrors.NewBadRequestError("Only PDF files are allowed")
	}

	account, err := s.GetByID(targetID)
	if err != nil {
		return "", err
	}

	saved, err := s.saveUpload("profile/cv", file)
	if err != nil {
		return "", err
	}

	account.CV = saved
	if err := s.accountRepo.Update(account); err != nil {
		return "", apperrors.InternalError(err)
	}
	return saved, nil
}

// SendVerification - повторная отправка письма подтверждения.
func (s *UserServiceImpl) SendVerification(accountID string) error {
	account, err := s.GetByID(accountID)
	if err != nil {
		return err
	}
	if account.Verified {
		return apperrors.ErrAlreadyVerified
	}
	return s.issueVerification(account)
}

// VerifyEmail - переход по ссылке из письма. Запись одноразовая:
// успех и протухание одинаково ее удаляют.
func (s *UserServiceImpl) VerifyEmail(accountID, token string) error {
	account, err := s.GetByID(accountID)
	if err != nil {
		return err
	}
	if account.Verified {
		return apperrors.ErrAlreadyVerified
	}

	record, err := s.verificationRepo.FindByAccount(accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecordNotFound) {
			return apperrors.ErrLinkExpired
		}
		return apperrors.InternalError(err)
	}
	if record.Expired() {
		s.verificationRepo.DeleteByAccount(accountID)
		return apperrors.ErrLinkExpired
	}
	if !auth.CheckPasswordHash(token, record.UniqueString) {
		return apperrors.ErrLinkExpired
	}

	if err := s.accountRepo.SetVerified(accountID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.verificationRepo.DeleteByAccount(accountID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Report - жалоба на пользователя.
func (s *UserServiceImpl) Report(reporterID, reportedID, description string) error {
	if _, err := s.GetByID(reportedID); err != nil {
		return err
	}

	return s.reportRepo.Create(&models.Report{
		ReportedID:  reportedID,
		ReporterID:  reporterID,
		Description: description,
	})
}

// Delete - самоудаление аккаунта.
func (s *UserServiceImpl) Delete(requesterID, targetID string) error {
	if requesterID != targetID {
		return apperrors.NewUnauthorizedError("Unauthorized")
	}
	return s.CascadeDelete(targetID)
}

// CascadeDelete удаляет аккаунт и все связанные с ним данные.
// Каскад последовательный и best-effort: сбой одного шага логируется,
// остальные шаги все равно выполняются.
func (s *UserServiceImpl) CascadeDelete(accountID string) error {
	if _, err := s.GetByID(accountID); err != nil {
		return err
	}

	jobs, err := s.jobRepo.FindByAccountID(accountID)
	if err != nil {
		logger.Warn("cascade: failed to list jobs", "account_id", accountID, "error", err)
	}
	for _, job := range jobs {
		if err := s.applicationRepo.DeleteByJob(job.ID); err != nil {
			logger.Warn("cascade: failed to delete job applications", "job_id", job.ID, "error", err)
		}
		if err := s.jobRepo.Delete(job.ID); err != nil {
			logger.Warn("cascade: failed to delete job", "job_id", job.ID, "error", err)
		}
	}

	if err := s.applicationRepo.DeleteByAccount(accountID); err != nil {
		logger.Warn("cascade: failed to delete applications", "account_id", accountID, "error", err)
	}
	if err := s.reportRepo.DeleteByAccount(accountID); err != nil {
		logger.Warn("cascade: failed to delete reports", "account_id", accountID, "error", err)
	}
	if err := s.verificationRepo.DeleteByAccount(accountID); err != nil {
		logger.Warn("cascade: failed to delete verification records", "account_id", accountID, "error", err)
	}
	if err := s.resetRepo.DeleteByAccount(accountID); err != nil {
		logger.Warn("cascade: failed to delete reset records", "account_id", accountID, "error", err)
	}

	if err := s.accountRepo.Delete(accountID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// issueVerification пересоздает запись подтверждения и шлет письмо.
// Ссылка ведет на сам сервис, а не на фронт: переход сразу подтверждает.
func (s *UserServiceImpl) issueVerification(account *models.Account) error {
	if err := s.verificationRepo.DeleteByAccount(account.ID); err != nil {
		return apperrors.InternalError(err)
	}

	uniqueString := uuid.NewString()
	hash, err := auth.HashPassword(uniqueString)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.verificationRepo.Create(&models.VerificationRecord{
		AccountID:    account.ID,
		UniqueString: hash,
		ExpiresAt:    time.Now().Add(verificationRecordTTL),
	}); err != nil {
		return apperrors.InternalError(err)
	}

	link := fmt.Sprintf("%s/user/verify/%s/%s", s.serviceURL, account.ID, uniqueString)
	if err := s.mail.SendVerification(account.Email, link); err != nil {
		s.verificationRepo.DeleteByAccount(account.ID)
		return apperrors.ErrEmailSendFailed
	}
	return nil
}

func (s *UserServiceImpl) saveUpload(dir string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	dst := path.Join(dir, storage.UniqueName(file.Filename))
	if err := s.files.Save(context.Background(), dst, src); err != nil {
		return "", apperrors.InternalError(err)
	}
	return dst, nil
}

func isImageFile(filename string) bool {
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func parseBirthday(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
