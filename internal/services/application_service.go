package services

import (
	"argent_backend/internal/email"
	"argent_backend/internal/logger"
	"argent_backend/internal/models"
	"argent_backend/internal/repositories"
	"argent_backend/internal/services/dto"
	"argent_backend/pkg/apperrors"
)

// Тексты решений по умолчанию, когда владелец не оставил сообщение.
const (
	defaultApproveMessage = "Congratulations! You have been approved for this job."
	defaultRejectMessage  = "Unfortunately you have been rejected for this job."
)

type ApplicationService interface {
	Toggle(accountID, jobID string) (bool, error)
	CheckApplied(accountID, jobID string) (string, error)
	ListApplicants(requesterID, jobID, pane string) ([]dto.ApplicantResponse, error)
	Decide(requesterID, applicationID, applicantID, jobID string, approve bool, message string) error
	ListApplications(userID string) ([]dto.AppliedJobResponse, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	accountRepo     repositories.AccountRepository
	mail            email.Provider
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	accountRepo repositories.AccountRepository,
	mail email.Provider,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		accountRepo:     accountRepo,
		mail:            mail,
	}
}

// Toggle - отклик-переключатель. Повторный вызов при pending снимает
// отклик; approved и rejected - терминальные состояния.
func (s *ApplicationServiceImpl) Toggle(accountID, jobID string) (bool, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return false, apperrors.ErrJobNotFound
		}
		return false, apperrors.InternalError(err)
	}
	if job.AccountID == accountID {
		return false, apperrors.ErrNotJobOwner
	}

	existing, err := s.applicationRepo.FindByJobAndAccount(jobID, accountID)
	if err == nil {
		switch existing.Status {
		case models.ApplicationStatusApproved:
			return false, apperrors.ErrApplyApproved
		case models.ApplicationStatusRejected:
			return false, apperrors.ErrApplyRejected
		}
		if err := s.applicationRepo.Delete(existing.ID); err != nil {
			return false, apperrors.InternalError(err)
		}
		return false, nil
	}
	if !apperrors.Is(err, repositories.ErrApplicationNotFound) {
		return false, apperrors.InternalError(err)
	}

	account, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		return false, apperrors.InternalError(err)
	}
	if account.CV == "" {
		return false, apperrors.NewBadRequestError("Please upload your CV").
			WithDetails(dto.CVStatusData{CV: account.CV, IsExist: false})
	}

	if err := s.applicationRepo.Create(&models.Application{
		JobID:     jobID,
		AccountID: accountID,
		Status:    models.ApplicationStatusPending,
	}); err != nil {
		return false, apperrors.InternalError(err)
	}
	return true, nil
}

// CheckApplied возвращает статус отклика, сентинел owner для владельца
// вакансии или пустую строку, если отклика нет.
func (s *ApplicationServiceImpl) CheckApplied(accountID, jobID string) (string, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return "", apperrors.ErrJobNotFound
		}
		return "", apperrors.InternalError(err)
	}
	if job.AccountID == accountID {
		return models.ApplicationStatusOwner, nil
	}

	app, err := s.applicationRepo.FindByJobAndAccount(jobID, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return "", nil
		}
		return "", apperrors.InternalError(err)
	}
	return string(app.Status), nil
}

// ListApplicants - вкладка откликов владельца. Неизвестное значение pane
// молча сводится к pending.
func (s *ApplicationServiceImpl) ListApplicants(requesterID, jobID, pane string) ([]dto.ApplicantResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.AccountID != requesterID {
		return nil, apperrors.ErrNotJobOwner
	}

	apps, err := s.applicationRepo.FindByJob(jobID, normalizePane(pane))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(apps) == 0 {
		return []dto.ApplicantResponse{}, nil
	}

	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.AccountID)
	}
	accounts, err := s.accountRepo.FindByIDs(ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byID := make(map[string]*models.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].ID] = &accounts[i]
	}

	out := make([]dto.ApplicantResponse, 0, len(apps))
	for _, app := range apps {
		applicant, ok := byID[app.AccountID]
		if !ok {
			// Аккаунт удален, отклик-сирота на вкладке не показывается.
			continue
		}
		out = append(out, dto.ApplicantResponse{
			ApplicationID: app.ID,
			Status:        app.Status,
			Message:       app.Message,
			AppliedAt:     app.CreatedAt,
			Applicant:     dto.ToUserResponse(applicant),
		})
	}
	return out, nil
}

// Decide - одобрение или отклонение отклика владельцем. Решение
// одноразовое; соискатель уведомляется письмом в фоне.
func (s *ApplicationServiceImpl) Decide(requesterID, applicationID, applicantID, jobID string, approve bool, message string) error {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	if job.AccountID != requesterID {
		return apperrors.ErrNotJobOwner
	}

	app, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.InternalError(err)
	}
	if app.JobID != jobID || app.AccountID != applicantID {
		return apperrors.ErrApplicationNotFound
	}

	switch app.Status {
	case models.ApplicationStatusApproved:
		return apperrors.ErrAlreadyApproved
	case models.ApplicationStatusRejected:
		return apperrors.ErrAlreadyRejected
	}

	status := models.ApplicationStatusRejected
	if approve {
		status = models.ApplicationStatusApproved
	}
	if message == "" {
		if approve {
			message = defaultApproveMessage
		} else {
			message = defaultRejectMessage
		}
	}

	if err := s.applicationRepo.UpdateStatus(app.ID, status, message); err != nil {
		return apperrors.InternalError(err)
	}

	applicant, err := s.accountRepo.FindByID(applicantID)
	if err != nil {
		logger.Warn("decision notice skipped, applicant not found", "account_id", applicantID)
		return nil
	}

	go func(to, title, contact, note string) {
		var err error
		if approve {
			err = s.mail.SendApproveJobNotice(to, title, contact, note)
		} else {
			err = s.mail.SendRejectJobNotice(to, title, note)
		}
		if err != nil {
			logger.Warn("failed to send decision notice", "to", to, "error", err)
		}
	}(applicant.Email, job.Title, job.EmailUser, message)

	return nil
}

// ListApplications - отклики пользователя вместе с вакансиями.
func (s *ApplicationServiceImpl) ListApplications(userID string) ([]dto.AppliedJobResponse, error) {
	apps, err := s.applicationRepo.FindByAccount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.AppliedJobResponse, 0, len(apps))
	for _, app := range apps {
		job, err := s.jobRepo.FindByID(app.JobID)
		if err != nil {
			// Вакансия удалена, отклик без нее не показываем.
			continue
		}
		out = append(out, dto.AppliedJobResponse{
			Job:     dto.ToJobResponse(job),
			Status:  app.Status,
			Message: app.Message,
		})
	}
	return out, nil
}

func normalizePane(pane string) models.ApplicationStatus {
	switch models.ApplicationStatus(pane) {
	case models.ApplicationStatusApproved:
		return models.ApplicationStatusApproved
	case models.ApplicationStatusRejected:
		return models.ApplicationStatusRejected
	default:
		return models.ApplicationStatusPending
	}
}
