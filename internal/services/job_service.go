package services

import (
	"argent_backend/internal/models"
	"argent_backend/internal/repositories"
	"argent_backend/internal/services/dto"
	"argent_backend/pkg/apperrors"
)

// Размер страницы списка вакансий по умолчанию.
const defaultJobPageSize = 10

type JobService interface {
	Create(accountID string, req *dto.CreateJobRequest) (*models.Job, error)
	List(q dto.JobListQuery) ([]models.Job, int64, error)
	Nearly(accountID string) ([]models.Job, error)
	GetByID(jobID string) (*models.Job, *models.Account, error)
	GetByUser(userID string) ([]models.Job, error)
	Update(requesterID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(requesterID, jobID string) error
}

type JobServiceImpl struct {
	jobRepo         repositories.JobRepository
	accountRepo     repositories.AccountRepository
	applicationRepo repositories.ApplicationRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	accountRepo repositories.AccountRepository,
	applicationRepo repositories.ApplicationRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:         jobRepo,
		accountRepo:     accountRepo,
		applicationRepo: applicationRepo,
	}
}

// Create - новая вакансия. Имя и email владельца денормализуются в строку
// вакансии, карточка рендерится без дополнительного запроса.
func (s *JobServiceImpl) Create(accountID string, req *dto.CreateJobRequest) (*models.Job, error) {
	account, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	job := &models.Job{
		AccountID:   account.ID,
		Username:    account.Username,
		EmailUser:   account.Email,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Level:       req.Level,
		WorkPlace:   req.WorkPlace,
		Location:    req.Location,
		Salary:      req.Salary,
		Categories:  dto.StringsToJSON(req.Categories),
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// List - страница вакансий, новые первыми. startIndex учитывается только
// когда он кратен limit, иначе смещение считается от page.
func (s *JobServiceImpl) List(q dto.JobListQuery) ([]models.Job, int64, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultJobPageSize
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	offset := (page - 1) * limit
	if q.StartIndex > 0 && q.StartIndex%limit == 0 {
		offset = q.StartIndex
	}

	jobs, total, err := s.jobRepo.FindWithFilter(repositories.JobFilter{
		Search:   q.Search,
		Location: q.Location,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return jobs, total, nil
}

// Nearly - вакансии в городе запрашивающего.
func (s *JobServiceImpl) Nearly(accountID string) ([]models.Job, error) {
	account, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if account.Address.City == "" {
		return []models.Job{}, nil
	}

	jobs, err := s.jobRepo.FindByLocation(account.Address.City)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

// GetByID возвращает вакансию вместе с аккаунтом владельца (нужен аватар
// на карточке). Отсутствие владельца не роняет запрос.
func (s *JobServiceImpl) GetByID(jobID string) (*models.Job, *models.Account, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, nil, apperrors.ErrJobNotFound
		}
		return nil, nil, apperrors.InternalError(err)
	}

	owner, err := s.accountRepo.FindByID(job.AccountID)
	if err != nil {
		owner = nil
	}
	return job, owner, nil
}

func (s *JobServiceImpl) GetByUser(userID string) ([]models.Job, error) {
	jobs, err := s.jobRepo.FindByAccountID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

// Update - правка вакансии владельцем.
func (s *JobServiceImpl) Update(requesterID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownedJob(requesterID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Type != nil {
		job.Type = *req.Type
	}
	if req.Level != nil {
		job.Level = *req.Level
	}
	if req.WorkPlace != nil {
		job.WorkPlace = *req.WorkPlace
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.Categories != nil {
		job.Categories = dto.StringsToJSON(req.Categories)
	}
	if req.Closed != nil {
		job.Closed = *req.Closed
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// Delete - удаление вакансии владельцем вместе с откликами.
func (s *JobServiceImpl) Delete(requesterID, jobID string) error {
	if _, err := s.ownedJob(requesterID, jobID); err != nil {
		return err
	}

	if err := s.applicationRepo.DeleteByJob(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) ownedJob(requesterID, jobID string) (*models.Job, error) {
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
	return job, nil
}
