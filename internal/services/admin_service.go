package services

import (
	"argent_backend/internal/auth"
	"argent_backend/internal/logger"
	"argent_backend/internal/models"
	"argent_backend/internal/repositories"
	"argent_backend/internal/services/dto"
	"argent_backend/pkg/apperrors"
)

type AdminService interface {
	Create(req *dto.CreateAdminRequest) (*models.Account, error)
	GetByID(adminID string) (*models.Account, error)
	ListUsers(page, limit int) ([]models.Account, int64, error)
	TotalUsers() (int64, error)
	ToggleBan(userID string) (models.AccountStatus, error)
	DeleteUser(userID string) error
	DeleteUsers(ids []string) error
	ListReports(page, limit int) ([]models.Report, int64, error)
	TotalReports() (int64, error)
	GetReport(reportID string) (*models.Report, error)
	DeleteReport(reportID string) error
	DeleteReports(ids []string) error
}

type AdminServiceImpl struct {
	accountRepo repositories.AccountRepository
	reportRepo  repositories.ReportRepository
	userService UserService
}

func NewAdminService(
	accountRepo repositories.AccountRepository,
	reportRepo repositories.ReportRepository,
	userService UserService,
) AdminService {
	return &AdminServiceImpl{
		accountRepo: accountRepo,
		reportRepo:  reportRepo,
		userService: userService,
	}
}

// Create - новый администратор. Админ-аккаунты создаются верифицированными,
// профильные колонки остаются пустыми.
func (s *AdminServiceImpl) Create(req *dto.CreateAdminRequest) (*models.Account, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	account := &models.Account{
		Kind:         models.AccountKindAdmin,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       models.AccountStatusActive,
		Verified:     true,
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
	return account, nil
}

func (s *AdminServiceImpl) GetByID(adminID string) (*models.Account, error) {
	account, err := s.accountRepo.FindByIDAndKind(adminID, models.AccountKindAdmin)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return account, nil
}

func (s *AdminServiceImpl) ListUsers(page, limit int) ([]models.Account, int64, error) {
	users, total, err := s.accountRepo.FindUsers(page, limit)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return users, total, nil
}

func (s *AdminServiceImpl) TotalUsers() (int64, error) {
	total, err := s.accountRepo.CountUsers()
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return total, nil
}

// ToggleBan переключает статус пользователя и возвращает новый.
// Активные сессии забаненного гаснут на следующем запросе: middleware
// перечитывает аккаунт из БД.
func (s *AdminServiceImpl) ToggleBan(userID string) (models.AccountStatus, error) {
	account, err := s.accountRepo.FindByIDAndKind(userID, models.AccountKindUser)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.InternalError(err)
	}

	status := models.AccountStatusBanned
	if account.Status == models.AccountStatusBanned {
		status = models.AccountStatusActive
	}
	if err := s.accountRepo.SetStatus(userID, status); err != nil {
		return "", apperrors.InternalError(err)
	}
	return status, nil
}

// DeleteUser - удаление пользователя администратором с тем же каскадом,
// что и самоудаление.
func (s *AdminServiceImpl) DeleteUser(userID string) error {
	return s.userService.CascadeDelete(userID)
}

// DeleteUsers - массовое удаление. Best-effort: сбой на одном id
// не прерывает остальные.
func (s *AdminServiceImpl) DeleteUsers(ids []string) error {
	for _, id := range ids {
		if err := s.userService.CascadeDelete(id); err != nil {
			logger.Warn("bulk delete: failed to delete user", "account_id", id, "error", err)
		}
	}
	return nil
}

func (s *AdminServiceImpl) ListReports(page, limit int) ([]models.Report, int64, error) {
	reports, total, err := s.reportRepo.FindAll(page, limit)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return reports, total, nil
}

func (s *AdminServiceImpl) TotalReports() (int64, error) {
	total, err := s.reportRepo.Count()
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return total, nil
}

func (s *AdminServiceImpl) GetReport(reportID string) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(reportID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return report, nil
}

func (s *AdminServiceImpl) DeleteReport(reportID string) error {
	if err := s.reportRepo.Delete(reportID); err != nil {
		if apperrors.Is(err, repositories.ErrReportNotFound) {
			return apperrors.ErrReportNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) DeleteReports(ids []string) error {
	if err := s.reportRepo.DeleteByIDs(ids); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
