package repositories

import (
	"errors"

	"argent_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	FindByID(id string) (*models.Application, error)
	FindByJobAndAccount(jobID, accountID string) (*models.Application, error)
	FindByJob(jobID string, status models.ApplicationStatus) ([]models.Application, error)
	FindByAccount(accountID string) ([]models.Application, error)
	Create(application *models.Application) error
	UpdateStatus(id string, status models.ApplicationStatus, message string) error
	Delete(id string) error
	DeleteByJob(jobID string) error
	DeleteByAccount(accountID string) error
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var app models.Application
	err := r.db.First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByJobAndAccount(jobID, accountID string) (*models.Application, error) {
	var app models.Application
	err := r.db.First(&app, "job_id = ? AND account_id = ?", jobID, accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID string, status models.ApplicationStatus) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Where("job_id = ? AND status = ?", jobID, status).
		Order("created_at ASC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindByAccount(accountID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) Create(application *models.Application) error {
	return r.db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) UpdateStatus(id string, status models.ApplicationStatus, message string) error {
	result := r.db.Model(&models.Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  status,
			"message": message,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Application{}, "id = ?", id).Error
}

func (r *ApplicationRepositoryImpl) DeleteByJob(jobID string) error {
	return r.db.Delete(&models.Application{}, "job_id = ?", jobID).Error
}

func (r *ApplicationRepositoryImpl) DeleteByAccount(accountID string) error {
	return r.db.Delete(&models.Application{}, "account_id = ?", accountID).Error
}
