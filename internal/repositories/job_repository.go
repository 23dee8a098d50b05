package repositories

import (
	"errors"

	"argent_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter - параметры выборки списка вакансий. Offset здесь уже
// нормализован сервисом (правило startIndex применяется выше).
type JobFilter struct {
	Search   string
	Location string
	Offset   int
	Limit    int
}

type JobRepository interface {
	FindByID(id string) (*models.Job, error)
	FindWithFilter(filter JobFilter) ([]models.Job, int64, error)
	FindByAccountID(accountID string) ([]models.Job, error)
	FindByLocation(location string) ([]models.Job, error)
	Create(job *models.Job) error
	Update(job *models.Job) error
	Delete(jobID string) error
	Count() (int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindWithFilter(filter JobFilter) ([]models.Job, int64, error) {
	q := r.db.Model(&models.Job{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Location != "" {
		q = q.Where("location LIKE ?", "%"+filter.Location+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Сортировка по умолчанию: новые вакансии первыми.
	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}

	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepositoryImpl) FindByAccountID(accountID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByLocation(location string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("location LIKE ?", "%"+location+"%").
		Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Model(job).Updates(map[string]interface{}{
		"title":       job.Title,
		"description": job.Description,
		"type":        job.Type,
		"level":       job.Level,
		"work_place":  job.WorkPlace,
		"location":    job.Location,
		"salary":      job.Salary,
		"categories":  job.Categories,
		"closed":      job.Closed,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(jobID string) error {
	return r.db.Delete(&models.Job{}, "id = ?", jobID).Error
}

func (r *JobRepositoryImpl) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Job{}).Count(&total).Error
	return total, err
}
