package repositories

import (
	"errors"

	"argent_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository interface {
	FindByID(id string) (*models.Report, error)
	FindAll(page, limit int) ([]models.Report, int64, error)
	Create(report *models.Report) error
	Delete(id string) error
	DeleteByIDs(ids []string) error
	DeleteByAccount(accountID string) error
	Count() (int64, error)
}

type ReportRepositoryImpl struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

func (r *ReportRepositoryImpl) FindByID(id string) (*models.Report, error) {
	var report models.Report
	err := r.db.First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) FindAll(page, limit int) ([]models.Report, int64, error) {
	var reports []models.Report
	q := r.db.Model(&models.Report{}).Order("created_at DESC")

	if page > 0 && limit > 0 {
		q = q.Offset((page - 1) * limit).Limit(limit)
	}
	if err := q.Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	total, err := r.Count()
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *ReportRepositoryImpl) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Report{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *ReportRepositoryImpl) DeleteByIDs(ids []string) error {
	return r.db.Delete(&models.Report{}, "id IN ?", ids).Error
}

// DeleteByAccount удаляет жалобы, где аккаунт фигурирует с любой стороны.
func (r *ReportRepositoryImpl) DeleteByAccount(accountID string) error {
	return r.db.Delete(&models.Report{}, "reported_id = ? OR reporter_id = ?", accountID, accountID).Error
}

func (r *ReportRepositoryImpl) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Report{}).Count(&total).Error
	return total, err
}
