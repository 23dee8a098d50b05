package repositories

import (
	"errors"

	"argent_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("record not found")

// VerificationRepository хранит одноразовые записи подтверждения email.
type VerificationRepository interface {
	FindByAccount(accountID string) (*models.VerificationRecord, error)
	Create(record *models.VerificationRecord) error
	DeleteByAccount(accountID string) error
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) FindByAccount(accountID string) (*models.VerificationRecord, error) {
	var record models.VerificationRecord
	err := r.db.First(&record, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *VerificationRepositoryImpl) Create(record *models.VerificationRecord) error {
	return r.db.Create(record).Error
}

func (r *VerificationRepositoryImpl) DeleteByAccount(accountID string) error {
	return r.db.Delete(&models.VerificationRecord{}, "account_id = ?", accountID).Error
}

// ResetPasswordRepository хранит записи запросов на сброс пароля.
type ResetPasswordRepository interface {
	FindByAccount(accountID string) (*models.ResetPasswordRecord, error)
	Create(record *models.ResetPasswordRecord) error
	DeleteByAccount(accountID string) error
}

type ResetPasswordRepositoryImpl struct {
	db *gorm.DB
}

func NewResetPasswordRepository(db *gorm.DB) ResetPasswordRepository {
	return &ResetPasswordRepositoryImpl{db: db}
}

func (r *ResetPasswordRepositoryImpl) FindByAccount(accountID string) (*models.ResetPasswordRecord, error) {
	var record models.ResetPasswordRecord
	err := r.db.First(&record, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *ResetPasswordRepositoryImpl) Create(record *models.ResetPasswordRecord) error {
	return r.db.Create(record).Error
}

func (r *ResetPasswordRepositoryImpl) DeleteByAccount(accountID string) error {
	return r.db.Delete(&models.ResetPasswordRecord{}, "account_id = ?", accountID).Error
}
