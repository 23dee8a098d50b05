package repositories

import (
	"errors"

	"argent_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailAlreadyTaken    = errors.New("email already taken")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
)

type AccountRepository interface {
	FindByID(id string) (*models.Account, error)
	FindByIDAndKind(id string, kind models.AccountKind) (*models.Account, error)
	FindByEmail(email string, kind models.AccountKind) (*models.Account, error)
	FindByUsername(username string, kind models.AccountKind) (*models.Account, error)
	Create(account *models.Account) error
	Update(account *models.Account) error
	UpdatePassword(accountID, passwordHash string) error
	SetVerified(accountID string) error
	SetStatus(accountID string, status models.AccountStatus) error
	Delete(accountID string) error
	FindUsers(page, limit int) ([]models.Account, int64, error)
	CountUsers() (int64, error)
	FindByIDs(ids []string) ([]models.Account, error)
	DeleteByIDs(ids []string) error
}

type AccountRepositoryImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

func (r *AccountRepositoryImpl) FindByID(id string) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByIDAndKind(id string, kind models.AccountKind) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, "id = ? AND kind = ?", id, kind).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByEmail(email string, kind models.AccountKind) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, "email = ? AND kind = ?", email, kind).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByUsername(username string, kind models.AccountKind) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, "username = ? AND kind = ?", username, kind).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) Create(account *models.Account) error {
	// Дубликаты проверяем заранее, чтобы вернуть осмысленную ошибку,
	// а не ошибку уникального индекса конкретной СУБД.
	var existing models.Account
	if err := r.db.Where("email = ?", account.Email).First(&existing).Error; err == nil {
		return ErrEmailAlreadyTaken
	}
	if err := r.db.Where("username = ?", account.Username).First(&existing).Error; err == nil {
		return ErrUsernameAlreadyTaken
	}

	return r.db.Create(account).Error
}

func (r *AccountRepositoryImpl) Update(account *models.Account) error {
	result := r.db.Model(account).Updates(map[string]interface{}{
		"username":         account.Username,
		"email":            account.Email,
		"full_name":        account.FullName,
		"gender":           account.Gender,
		"phone_number":     account.PhoneNumber,
		"birthday":         account.Birthday,
		"about":            account.About,
		"address_street":   account.Address.Street,
		"address_city":     account.Address.City,
		"address_country":  account.Address.Country,
		"address_zip_code": account.Address.ZipCode,
		"avatar":           account.Avatar,
		"banner":           account.Banner,
		"cv":               account.CV,
		"skills":           account.Skills,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepositoryImpl) UpdatePassword(accountID, passwordHash string) error {
	return r.db.Model(&models.Account{}).Where("id = ?", accountID).
		Update("password_hash", passwordHash).Error
}

func (r *AccountRepositoryImpl) SetVerified(accountID string) error {
	return r.db.Model(&models.Account{}).Where("id = ?", accountID).
		Update("verified", true).Error
}

func (r *AccountRepositoryImpl) SetStatus(accountID string, status models.AccountStatus) error {
	return r.db.Model(&models.Account{}).Where("id = ?", accountID).
		Update("status", status).Error
}

func (r *AccountRepositoryImpl) Delete(accountID string) error {
	return r.db.Delete(&models.Account{}, "id = ?", accountID).Error
}

func (r *AccountRepositoryImpl) FindUsers(page, limit int) ([]models.Account, int64, error) {
	var users []models.Account
	q := r.db.Where("kind = ?", models.AccountKindUser).Order("created_at DESC")

	if page > 0 && limit > 0 {
		q = q.Offset((page - 1) * limit).Limit(limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	total, err := r.CountUsers()
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *AccountRepositoryImpl) CountUsers() (int64, error) {
	var total int64
	err := r.db.Model(&models.Account{}).
		Where("kind = ?", models.AccountKindUser).Count(&total).Error
	return total, err
}

func (r *AccountRepositoryImpl) FindByIDs(ids []string) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Where("id IN ?", ids).Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepositoryImpl) DeleteByIDs(ids []string) error {
	return r.db.Delete(&models.Account{}, "id IN ?", ids).Error
}
