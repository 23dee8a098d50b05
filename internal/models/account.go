package models

import (
	"time"

	"gorm.io/datatypes"
)

// Address is stored as an embedded value object on the account row.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// Account is the single identity table: Kind selects the user or admin
// variant. Admin rows leave the profile columns empty and are never banned.
type Account struct {
	BaseModel
	Kind         AccountKind   `gorm:"type:varchar(10);not null;index" json:"kind"`
	Username     string        `gorm:"uniqueIndex;not null" json:"username"`
	Email        string        `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string        `gorm:"not null" json:"-"`
	Status       AccountStatus `gorm:"type:varchar(10);default:'active'" json:"status"`
	Verified     bool          `gorm:"default:false" json:"verified"`

	// User profile
	FullName    string         `json:"fullName"`
	Gender      Gender         `gorm:"type:varchar(10)" json:"gender"`
	PhoneNumber string         `json:"phoneNumber"`
	Birthday    *time.Time     `json:"birthday"`
	About       string         `gorm:"default:'Hi there! I am using ar.gent.'" json:"about"`
	Address     Address        `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Avatar      string         `json:"avatar"`
	Banner      string         `gorm:"default:'public/defaults/profile/bannerProfile.png'" json:"banner"`
	CV          string         `gorm:"column:cv" json:"cv"`
	Skills      datatypes.JSON `gorm:"type:jsonb" json:"skills"`

	// Relations
	Jobs         []Job         `gorm:"foreignKey:AccountID" json:"-"`
	Applications []Application `gorm:"foreignKey:AccountID" json:"-"`
}

// IsBanned is meaningful for user accounts only.
func (a *Account) IsBanned() bool {
	return a.Kind == AccountKindUser && a.Status == AccountStatusBanned
}
