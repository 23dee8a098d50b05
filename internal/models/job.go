package models

import "gorm.io/datatypes"

type Job struct {
	BaseModel
	AccountID   string         `gorm:"type:uuid;not null;index" json:"userId"`
	Username    string         `gorm:"not null" json:"username"`
	EmailUser   string         `gorm:"not null" json:"emailUser"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	Type        string         `gorm:"not null" json:"type"`      // full-time, part-time, internship, contract
	Level       string         `gorm:"not null" json:"level"`     // entry, intermediate, expert
	WorkPlace   string         `gorm:"not null" json:"workPlace"` // remote, onsite, hybrid
	Location    string         `gorm:"not null" json:"location"`
	Salary      string         `gorm:"not null" json:"salary"`
	Categories  datatypes.JSON `gorm:"type:jsonb" json:"category"`
	Closed      bool           `gorm:"default:false" json:"closed"`

	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
}

type Application struct {
	BaseModel
	JobID     string            `gorm:"type:uuid;not null;index:idx_app_job_account" json:"jobId"`
	AccountID string            `gorm:"type:uuid;not null;index:idx_app_job_account" json:"userId"`
	Status    ApplicationStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	Message   string            `json:"message"`
}
