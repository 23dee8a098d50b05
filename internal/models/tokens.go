package models

import "time"

// VerificationRecord holds a bcrypt hash of the emailed unique string.
// Expired records are inert: readers treat them as absent and delete them
// on the next access, there is no scheduled cleanup.
type VerificationRecord struct {
	BaseModel
	AccountID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	UniqueString string    `gorm:"not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expiresAt"`
}

func (v *VerificationRecord) Expired() bool {
	return time.Now().After(v.ExpiresAt)
}

// ResetPasswordRecord mirrors VerificationRecord with a shorter TTL.
type ResetPasswordRecord struct {
	BaseModel
	AccountID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	UniqueString string    `gorm:"not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expiresAt"`
}

func (r *ResetPasswordRecord) Expired() bool {
	return time.Now().After(r.ExpiresAt)
}

// Report is a user-on-user moderation report, reviewed from the admin panel.
type Report struct {
	BaseModel
	ReportedID  string `gorm:"type:uuid;not null;index" json:"userReportedId"`
	ReporterID  string `gorm:"type:uuid;not null" json:"userReportById"`
	Description string `gorm:"not null" json:"description"`
}
