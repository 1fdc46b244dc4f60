package models

import (
	"time"
)

// APIKey lets automation (kiosk check-in, reporting jobs) call the API on
// behalf of a staff member without a browser login.
type APIKey struct {
	Model
	ExpiresAt  *time.Time `json:"expiresAt"`
	Key        string     `json:"key" gorm:"uniqueIndex;not null"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
	Name       string     `json:"name"`
	StaffID    uint       `json:"staffId" gorm:"index;not null"`
}
