package models

import (
	"time"
)

// Model is the audit base embedded in every persisted entity. The server
// owns all four fields: Published is set once at insert, Updated refreshes
// on every save, and Version starts at 0 and increments on each update.
type Model struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Published time.Time `json:"published" gorm:"autoCreateTime"`
	Updated   time.Time `json:"updated" gorm:"autoUpdateTime"`
	Version   int       `json:"version"`
}
