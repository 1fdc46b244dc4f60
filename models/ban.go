package models

// Ban bars a guest from registering for any date in the inclusive
// [BanFrom, BanTo] window while Active is true.
type Ban struct {
	Model
	Active   bool   `json:"active"`
	BanFrom  string `json:"banFrom" gorm:"not null"`
	BanTo    string `json:"banTo" gorm:"not null"`
	Comments string `json:"comments"`
	GuestID  uint   `json:"guestId" gorm:"index;not null"`
	Staff    string `json:"staff"`
}

// Covers reports whether date falls inside the ban window. Dates are ISO
// strings, so lexicographic comparison is chronological.
func (b *Ban) Covers(date string) bool {
	return b.BanFrom <= date && date <= b.BanTo
}
