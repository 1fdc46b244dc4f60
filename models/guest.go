package models

// Guest is a person known to a single facility. The full name is unique
// within the owning facility, but the same person may appear independently
// at other facilities.
type Guest struct {
	Model
	Comments   string `json:"comments"`
	FacilityID uint   `json:"facilityId" gorm:"uniqueIndex:idx_guests_facility_name;not null"`
	FirstName  string `json:"firstName" gorm:"uniqueIndex:idx_guests_facility_name;not null"`
	LastName   string `json:"lastName" gorm:"uniqueIndex:idx_guests_facility_name;not null"`
}
