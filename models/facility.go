package models

// Facility is a CityTeam location that owns guests, registrations and
// templates. Names are unique across all facilities.
type Facility struct {
	Model
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Email    string `json:"email"`
	Name     string `json:"name" gorm:"uniqueIndex;not null"`
	Phone    string `json:"phone"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}
