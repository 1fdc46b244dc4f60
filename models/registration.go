package models

// Registration is one mat slot at a facility for one night. At most one
// registration exists per (facility, date, mat). The assignment fields are
// all null until a guest is assigned to the mat.
type Registration struct {
	Model
	Comments         *string      `json:"comments"`
	FacilityID       uint         `json:"facilityId" gorm:"uniqueIndex:idx_registrations_facility_date_mat;not null"`
	Features         FeatureList  `json:"features"`
	GuestID          *uint        `json:"guestId"`
	MatNumber        int          `json:"matNumber" gorm:"uniqueIndex:idx_registrations_facility_date_mat;not null"`
	PaymentAmount    *float64     `json:"paymentAmount"`
	PaymentType      *PaymentType `json:"paymentType"`
	RegistrationDate string       `json:"registrationDate" gorm:"uniqueIndex:idx_registrations_facility_date_mat;not null"`
	ShowerTime       *string      `json:"showerTime"`
	WakeupTime       *string      `json:"wakeupTime"`
}

// Assigned reports whether a guest currently occupies this mat.
func (r *Registration) Assigned() bool {
	return r.GuestID != nil
}

// Deassign clears the guest and every assignment-only field, returning the
// registration to its unassigned state. Features describe the mat itself
// and survive deassignment.
func (r *Registration) Deassign() {
	r.Comments = nil
	r.GuestID = nil
	r.PaymentAmount = nil
	r.PaymentType = nil
	r.ShowerTime = nil
	r.WakeupTime = nil
}
