package models

// Assign carries the fields applied when a guest is placed on an existing
// registration.
type Assign struct {
	Comments      *string      `json:"comments"`
	GuestID       uint         `json:"guestId"`
	PaymentAmount *float64     `json:"paymentAmount"`
	PaymentType   *PaymentType `json:"paymentType"`
	ShowerTime    *string      `json:"showerTime"`
	WakeupTime    *string      `json:"wakeupTime"`
}

// ImportRequest declares one mat for a bulk import. With no name fields it
// is an unassigned mat declaration; with FirstName/LastName present the mat
// is assigned, resolving or creating the named guest in the facility.
type ImportRequest struct {
	Comments      *string      `json:"comments"`
	Features      FeatureList  `json:"features"`
	FirstName     string       `json:"firstName,omitempty"`
	LastName      string       `json:"lastName,omitempty"`
	MatNumber     int          `json:"matNumber"`
	PaymentAmount *float64     `json:"paymentAmount"`
	PaymentType   *PaymentType `json:"paymentType"`
	ShowerTime    *string      `json:"showerTime"`
	WakeupTime    *string      `json:"wakeupTime"`
}

// Assigned reports whether this request names a guest for the mat.
func (r *ImportRequest) Assigned() bool {
	return r.FirstName != "" || r.LastName != ""
}

// ImportResults returns the registrations created by one import call, in
// the same order as the submitted requests.
type ImportResults struct {
	Registrations []Registration `json:"registrations"`
}
