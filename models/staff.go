package models

// Staff is an authenticated shelter worker, provisioned on first OAuth
// login and identified by the provider's subject id.
type Staff struct {
	Model
	Email     string `json:"email"`
	Name      string `json:"name"`
	SubjectID string `json:"subjectId" gorm:"uniqueIndex;not null"`
}
