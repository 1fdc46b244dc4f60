package models

// Template is a reusable declaration of a facility's mat layout, used to
// bulk-generate one night's registrations. AllMats holds a mats list such
// as "1-58" or "1-10,12,20-25"; FeatureMap sparsely assigns feature tags
// to individual mats. Template names are unique within a facility.
type Template struct {
	Model
	AllMats    string     `json:"allMats" gorm:"not null"`
	Comments   string     `json:"comments"`
	FacilityID uint       `json:"facilityId" gorm:"uniqueIndex:idx_templates_facility_name;not null"`
	FeatureMap FeatureMap `json:"featureMap"`
	Name       string     `json:"name" gorm:"uniqueIndex:idx_templates_facility_name;not null"`
}
