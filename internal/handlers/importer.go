package handlers

import (
	"fmt"
	"strings"

	"github.com/cityteam/guests-api/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// resolveGuest finds the guest with this exact name in the facility, or
// creates one when no match exists. Resolution is idempotent by name: a
// second call with the same name returns the guest the first call made.
// A creation race lost to a concurrent caller surfaces as a conflict.
func resolveGuest(tx *gorm.DB, facilityID uint, firstName, lastName string) (*models.Guest, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, huma.Error400BadRequest("firstName and lastName are both required")
	}

	var guest models.Guest
	err := tx.
		Where("facility_id = ? AND first_name = ? AND last_name = ?",
			facilityID, firstName, lastName).
		First(&guest).Error
	if err == nil {
		return &guest, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, storeError(err, "", "")
	}

	guest = models.Guest{
		FacilityID: facilityID,
		FirstName:  firstName,
		LastName:   lastName,
	}
	if err := tx.Create(&guest).Error; err != nil {
		return nil, storeError(err, "",
			fmt.Sprintf("Guest '%s %s' was created concurrently", firstName, lastName))
	}
	return &guest, nil
}

// validateImportRequest rejects a malformed mat declaration before any
// persistence happens.
func validateImportRequest(request *models.ImportRequest) error {
	if request.MatNumber < 1 {
		return huma.Error400BadRequest(
			fmt.Sprintf("matNumber %d must be a positive integer", request.MatNumber))
	}
	for _, feature := range request.Features {
		if !feature.Valid() {
			return huma.Error400BadRequest(
				fmt.Sprintf("invalid feature '%s' on mat %d", feature, request.MatNumber))
		}
	}
	if request.ShowerTime != nil && !models.ValidTimeOfDay(*request.ShowerTime) {
		return huma.Error400BadRequest(
			fmt.Sprintf("invalid showerTime '%s' on mat %d", *request.ShowerTime, request.MatNumber))
	}
	if request.WakeupTime != nil && !models.ValidTimeOfDay(*request.WakeupTime) {
		return huma.Error400BadRequest(
			fmt.Sprintf("invalid wakeupTime '%s' on mat %d", *request.WakeupTime, request.MatNumber))
	}
	if request.Assigned() {
		if strings.TrimSpace(request.FirstName) == "" ||
			strings.TrimSpace(request.LastName) == "" {
			return huma.Error400BadRequest(
				fmt.Sprintf("mat %d names a guest but is missing part of the name", request.MatNumber))
		}
		if request.PaymentType == nil {
			return huma.Error400BadRequest(
				fmt.Sprintf("assigned mat %d is missing paymentType", request.MatNumber))
		}
	}
	if request.PaymentType != nil && !request.PaymentType.Valid() {
		return huma.Error400BadRequest(
			fmt.Sprintf("invalid paymentType '%s' on mat %d", *request.PaymentType, request.MatNumber))
	}
	return nil
}

// importRegistrations creates one registration per import request for the
// facility and date, resolving or creating guests for assigned mats. The
// whole batch commits or none of it does: input validation and a mat
// collision pre-check run before the transaction, and any surprise inside
// it rolls everything back. Results match the input order positionally.
func importRegistrations(db *gorm.DB, facilityID uint, registrationDate string,
	requests []models.ImportRequest) (*models.ImportResults, error) {

	var facility models.Facility
	if err := db.First(&facility, facilityID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Facility %d not found", facilityID), "")
	}
	if !models.ValidDate(registrationDate) {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("invalid registrationDate '%s'", registrationDate))
	}
	if len(requests) == 0 {
		return nil, huma.Error400BadRequest("import request list is empty")
	}

	seen := make(map[int]bool, len(requests))
	mats := make([]int, 0, len(requests))
	for i := range requests {
		if err := validateImportRequest(&requests[i]); err != nil {
			return nil, err
		}
		if seen[requests[i].MatNumber] {
			return nil, huma.Error400BadRequest(
				fmt.Sprintf("matNumber %d appears more than once in this batch", requests[i].MatNumber))
		}
		seen[requests[i].MatNumber] = true
		mats = append(mats, requests[i].MatNumber)
	}

	// Pre-check for occupied mats so a conflict is reported before any
	// record of this batch exists.
	var occupied []int
	err := db.Model(&models.Registration{}).
		Where("facility_id = ? AND registration_date = ? AND mat_number IN ?",
			facilityID, registrationDate, mats).
		Order("mat_number asc").
		Pluck("mat_number", &occupied).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	if len(occupied) > 0 {
		return nil, huma.Error409Conflict(
			fmt.Sprintf("mat %d is already registered for %s", occupied[0], registrationDate))
	}

	results := &models.ImportResults{
		Registrations: make([]models.Registration, 0, len(requests)),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range requests {
			request := &requests[i]
			registration := models.Registration{
				FacilityID:       facilityID,
				Features:         request.Features,
				MatNumber:        request.MatNumber,
				RegistrationDate: registrationDate,
			}
			if request.Assigned() {
				guest, err := resolveGuest(tx, facilityID, request.FirstName, request.LastName)
				if err != nil {
					return err
				}
				registration.Comments = request.Comments
				registration.GuestID = &guest.ID
				registration.PaymentAmount = request.PaymentAmount
				registration.PaymentType = request.PaymentType
				registration.ShowerTime = request.ShowerTime
				registration.WakeupTime = request.WakeupTime
			}
			if err := tx.Create(&registration).Error; err != nil {
				return storeError(err, "",
					fmt.Sprintf("mat %d is already registered for %s", request.MatNumber, registrationDate))
			}
			results.Registrations = append(results.Registrations, registration)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// generateRegistrations expands a template into one unassigned registration
// per declared mat for the given date, ascending by mat number. Mats absent
// from the template's feature map get null features, not an empty list.
// Generation is not idempotent: a second call for the same template and
// date hits the (facility, date, mat) invariant and fails with a conflict
// before anything is written.
func generateRegistrations(db *gorm.DB, templateID uint, registrationDate string) ([]models.Registration, error) {

	var template models.Template
	if err := db.First(&template, templateID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Template %d not found", templateID), "")
	}
	if !models.ValidDate(registrationDate) {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("invalid registrationDate '%s'", registrationDate))
	}

	mats, err := models.ParseMatsList(template.AllMats)
	if err != nil {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("template %d has an invalid mats list: %s", templateID, err))
	}

	var occupied []int
	err = db.Model(&models.Registration{}).
		Where("facility_id = ? AND registration_date = ? AND mat_number IN ?",
			template.FacilityID, registrationDate, mats).
		Order("mat_number asc").
		Pluck("mat_number", &occupied).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	if len(occupied) > 0 {
		return nil, huma.Error409Conflict(
			fmt.Sprintf("mat %d is already registered for %s", occupied[0], registrationDate))
	}

	registrations := make([]models.Registration, 0, len(mats))
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, mat := range mats {
			registration := models.Registration{
				FacilityID:       template.FacilityID,
				MatNumber:        mat,
				RegistrationDate: registrationDate,
			}
			if features, ok := template.FeatureMap[mat]; ok {
				registration.Features = features
			}
			if err := tx.Create(&registration).Error; err != nil {
				return storeError(err, "",
					fmt.Sprintf("mat %d is already registered for %s", mat, registrationDate))
			}
			registrations = append(registrations, registration)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registrations, nil
}
