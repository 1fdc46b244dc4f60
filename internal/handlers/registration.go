package handlers

import (
	"context"
	"fmt"

	"github.com/cityteam/guests-api/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type RegistrationHandler struct {
	db *gorm.DB
}

func NewRegistrationHandler(db *gorm.DB) *RegistrationHandler {
	return &RegistrationHandler{db: db}
}

type RegistrationIDInput struct {
	RegistrationID uint `path:"registrationId"`
}

type RegistrationOutput struct {
	Body models.Registration
}

func validateRegistration(db *gorm.DB, registration *models.Registration) error {
	if registration.MatNumber < 1 {
		return huma.Error400BadRequest(
			fmt.Sprintf("matNumber %d must be a positive integer", registration.MatNumber))
	}
	if !models.ValidDate(registration.RegistrationDate) {
		return huma.Error400BadRequest(
			fmt.Sprintf("invalid registrationDate '%s'", registration.RegistrationDate))
	}
	for _, feature := range registration.Features {
		if !feature.Valid() {
			return huma.Error400BadRequest(
				fmt.Sprintf("invalid feature '%s'", feature))
		}
	}
	var facility models.Facility
	if err := db.First(&facility, registration.FacilityID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return huma.Error400BadRequest(
				fmt.Sprintf("facilityId %d does not exist", registration.FacilityID))
		}
		return storeError(err, "", "")
	}
	return nil
}

func (h *RegistrationHandler) FindAll(ctx context.Context, input *struct{}) (*RegistrationsOutput, error) {
	res := &RegistrationsOutput{Body: []models.Registration{}}
	err := h.db.
		Order("facility_id asc, registration_date asc, mat_number asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

func (h *RegistrationHandler) Find(ctx context.Context, input *RegistrationIDInput) (*RegistrationOutput, error) {
	res := &RegistrationOutput{}
	if err := h.db.First(&res.Body, input.RegistrationID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Registration %d not found", input.RegistrationID), "")
	}
	return res, nil
}

type RegistrationInsertInput struct {
	Body models.Registration
}

// Insert creates an unassigned registration. Guests are attached later via
// Assign or created in bulk by the importer.
func (h *RegistrationHandler) Insert(ctx context.Context, input *RegistrationInsertInput) (*RegistrationOutput, error) {
	registration := input.Body
	if err := validateRegistration(h.db, &registration); err != nil {
		return nil, err
	}
	registration.Model = models.Model{}
	registration.Deassign()
	if err := h.db.Create(&registration).Error; err != nil {
		return nil, storeError(err, "",
			fmt.Sprintf("mat %d is already registered for %s",
				registration.MatNumber, registration.RegistrationDate))
	}
	return &RegistrationOutput{Body: registration}, nil
}

type RegistrationUpdateInput struct {
	RegistrationID uint `path:"registrationId"`
	Body           models.Registration
}

// Update rewrites the mat-level fields. Assignment fields are managed by
// Assign/Deassign and are left untouched here.
func (h *RegistrationHandler) Update(ctx context.Context, input *RegistrationUpdateInput) (*RegistrationOutput, error) {
	if err := validateRegistration(h.db, &input.Body); err != nil {
		return nil, err
	}
	var registration models.Registration
	if err := h.db.First(&registration, input.RegistrationID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Registration %d not found", input.RegistrationID), "")
	}

	registration.FacilityID = input.Body.FacilityID
	registration.Features = input.Body.Features
	registration.MatNumber = input.Body.MatNumber
	registration.RegistrationDate = input.Body.RegistrationDate
	registration.Version++

	if err := h.db.Save(&registration).Error; err != nil {
		return nil, storeError(err, "",
			fmt.Sprintf("mat %d is already registered for %s",
				registration.MatNumber, registration.RegistrationDate))
	}
	return &RegistrationOutput{Body: registration}, nil
}

func (h *RegistrationHandler) Delete(ctx context.Context, input *RegistrationIDInput) (*RegistrationOutput, error) {
	var registration models.Registration
	if err := h.db.First(&registration, input.RegistrationID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Registration %d not found", input.RegistrationID), "")
	}
	if err := h.db.Delete(&registration).Error; err != nil {
		return nil, storeError(err, "", "")
	}
	return &RegistrationOutput{Body: registration}, nil
}

type AssignInput struct {
	RegistrationID uint `path:"registrationId"`
	Body           models.Assign
}

// Assign places a guest on a mat. The guest must belong to the same
// facility, must not already hold another mat that night, and the mat must
// not already be held by a different guest.
func (h *RegistrationHandler) Assign(ctx context.Context, input *AssignInput) (*RegistrationOutput, error) {
	var registration models.Registration
	if err := h.db.First(&registration, input.RegistrationID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Registration %d not found", input.RegistrationID), "")
	}

	var guest models.Guest
	if err := h.db.First(&guest, input.Body.GuestID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Guest %d not found", input.Body.GuestID), "")
	}
	if guest.FacilityID != registration.FacilityID {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("Guest %d belongs to facility %d, not facility %d",
				guest.ID, guest.FacilityID, registration.FacilityID))
	}
	if input.Body.PaymentType != nil && !input.Body.PaymentType.Valid() {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("invalid paymentType '%s'", *input.Body.PaymentType))
	}
	if input.Body.ShowerTime != nil && !models.ValidTimeOfDay(*input.Body.ShowerTime) {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("invalid showerTime '%s'", *input.Body.ShowerTime))
	}
	if input.Body.WakeupTime != nil && !models.ValidTimeOfDay(*input.Body.WakeupTime) {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("invalid wakeupTime '%s'", *input.Body.WakeupTime))
	}
	if registration.Assigned() && *registration.GuestID != guest.ID {
		return nil, huma.Error409Conflict(
			fmt.Sprintf("mat %d is already assigned to guest %d",
				registration.MatNumber, *registration.GuestID))
	}

	var held int64
	err := h.db.Model(&models.Registration{}).
		Where("guest_id = ? AND registration_date = ? AND id <> ?",
			guest.ID, registration.RegistrationDate, registration.ID).
		Count(&held).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	if held > 0 {
		return nil, huma.Error409Conflict(
			fmt.Sprintf("Guest %d already holds a mat for %s",
				guest.ID, registration.RegistrationDate))
	}

	registration.Comments = input.Body.Comments
	registration.GuestID = &guest.ID
	registration.PaymentAmount = input.Body.PaymentAmount
	registration.PaymentType = input.Body.PaymentType
	registration.ShowerTime = input.Body.ShowerTime
	registration.WakeupTime = input.Body.WakeupTime
	registration.Version++

	if err := h.db.Save(&registration).Error; err != nil {
		return nil, storeError(err, "", "")
	}
	return &RegistrationOutput{Body: registration}, nil
}

// Deassign releases the mat, clearing every assignment field.
func (h *RegistrationHandler) Deassign(ctx context.Context, input *RegistrationIDInput) (*RegistrationOutput, error) {
	var registration models.Registration
	if err := h.db.First(&registration, input.RegistrationID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Registration %d not found", input.RegistrationID), "")
	}
	if !registration.Assigned() {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("Registration %d is not assigned", registration.ID))
	}

	registration.Deassign()
	registration.Version++

	if err := h.db.Save(&registration).Error; err != nil {
		return nil, storeError(err, "", "")
	}
	return &RegistrationOutput{Body: registration}, nil
}
