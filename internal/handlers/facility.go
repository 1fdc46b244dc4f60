package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cityteam/guests-api/internal/notifier"
	"github.com/cityteam/guests-api/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type FacilityHandler struct {
	db       *gorm.DB
	notifier notifier.Notifier
}

func NewFacilityHandler(db *gorm.DB, notifier notifier.Notifier) *FacilityHandler {
	return &FacilityHandler{db: db, notifier: notifier}
}

type FacilityIDInput struct {
	FacilityID uint `path:"facilityId"`
}

type FacilityOutput struct {
	Body models.Facility
}

type FacilitiesOutput struct {
	Body []models.Facility
}

func validateFacility(facility *models.Facility) error {
	if strings.TrimSpace(facility.Name) == "" {
		return huma.Error400BadRequest("name is required")
	}
	return nil
}

func (h *FacilityHandler) FindAll(ctx context.Context, input *struct{}) (*FacilitiesOutput, error) {
	res := &FacilitiesOutput{Body: []models.Facility{}}
	if err := h.db.Order("name asc").Find(&res.Body).Error; err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

func (h *FacilityHandler) Find(ctx context.Context, input *FacilityIDInput) (*FacilityOutput, error) {
	res := &FacilityOutput{}
	if err := h.db.First(&res.Body, input.FacilityID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Facility %d not found", input.FacilityID), "")
	}
	return res, nil
}

type FacilityNameInput struct {
	Name string `path:"name"`
}

// FindByName matches facilities whose name contains the given text,
// case-insensitively, ordered by name.
func (h *FacilityHandler) FindByName(ctx context.Context, input *FacilityNameInput) (*FacilitiesOutput, error) {
	res := &FacilitiesOutput{Body: []models.Facility{}}
	err := h.db.
		Where("name LIKE ? COLLATE NOCASE", "%"+input.Name+"%").
		Order("name asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

// FindByNameExact matches on the exact, case-sensitive facility name.
func (h *FacilityHandler) FindByNameExact(ctx context.Context, input *FacilityNameInput) (*FacilityOutput, error) {
	res := &FacilityOutput{}
	if err := h.db.Where("name = ?", input.Name).First(&res.Body).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Facility '%s' not found", input.Name), "")
	}
	return res, nil
}

type FacilityInsertInput struct {
	Body models.Facility
}

func (h *FacilityHandler) Insert(ctx context.Context, input *FacilityInsertInput) (*FacilityOutput, error) {
	facility := input.Body
	if err := validateFacility(&facility); err != nil {
		return nil, err
	}
	facility.Model = models.Model{}
	if err := h.db.Create(&facility).Error; err != nil {
		return nil, storeError(err, "",
			fmt.Sprintf("Facility name '%s' is already in use", facility.Name))
	}
	return &FacilityOutput{Body: facility}, nil
}

type FacilityUpdateInput struct {
	FacilityID uint `path:"facilityId"`
	Body       models.Facility
}

func (h *FacilityHandler) Update(ctx context.Context, input *FacilityUpdateInput) (*FacilityOutput, error) {
	if err := validateFacility(&input.Body); err != nil {
		return nil, err
	}
	var facility models.Facility
	if err := h.db.First(&facility, input.FacilityID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Facility %d not found", input.FacilityID), "")
	}

	facility.Address1 = input.Body.Address1
	facility.Address2 = input.Body.Address2
	facility.City = input.Body.City
	facility.Email = input.Body.Email
	facility.Name = input.Body.Name
	facility.Phone = input.Body.Phone
	facility.State = input.Body.State
	facility.ZipCode = input.Body.ZipCode
	facility.Version++

	if err := h.db.Save(&facility).Error; err != nil {
		return nil, storeError(err, "",
			fmt.Sprintf("Facility name '%s' is already in use", facility.Name))
	}
	return &FacilityOutput{Body: facility}, nil
}

// Delete removes a facility and everything it owns.
func (h *FacilityHandler) Delete(ctx context.Context, input *FacilityIDInput) (*FacilityOutput, error) {
	var facility models.Facility
	if err := h.db.First(&facility, input.FacilityID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Facility %d not found", input.FacilityID), "")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guest_id IN (?)",
			tx.Model(&models.Guest{}).Select("id").Where("facility_id = ?", facility.ID),
		).Delete(&models.Ban{}).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{
			&models.Registration{}, &models.Guest{}, &models.Template{},
		} {
			if err := tx.Where("facility_id = ?", facility.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&facility).Error
	})
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return &FacilityOutput{Body: facility}, nil
}

// Guest subresources ----------------------------------------------------

type GuestsOutput struct {
	Body []models.Guest
}

func (h *FacilityHandler) FindGuestsByFacilityID(ctx context.Context, input *FacilityIDInput) (*GuestsOutput, error) {
	res := &GuestsOutput{Body: []models.Guest{}}
	err := h.db.
		Where("facility_id = ?", input.FacilityID).
		Order("last_name asc, first_name asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

type GuestsByNameInput struct {
	FacilityID uint   `path:"facilityId"`
	Name       string `path:"name"`
}

// FindGuestsByName matches guests whose first or last name contains the
// given text, case-insensitively.
func (h *FacilityHandler) FindGuestsByName(ctx context.Context, input *GuestsByNameInput) (*GuestsOutput, error) {
	res := &GuestsOutput{Body: []models.Guest{}}
	match := "%" + input.Name + "%"
	err := h.db.
		Where("facility_id = ?", input.FacilityID).
		Where("first_name LIKE ? COLLATE NOCASE OR last_name LIKE ? COLLATE NOCASE", match, match).
		Order("last_name asc, first_name asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

type GuestByNameExactInput struct {
	FacilityID uint   `path:"facilityId"`
	FirstName  string `path:"firstName"`
	LastName   string `path:"lastName"`
}

type GuestOutput struct {
	Body models.Guest
}

func (h *FacilityHandler) FindGuestsByNameExact(ctx context.Context, input *GuestByNameExactInput) (*GuestOutput, error) {
	res := &GuestOutput{}
	err := h.db.
		Where("facility_id = ? AND first_name = ? AND last_name = ?",
			input.FacilityID, input.FirstName, input.LastName).
		First(&res.Body).Error
	if err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Guest '%s %s' not found in facility %d",
				input.FirstName, input.LastName, input.FacilityID), "")
	}
	return res, nil
}

// Registration subresources ---------------------------------------------

type FacilityDateInput struct {
	FacilityID       uint   `path:"facilityId"`
	RegistrationDate string `path:"registrationDate"`
}

type RegistrationsOutput struct {
	Body []models.Registration
}

func (h *FacilityHandler) FindRegistrationsByFacilityAndDate(ctx context.Context, input *FacilityDateInput) (*RegistrationsOutput, error) {
	res := &RegistrationsOutput{Body: []models.Registration{}}
	err := h.db.
		Where("facility_id = ? AND registration_date = ?",
			input.FacilityID, input.RegistrationDate).
		Order("mat_number asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

// DeleteRegistrationsByFacilityAndDate clears one night's mats, returning
// the deleted registrations in mat order. Callers regenerating a night
// from a template use this first.
func (h *FacilityHandler) DeleteRegistrationsByFacilityAndDate(ctx context.Context, input *FacilityDateInput) (*RegistrationsOutput, error) {
	res := &RegistrationsOutput{Body: []models.Registration{}}
	err := h.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("facility_id = ? AND registration_date = ?",
				input.FacilityID, input.RegistrationDate).
			Order("mat_number asc").
			Find(&res.Body).Error
		if err != nil {
			return err
		}
		return tx.
			Where("facility_id = ? AND registration_date = ?",
				input.FacilityID, input.RegistrationDate).
			Delete(&models.Registration{}).Error
	})
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

// Template subresources -------------------------------------------------

type TemplatesOutput struct {
	Body []models.Template
}

func (h *FacilityHandler) FindTemplatesByFacilityID(ctx context.Context, input *FacilityIDInput) (*TemplatesOutput, error) {
	res := &TemplatesOutput{Body: []models.Template{}}
	err := h.db.
		Where("facility_id = ?", input.FacilityID).
		Order("name asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

type TemplatesByNameInput struct {
	FacilityID uint   `path:"facilityId"`
	Name       string `path:"name"`
}

func (h *FacilityHandler) FindTemplatesByName(ctx context.Context, input *TemplatesByNameInput) (*TemplatesOutput, error) {
	res := &TemplatesOutput{Body: []models.Template{}}
	err := h.db.
		Where("facility_id = ?", input.FacilityID).
		Where("name LIKE ? COLLATE NOCASE", "%"+input.Name+"%").
		Order("name asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

type TemplateOutput struct {
	Body models.Template
}

func (h *FacilityHandler) FindTemplatesByNameExact(ctx context.Context, input *TemplatesByNameInput) (*TemplateOutput, error) {
	res := &TemplateOutput{}
	err := h.db.
		Where("facility_id = ? AND name = ?", input.FacilityID, input.Name).
		First(&res.Body).Error
	if err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Template '%s' not found in facility %d",
				input.Name, input.FacilityID), "")
	}
	return res, nil
}

// Import ----------------------------------------------------------------

type ImportInput struct {
	FacilityID       uint   `path:"facilityId"`
	RegistrationDate string `path:"registrationDate"`
	Body             []models.ImportRequest
}

type ImportOutput struct {
	Body models.ImportResults
}

// ImportRegistrations bulk-creates one night's registrations from an
// ordered list of mat declarations. See importRegistrations for the
// batch semantics.
func (h *FacilityHandler) ImportRegistrations(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	results, err := importRegistrations(h.db, input.FacilityID, input.RegistrationDate, input.Body)
	if err != nil {
		return nil, err
	}
	if h.notifier != nil {
		var facility models.Facility
		if err := h.db.First(&facility, input.FacilityID).Error; err == nil {
			if err := h.notifier.NotifyImport(facility, input.RegistrationDate,
				len(results.Registrations)); err != nil {
				log.Printf("Import notification failed: %v", err)
			}
		}
	}
	return &ImportOutput{Body: *results}, nil
}
