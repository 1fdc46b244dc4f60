package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cityteam/guests-api/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type GuestHandler struct {
	db *gorm.DB
}

func NewGuestHandler(db *gorm.DB) *GuestHandler {
	return &GuestHandler{db: db}
}

type GuestIDInput struct {
	GuestID uint `path:"guestId"`
}

func validateGuest(db *gorm.DB, guest *models.Guest) error {
	if strings.TrimSpace(guest.FirstName) == "" {
		return huma.Error400BadRequest("firstName is required")
	}
	if strings.TrimSpace(guest.LastName) == "" {
		return huma.Error400BadRequest("lastName is required")
	}
	var facility models.Facility
	if err := db.First(&facility, guest.FacilityID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return huma.Error400BadRequest(
				fmt.Sprintf("facilityId %d does not exist", guest.FacilityID))
		}
		return storeError(err, "", "")
	}
	return nil
}

func (h *GuestHandler) FindAll(ctx context.Context, input *struct{}) (*GuestsOutput, error) {
	res := &GuestsOutput{Body: []models.Guest{}}
	err := h.db.
		Order("facility_id asc, last_name asc, first_name asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

func (h *GuestHandler) Find(ctx context.Context, input *GuestIDInput) (*GuestOutput, error) {
	res := &GuestOutput{}
	if err := h.db.First(&res.Body, input.GuestID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Guest %d not found", input.GuestID), "")
	}
	return res, nil
}

type GuestInsertInput struct {
	Body models.Guest
}

func (h *GuestHandler) Insert(ctx context.Context, input *GuestInsertInput) (*GuestOutput, error) {
	guest := input.Body
	if err := validateGuest(h.db, &guest); err != nil {
		return nil, err
	}
	guest.Model = models.Model{}
	if err := h.db.Create(&guest).Error; err != nil {
		return nil, storeError(err, "",
			fmt.Sprintf("Guest '%s %s' already exists in facility %d",
				guest.FirstName, guest.LastName, guest.FacilityID))
	}
	return &GuestOutput{Body: guest}, nil
}

type GuestUpdateInput struct {
	GuestID uint `path:"guestId"`
	Body    models.Guest
}

func (h *GuestHandler) Update(ctx context.Context, input *GuestUpdateInput) (*GuestOutput, error) {
	if err := validateGuest(h.db, &input.Body); err != nil {
		return nil, err
	}
	var guest models.Guest
	if err := h.db.First(&guest, input.GuestID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Guest %d not found", input.GuestID), "")
	}

	guest.Comments = input.Body.Comments
	guest.FacilityID = input.Body.FacilityID
	guest.FirstName = input.Body.FirstName
	guest.LastName = input.Body.LastName
	guest.Version++

	if err := h.db.Save(&guest).Error; err != nil {
		return nil, storeError(err, "",
			fmt.Sprintf("Guest '%s %s' already exists in facility %d",
				guest.FirstName, guest.LastName, guest.FacilityID))
	}
	return &GuestOutput{Body: guest}, nil
}

// Delete removes a guest along with their bans and releases any mats they
// occupy.
func (h *GuestHandler) Delete(ctx context.Context, input *GuestIDInput) (*GuestOutput, error) {
	var guest models.Guest
	if err := h.db.First(&guest, input.GuestID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Guest %d not found", input.GuestID), "")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guest_id = ?", guest.ID).Delete(&models.Ban{}).Error; err != nil {
			return err
		}
		var registrations []models.Registration
		if err := tx.Where("guest_id = ?", guest.ID).Find(&registrations).Error; err != nil {
			return err
		}
		for i := range registrations {
			registrations[i].Deassign()
			registrations[i].Version++
			if err := tx.Save(&registrations[i]).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&guest).Error
	})
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return &GuestOutput{Body: guest}, nil
}

// Ban subresources ------------------------------------------------------

type BansOutput struct {
	Body []models.Ban
}

func (h *GuestHandler) FindBansByGuestID(ctx context.Context, input *GuestIDInput) (*BansOutput, error) {
	res := &BansOutput{Body: []models.Ban{}}
	err := h.db.
		Where("guest_id = ?", input.GuestID).
		Order("ban_from asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

type BansByDateInput struct {
	GuestID          uint   `path:"guestId"`
	RegistrationDate string `path:"registrationDate"`
}

// FindBansByGuestIDAndRegistrationDate returns the ban windows covering
// the given date, or a 404 when none do. Inactive bans are included so
// staff can see expired history for the date.
func (h *GuestHandler) FindBansByGuestIDAndRegistrationDate(ctx context.Context, input *BansByDateInput) (*BansOutput, error) {
	if !models.ValidDate(input.RegistrationDate) {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("invalid registrationDate '%s'", input.RegistrationDate))
	}
	res := &BansOutput{Body: []models.Ban{}}
	err := h.db.
		Where("guest_id = ? AND ban_from <= ? AND ban_to >= ?",
			input.GuestID, input.RegistrationDate, input.RegistrationDate).
		Order("ban_from asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	if len(res.Body) == 0 {
		return nil, huma.Error404NotFound(
			fmt.Sprintf("No ban covers %s for guest %d",
				input.RegistrationDate, input.GuestID))
	}
	return res, nil
}
