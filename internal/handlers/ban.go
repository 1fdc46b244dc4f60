package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/cityteam/guests-api/internal/notifier"
	"github.com/cityteam/guests-api/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type BanHandler struct {
	db       *gorm.DB
	notifier notifier.Notifier
}

func NewBanHandler(db *gorm.DB, notifier notifier.Notifier) *BanHandler {
	return &BanHandler{db: db, notifier: notifier}
}

type BanIDInput struct {
	BanID uint `path:"banId"`
}

type BanOutput struct {
	Body models.Ban
}

func validateBan(db *gorm.DB, ban *models.Ban) error {
	if !models.ValidDate(ban.BanFrom) {
		return huma.Error400BadRequest(
			fmt.Sprintf("invalid banFrom '%s'", ban.BanFrom))
	}
	if !models.ValidDate(ban.BanTo) {
		return huma.Error400BadRequest(
			fmt.Sprintf("invalid banTo '%s'", ban.BanTo))
	}
	if ban.BanTo < ban.BanFrom {
		return huma.Error400BadRequest(
			fmt.Sprintf("banTo %s precedes banFrom %s", ban.BanTo, ban.BanFrom))
	}
	var guest models.Guest
	if err := db.First(&guest, ban.GuestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return huma.Error400BadRequest(
				fmt.Sprintf("guestId %d does not exist", ban.GuestID))
		}
		return storeError(err, "", "")
	}
	return nil
}

func (h *BanHandler) FindAll(ctx context.Context, input *struct{}) (*BansOutput, error) {
	res := &BansOutput{Body: []models.Ban{}}
	err := h.db.
		Order("guest_id asc, ban_from asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

func (h *BanHandler) Find(ctx context.Context, input *BanIDInput) (*BanOutput, error) {
	res := &BanOutput{}
	if err := h.db.First(&res.Body, input.BanID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Ban %d not found", input.BanID), "")
	}
	return res, nil
}

type BanInsertInput struct {
	Body models.Ban
}

func (h *BanHandler) Insert(ctx context.Context, input *BanInsertInput) (*BanOutput, error) {
	ban := input.Body
	if err := validateBan(h.db, &ban); err != nil {
		return nil, err
	}
	ban.Model = models.Model{}
	if err := h.db.Create(&ban).Error; err != nil {
		return nil, storeError(err, "", "")
	}

	if h.notifier != nil {
		var guest models.Guest
		if err := h.db.First(&guest, ban.GuestID).Error; err == nil {
			if err := h.notifier.NotifyBan(guest, ban); err != nil {
				log.Printf("Ban notification failed: %v", err)
			}
		}
	}
	return &BanOutput{Body: ban}, nil
}

type BanUpdateInput struct {
	BanID uint `path:"banId"`
	Body  models.Ban
}

func (h *BanHandler) Update(ctx context.Context, input *BanUpdateInput) (*BanOutput, error) {
	if err := validateBan(h.db, &input.Body); err != nil {
		return nil, err
	}
	var ban models.Ban
	if err := h.db.First(&ban, input.BanID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Ban %d not found", input.BanID), "")
	}

	ban.Active = input.Body.Active
	ban.BanFrom = input.Body.BanFrom
	ban.BanTo = input.Body.BanTo
	ban.Comments = input.Body.Comments
	ban.GuestID = input.Body.GuestID
	ban.Staff = input.Body.Staff
	ban.Version++

	if err := h.db.Save(&ban).Error; err != nil {
		return nil, storeError(err, "", "")
	}
	return &BanOutput{Body: ban}, nil
}

func (h *BanHandler) Delete(ctx context.Context, input *BanIDInput) (*BanOutput, error) {
	var ban models.Ban
	if err := h.db.First(&ban, input.BanID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Ban %d not found", input.BanID), "")
	}
	if err := h.db.Delete(&ban).Error; err != nil {
		return nil, storeError(err, "", "")
	}
	return &BanOutput{Body: ban}, nil
}
