package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cityteam/guests-api/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type TemplateHandler struct {
	db *gorm.DB
}

func NewTemplateHandler(db *gorm.DB) *TemplateHandler {
	return &TemplateHandler{db: db}
}

type TemplateIDInput struct {
	TemplateID uint `path:"templateId"`
}

func validateTemplate(db *gorm.DB, template *models.Template) error {
	if strings.TrimSpace(template.Name) == "" {
		return huma.Error400BadRequest("name is required")
	}
	mats, err := models.ParseMatsList(template.AllMats)
	if err != nil {
		return huma.Error400BadRequest(err.Error())
	}
	declared := make(map[int]bool, len(mats))
	for _, mat := range mats {
		declared[mat] = true
	}
	for mat, features := range template.FeatureMap {
		if !declared[mat] {
			return huma.Error400BadRequest(
				fmt.Sprintf("featureMap mat %d is not in allMats '%s'", mat, template.AllMats))
		}
		for _, feature := range features {
			if !feature.Valid() {
				return huma.Error400BadRequest(
					fmt.Sprintf("invalid feature '%s' on mat %d", feature, mat))
			}
		}
	}
	var facility models.Facility
	if err := db.First(&facility, template.FacilityID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return huma.Error400BadRequest(
				fmt.Sprintf("facilityId %d does not exist", template.FacilityID))
		}
		return storeError(err, "", "")
	}
	return nil
}

func (h *TemplateHandler) FindAll(ctx context.Context, input *struct{}) (*TemplatesOutput, error) {
	res := &TemplatesOutput{Body: []models.Template{}}
	err := h.db.
		Order("facility_id asc, name asc").
		Find(&res.Body).Error
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return res, nil
}

func (h *TemplateHandler) Find(ctx context.Context, input *TemplateIDInput) (*TemplateOutput, error) {
	res := &TemplateOutput{}
	if err := h.db.First(&res.Body, input.TemplateID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Template %d not found", input.TemplateID), "")
	}
	return res, nil
}

type TemplateInsertInput struct {
	Body models.Template
}

func (h *TemplateHandler) Insert(ctx context.Context, input *TemplateInsertInput) (*TemplateOutput, error) {
	template := input.Body
	if err := validateTemplate(h.db, &template); err != nil {
		return nil, err
	}
	template.Model = models.Model{}
	if err := h.db.Create(&template).Error; err != nil {
		return nil, storeError(err, "",
			fmt.Sprintf("Template name '%s' is already in use in facility %d",
				template.Name, template.FacilityID))
	}
	return &TemplateOutput{Body: template}, nil
}

type TemplateUpdateInput struct {
	TemplateID uint `path:"templateId"`
	Body       models.Template
}

func (h *TemplateHandler) Update(ctx context.Context, input *TemplateUpdateInput) (*TemplateOutput, error) {
	if err := validateTemplate(h.db, &input.Body); err != nil {
		return nil, err
	}
	var template models.Template
	if err := h.db.First(&template, input.TemplateID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Template %d not found", input.TemplateID), "")
	}

	template.AllMats = input.Body.AllMats
	template.Comments = input.Body.Comments
	template.FacilityID = input.Body.FacilityID
	template.FeatureMap = input.Body.FeatureMap
	template.Name = input.Body.Name
	template.Version++

	if err := h.db.Save(&template).Error; err != nil {
		return nil, storeError(err, "",
			fmt.Sprintf("Template name '%s' is already in use in facility %d",
				template.Name, template.FacilityID))
	}
	return &TemplateOutput{Body: template}, nil
}

func (h *TemplateHandler) Delete(ctx context.Context, input *TemplateIDInput) (*TemplateOutput, error) {
	var template models.Template
	if err := h.db.First(&template, input.TemplateID).Error; err != nil {
		return nil, storeError(err,
			fmt.Sprintf("Template %d not found", input.TemplateID), "")
	}
	if err := h.db.Delete(&template).Error; err != nil {
		return nil, storeError(err, "", "")
	}
	return &TemplateOutput{Body: template}, nil
}

type GenerateInput struct {
	TemplateID       uint   `path:"templateId"`
	RegistrationDate string `path:"registrationDate"`
}

// Generate expands the template into one night's unassigned registrations.
// See generateRegistrations for the batch semantics.
func (h *TemplateHandler) Generate(ctx context.Context, input *GenerateInput) (*RegistrationsOutput, error) {
	registrations, err := generateRegistrations(h.db, input.TemplateID, input.RegistrationDate)
	if err != nil {
		return nil, err
	}
	return &RegistrationsOutput{Body: registrations}, nil
}
