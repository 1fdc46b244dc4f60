package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cityteam/guests-api/models"
)

type TemplateClient struct {
	client *Client
}

func (t *TemplateClient) FindAll(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	err := t.client.do(ctx, http.MethodGet, "/templates", nil, &templates)
	return templates, err
}

func (t *TemplateClient) Find(ctx context.Context, templateID uint) (*models.Template, error) {
	var template models.Template
	err := t.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/templates/%d", templateID), nil, &template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (t *TemplateClient) Insert(ctx context.Context, template *models.Template) (*models.Template, error) {
	var inserted models.Template
	err := t.client.do(ctx, http.MethodPost, "/templates", template, &inserted)
	if err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (t *TemplateClient) Update(ctx context.Context, templateID uint, template *models.Template) (*models.Template, error) {
	var updated models.Template
	err := t.client.do(ctx, http.MethodPut,
		fmt.Sprintf("/templates/%d", templateID), template, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (t *TemplateClient) Delete(ctx context.Context, templateID uint) (*models.Template, error) {
	var deleted models.Template
	err := t.client.do(ctx, http.MethodDelete,
		fmt.Sprintf("/templates/%d", templateID), nil, &deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// Generate creates one night's unassigned registrations from the template,
// ascending by mat number. A second call for the same date fails with
// ErrNotUnique unless the night is cleared first.
func (t *TemplateClient) Generate(ctx context.Context, templateID uint, registrationDate string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := t.client.do(ctx, http.MethodPost,
		fmt.Sprintf("/templates/%d/generate/%s", templateID, registrationDate),
		nil, &registrations)
	return registrations, err
}
