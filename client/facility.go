package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cityteam/guests-api/models"
)

// FacilityClient covers facilities and their owned subresources.
type FacilityClient struct {
	client *Client
}

func (f *FacilityClient) FindAll(ctx context.Context) ([]models.Facility, error) {
	var facilities []models.Facility
	err := f.client.do(ctx, http.MethodGet, "/facilities", nil, &facilities)
	return facilities, err
}

func (f *FacilityClient) Find(ctx context.Context, facilityID uint) (*models.Facility, error) {
	var facility models.Facility
	err := f.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/facilities/%d", facilityID), nil, &facility)
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

func (f *FacilityClient) FindByName(ctx context.Context, name string) ([]models.Facility, error) {
	var facilities []models.Facility
	err := f.client.do(ctx, http.MethodGet,
		"/facilities/name/"+url.PathEscape(name), nil, &facilities)
	return facilities, err
}

func (f *FacilityClient) FindByNameExact(ctx context.Context, name string) (*models.Facility, error) {
	var facility models.Facility
	err := f.client.do(ctx, http.MethodGet,
		"/facilities/nameExact/"+url.PathEscape(name), nil, &facility)
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

func (f *FacilityClient) Insert(ctx context.Context, facility *models.Facility) (*models.Facility, error) {
	var inserted models.Facility
	err := f.client.do(ctx, http.MethodPost, "/facilities", facility, &inserted)
	if err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (f *FacilityClient) Update(ctx context.Context, facilityID uint, facility *models.Facility) (*models.Facility, error) {
	var updated models.Facility
	err := f.client.do(ctx, http.MethodPut,
		fmt.Sprintf("/facilities/%d", facilityID), facility, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (f *FacilityClient) Delete(ctx context.Context, facilityID uint) (*models.Facility, error) {
	var deleted models.Facility
	err := f.client.do(ctx, http.MethodDelete,
		fmt.Sprintf("/facilities/%d", facilityID), nil, &deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (f *FacilityClient) FindGuestsByFacilityID(ctx context.Context, facilityID uint) ([]models.Guest, error) {
	var guests []models.Guest
	err := f.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/facilities/%d/guests", facilityID), nil, &guests)
	return guests, err
}

func (f *FacilityClient) FindGuestsByName(ctx context.Context, facilityID uint, name string) ([]models.Guest, error) {
	var guests []models.Guest
	err := f.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/facilities/%d/guests/name/%s", facilityID, url.PathEscape(name)),
		nil, &guests)
	return guests, err
}

func (f *FacilityClient) FindGuestsByNameExact(ctx context.Context, facilityID uint, firstName, lastName string) (*models.Guest, error) {
	var guest models.Guest
	err := f.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/facilities/%d/guests/nameExact/%s/%s",
			facilityID, url.PathEscape(firstName), url.PathEscape(lastName)),
		nil, &guest)
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (f *FacilityClient) FindRegistrationsByFacilityAndDate(ctx context.Context, facilityID uint, registrationDate string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := f.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/facilities/%d/registrations/%s", facilityID, registrationDate),
		nil, &registrations)
	return registrations, err
}

func (f *FacilityClient) DeleteRegistrationsByFacilityAndDate(ctx context.Context, facilityID uint, registrationDate string) ([]models.Registration, error) {
	var registrations []models.Registration
	err := f.client.do(ctx, http.MethodDelete,
		fmt.Sprintf("/facilities/%d/registrations/%s", facilityID, registrationDate),
		nil, &registrations)
	return registrations, err
}

// ImportRegistrationsByFacilityAndDate bulk-creates one night's
// registrations. The returned registrations positionally match the
// submitted requests; a rejected batch leaves nothing committed.
func (f *FacilityClient) ImportRegistrationsByFacilityAndDate(ctx context.Context, facilityID uint, registrationDate string, requests []models.ImportRequest) (*models.ImportResults, error) {
	var results models.ImportResults
	err := f.client.do(ctx, http.MethodPost,
		fmt.Sprintf("/facilities/%d/registrations/%s/imports", facilityID, registrationDate),
		requests, &results)
	if err != nil {
		return nil, err
	}
	return &results, nil
}

func (f *FacilityClient) FindTemplatesByFacilityID(ctx context.Context, facilityID uint) ([]models.Template, error) {
	var templates []models.Template
	err := f.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/facilities/%d/templates", facilityID), nil, &templates)
	return templates, err
}

func (f *FacilityClient) FindTemplatesByName(ctx context.Context, facilityID uint, name string) ([]models.Template, error) {
	var templates []models.Template
	err := f.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/facilities/%d/templates/name/%s", facilityID, url.PathEscape(name)),
		nil, &templates)
	return templates, err
}

func (f *FacilityClient) FindTemplatesByNameExact(ctx context.Context, facilityID uint, name string) (*models.Template, error) {
	var template models.Template
	err := f.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/facilities/%d/templates/nameExact/%s", facilityID, url.PathEscape(name)),
		nil, &template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}
