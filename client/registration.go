package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cityteam/guests-api/models"
)

type RegistrationClient struct {
	client *Client
}

func (r *RegistrationClient) FindAll(ctx context.Context) ([]models.Registration, error) {
	var registrations []models.Registration
	err := r.client.do(ctx, http.MethodGet, "/registrations", nil, &registrations)
	return registrations, err
}

func (r *RegistrationClient) Find(ctx context.Context, registrationID uint) (*models.Registration, error) {
	var registration models.Registration
	err := r.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/registrations/%d", registrationID), nil, &registration)
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *RegistrationClient) Insert(ctx context.Context, registration *models.Registration) (*models.Registration, error) {
	var inserted models.Registration
	err := r.client.do(ctx, http.MethodPost, "/registrations", registration, &inserted)
	if err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *RegistrationClient) Update(ctx context.Context, registrationID uint, registration *models.Registration) (*models.Registration, error) {
	var updated models.Registration
	err := r.client.do(ctx, http.MethodPut,
		fmt.Sprintf("/registrations/%d", registrationID), registration, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *RegistrationClient) Delete(ctx context.Context, registrationID uint) (*models.Registration, error) {
	var deleted models.Registration
	err := r.client.do(ctx, http.MethodDelete,
		fmt.Sprintf("/registrations/%d", registrationID), nil, &deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// Assign places a guest on the mat.
func (r *RegistrationClient) Assign(ctx context.Context, registrationID uint, assign *models.Assign) (*models.Registration, error) {
	var registration models.Registration
	err := r.client.do(ctx, http.MethodPost,
		fmt.Sprintf("/registrations/%d/assign", registrationID), assign, &registration)
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

// Deassign releases the mat, clearing all assignment fields.
func (r *RegistrationClient) Deassign(ctx context.Context, registrationID uint) (*models.Registration, error) {
	var registration models.Registration
	err := r.client.do(ctx, http.MethodPost,
		fmt.Sprintf("/registrations/%d/deassign", registrationID), nil, &registration)
	if err != nil {
		return nil, err
	}
	return &registration, nil
}
