package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cityteam/guests-api/models"
)

type GuestClient struct {
	client *Client
}

func (g *GuestClient) FindAll(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	err := g.client.do(ctx, http.MethodGet, "/guests", nil, &guests)
	return guests, err
}

func (g *GuestClient) Find(ctx context.Context, guestID uint) (*models.Guest, error) {
	var guest models.Guest
	err := g.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/guests/%d", guestID), nil, &guest)
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (g *GuestClient) Insert(ctx context.Context, guest *models.Guest) (*models.Guest, error) {
	var inserted models.Guest
	err := g.client.do(ctx, http.MethodPost, "/guests", guest, &inserted)
	if err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (g *GuestClient) Update(ctx context.Context, guestID uint, guest *models.Guest) (*models.Guest, error) {
	var updated models.Guest
	err := g.client.do(ctx, http.MethodPut,
		fmt.Sprintf("/guests/%d", guestID), guest, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *GuestClient) Delete(ctx context.Context, guestID uint) (*models.Guest, error) {
	var deleted models.Guest
	err := g.client.do(ctx, http.MethodDelete,
		fmt.Sprintf("/guests/%d", guestID), nil, &deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (g *GuestClient) FindBansByGuestID(ctx context.Context, guestID uint) ([]models.Ban, error) {
	var bans []models.Ban
	err := g.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/guests/%d/bans", guestID), nil, &bans)
	return bans, err
}

// FindBansByGuestIDAndRegistrationDate returns the ban windows covering
// the date, or ErrNotFound when the guest is clear for that night.
func (g *GuestClient) FindBansByGuestIDAndRegistrationDate(ctx context.Context, guestID uint, registrationDate string) ([]models.Ban, error) {
	var bans []models.Ban
	err := g.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/guests/%d/bans/%s", guestID, registrationDate), nil, &bans)
	return bans, err
}
