package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cityteam/guests-api/models"
)

type BanClient struct {
	client *Client
}

func (b *BanClient) FindAll(ctx context.Context) ([]models.Ban, error) {
	var bans []models.Ban
	err := b.client.do(ctx, http.MethodGet, "/bans", nil, &bans)
	return bans, err
}

func (b *BanClient) Find(ctx context.Context, banID uint) (*models.Ban, error) {
	var ban models.Ban
	err := b.client.do(ctx, http.MethodGet,
		fmt.Sprintf("/bans/%d", banID), nil, &ban)
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

func (b *BanClient) Insert(ctx context.Context, ban *models.Ban) (*models.Ban, error) {
	var inserted models.Ban
	err := b.client.do(ctx, http.MethodPost, "/bans", ban, &inserted)
	if err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (b *BanClient) Update(ctx context.Context, banID uint, ban *models.Ban) (*models.Ban, error) {
	var updated models.Ban
	err := b.client.do(ctx, http.MethodPut,
		fmt.Sprintf("/bans/%d", banID), ban, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (b *BanClient) Delete(ctx context.Context, banID uint) (*models.Ban, error) {
	var deleted models.Ban
	err := b.client.do(ctx, http.MethodDelete,
		fmt.Sprintf("/bans/%d", banID), nil, &deleted)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
