package domain

import (
	"context"
	"time"
)

type Service interface {
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
}

type Response struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	PricePerNight int64     `json:"price_per_night"`
	MaxGuests     int       `json:"max_guests"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
