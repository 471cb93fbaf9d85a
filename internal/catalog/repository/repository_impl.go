package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/staysidelabs/stayside/internal/catalog/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Unit, error) {
	var unit domain.Unit
	err := db.WithContext(ctx).Raw(
		`SELECT id, slug, name, description, price_per_night, max_guests, active, created_at, updated_at
		 FROM units WHERE id = ?`,
		id,
	).Scan(&unit).Error
	if err != nil {
		return nil, err
	}
	if unit.ID == 0 {
		return nil, nil
	}
	return &unit, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Unit, error) {
	var unit domain.Unit
	err := db.WithContext(ctx).Raw(
		`SELECT id, slug, name, description, price_per_night, max_guests, active, created_at, updated_at
		 FROM units WHERE slug = ? LIMIT 1`,
		slug,
	).Scan(&unit).Error
	if err != nil {
		return nil, err
	}
	if unit.ID == 0 {
		return nil, nil
	}
	return &unit, nil
}

func (r *repo) FindAllActive(ctx context.Context, db *gorm.DB) ([]domain.Unit, error) {
	var items []domain.Unit
	err := db.WithContext(ctx).Raw(
		`SELECT id, slug, name, description, price_per_night, max_guests, active, created_at, updated_at
		 FROM units WHERE active = true ORDER BY created_at ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
