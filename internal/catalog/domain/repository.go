package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Unit, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Unit, error)
	FindAllActive(ctx context.Context, db *gorm.DB) ([]Unit, error)
}
