package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	catalogdomain "github.com/staysidelabs/stayside/internal/catalog/domain"
)

type unitSeed struct {
	Name          string
	Description   string
	PricePerNight int64
	MaxGuests     int
}

var demoUnits = []unitSeed{
	{Name: "Harbor View Loft", Description: "Top-floor loft overlooking the marina.", PricePerNight: 850_000, MaxGuests: 4},
	{Name: "Old Town Studio", Description: "Compact studio in the historic quarter.", PricePerNight: 450_000, MaxGuests: 2},
	{Name: "Garden Terrace Suite", Description: "Two-bedroom suite with a private terrace.", PricePerNight: 1_250_000, MaxGuests: 6},
}

// EnsureDemoUnits seeds the catalog with demo apartments for local
// development. Existing slugs are left untouched.
func EnsureDemoUnits(db *gorm.DB, repo catalogdomain.Repository) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range demoUnits {
			if err := ensureUnitTx(ctx, tx, repo, node, u); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureUnitTx(ctx context.Context, tx *gorm.DB, repo catalogdomain.Repository, node *snowflake.Node, u unitSeed) error {
	unitSlug := slug.Make(u.Name)

	existing, err := repo.FindBySlug(ctx, tx, unitSlug)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	now := time.Now().UTC()
	description := u.Description
	unit := catalogdomain.Unit{
		ID:            node.Generate(),
		Slug:          unitSlug,
		Name:          u.Name,
		Description:   &description,
		PricePerNight: u.PricePerNight,
		MaxGuests:     u.MaxGuests,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return tx.WithContext(ctx).Exec(
		`INSERT INTO units (id, slug, name, description, price_per_night, max_guests, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		unit.ID,
		unit.Slug,
		unit.Name,
		unit.Description,
		unit.PricePerNight,
		unit.MaxGuests,
		unit.Active,
		unit.CreatedAt,
		unit.UpdatedAt,
	).Error
}
