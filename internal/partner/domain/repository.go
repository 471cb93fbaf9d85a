package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// StatsRow is the raw aggregate over a partner's attributed bookings and
// commissions, recomputed from persisted rows on every call.
type StatsRow struct {
	Bookings           int64
	Revenue            int64
	CommissionsTotal   int64
	CommissionsPaid    int64
	CommissionsPending int64
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, partner *Partner) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Partner, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Partner, error)
	CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error)
	Stats(ctx context.Context, db *gorm.DB, partnerID snowflake.ID) (StatsRow, error)
}
