package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bookingdomain "github.com/staysidelabs/stayside/internal/booking/domain"
	"github.com/staysidelabs/stayside/internal/commission/domain"
	partnerdomain "github.com/staysidelabs/stayside/internal/partner/domain"
)

type fixedClock struct {
	at time.Time
}

func (f fixedClock) Now(context.Context) time.Time { return f.at }

type fakeRepo struct {
	byBooking map[snowflake.ID]*domain.Commission
	insertErr error
	inserts   int

	// missFirstLookup makes the initial FindByBookingID miss, mimicking a
	// concurrent writer that lands between the lookup and the insert.
	missFirstLookup bool
	lookups         int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byBooking: make(map[snowflake.ID]*domain.Commission)}
}

func (r *fakeRepo) Insert(ctx context.Context, db *gorm.DB, commission *domain.Commission) error {
	r.inserts++
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.byBooking[commission.BookingID]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.byBooking[commission.BookingID] = commission
	return nil
}

func (r *fakeRepo) FindByBookingID(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) (*domain.Commission, error) {
	r.lookups++
	if r.missFirstLookup && r.lookups == 1 {
		return nil, nil
	}
	return r.byBooking[bookingID], nil
}

func newService(t *testing.T, repo domain.Repository) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fixedClock{at: time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)},
		Repo:  repo,
	})
}

func testBookingAndPartner() (*bookingdomain.Booking, *partnerdomain.Partner) {
	booking := &bookingdomain.Booking{
		ID:          snowflake.ID(1001),
		TotalAmount: 2_550_000,
	}
	partner := &partnerdomain.Partner{
		ID:             snowflake.ID(2001),
		CommissionRate: 12.5,
	}
	return booking, partner
}

func TestRecordSnapshotsRateAndAmount(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(t, repo)
	booking, partner := testBookingAndPartner()

	commission, err := svc.Record(context.Background(), nil, booking, partner)
	require.NoError(t, err)

	assert.Equal(t, int64(318_750), commission.Amount)
	assert.Equal(t, 12.5, commission.Rate)
	assert.Equal(t, domain.StatusPending, commission.Status)
	assert.Equal(t, booking.ID, commission.BookingID)
	assert.Equal(t, partner.ID, commission.PartnerID)
}

func TestRecordIsIdempotentPerBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(t, repo)
	booking, partner := testBookingAndPartner()

	first, err := svc.Record(context.Background(), nil, booking, partner)
	require.NoError(t, err)

	// The partner's rate changes between calls; the snapshot must not.
	partner.CommissionRate = 20

	second, err := svc.Record(context.Background(), nil, booking, partner)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 12.5, second.Rate)
	assert.Equal(t, int64(318_750), second.Amount)
	assert.Equal(t, 1, repo.inserts)
}

func TestRecordReturnsExistingOnInsertRace(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(t, repo)
	booking, partner := testBookingAndPartner()

	raced := &domain.Commission{
		ID:        snowflake.ID(9999),
		PartnerID: partner.ID,
		BookingID: booking.ID,
		Amount:    318_750,
		Rate:      12.5,
		Status:    domain.StatusPending,
	}
	repo.missFirstLookup = true
	repo.insertErr = gorm.ErrDuplicatedKey
	repo.byBooking[booking.ID] = raced

	got, err := svc.Record(context.Background(), nil, booking, partner)
	require.NoError(t, err)
	assert.Equal(t, raced.ID, got.ID)
}
