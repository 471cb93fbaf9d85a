package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	availabilitydomain "github.com/staysidelabs/stayside/internal/availability/domain"
	"github.com/staysidelabs/stayside/internal/booking/domain"
	catalogdomain "github.com/staysidelabs/stayside/internal/catalog/domain"
	commissiondomain "github.com/staysidelabs/stayside/internal/commission/domain"
	"github.com/staysidelabs/stayside/internal/identifier"
	partnerdomain "github.com/staysidelabs/stayside/internal/partner/domain"
)

type fixedClock struct {
	at time.Time
}

func (f fixedClock) Now(context.Context) time.Time { return f.at }

// fakeBookingRepo keeps bookings in memory and enforces the same constraints
// the schema does: unique booking codes, unique idempotency keys, and no
// overlapping live ranges per unit.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking

	// dupNextInserts fails that many inserts with a duplicate-key error,
	// simulating a writer that claimed the code between generation and commit.
	dupNextInserts int

	inserts       int
	statusUpdates int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{}
}

func (r *fakeBookingRepo) Insert(ctx context.Context, db *gorm.DB, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++
	if r.dupNextInserts > 0 {
		r.dupNextInserts--
		return gorm.ErrDuplicatedKey
	}
	for _, b := range r.bookings {
		if b.BookingCode == booking.BookingCode {
			return gorm.ErrDuplicatedKey
		}
		if booking.IdempotencyKey != nil && b.IdempotencyKey != nil && *b.IdempotencyKey == *booking.IdempotencyKey {
			return gorm.ErrDuplicatedKey
		}
		if b.UnitID == booking.UnitID && b.Status != domain.StatusCancelled &&
			availabilitydomain.Overlaps(b.CheckIn, b.CheckOut, booking.CheckIn, booking.CheckOut) {
			return &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}
		}
	}
	r.bookings = append(r.bookings, booking)
	return nil
}

func (r *fakeBookingRepo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingCode == code {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByIdempotencyKey(ctx context.Context, db *gorm.DB, key string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.IdempotencyKey != nil && *b.IdempotencyKey == key {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) ListByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.AccountID != nil && *b.AccountID == accountID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) LockUnit(ctx context.Context, db *gorm.DB, unitID snowflake.ID) error {
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.BookingStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusUpdates++
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			b.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrBookingNotFound
}

type stubAvailability struct {
	available func(unitID snowflake.ID, checkIn, checkOut time.Time) bool
}

func (s *stubAvailability) CheckAvailability(ctx context.Context, req availabilitydomain.CheckRequest) (bool, error) {
	return true, nil
}

func (s *stubAvailability) Available(ctx context.Context, db *gorm.DB, unitID snowflake.ID, checkIn, checkOut time.Time) (bool, error) {
	if s.available == nil {
		return true, nil
	}
	return s.available(unitID, checkIn, checkOut), nil
}

type stubCatalogRepo struct {
	units map[snowflake.ID]*catalogdomain.Unit
}

func (s *stubCatalogRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Unit, error) {
	return s.units[id], nil
}

func (s *stubCatalogRepo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*catalogdomain.Unit, error) {
	for _, u := range s.units {
		if u.Slug == slug {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubCatalogRepo) FindAllActive(ctx context.Context, db *gorm.DB) ([]catalogdomain.Unit, error) {
	var out []catalogdomain.Unit
	for _, u := range s.units {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

type stubPartnerRepo struct {
	byCode map[string]*partnerdomain.Partner
}

func (s *stubPartnerRepo) Insert(ctx context.Context, db *gorm.DB, partner *partnerdomain.Partner) error {
	return nil
}

func (s *stubPartnerRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*partnerdomain.Partner, error) {
	return nil, nil
}

func (s *stubPartnerRepo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*partnerdomain.Partner, error) {
	return s.byCode[code], nil
}

func (s *stubPartnerRepo) CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	_, ok := s.byCode[code]
	return ok, nil
}

func (s *stubPartnerRepo) Stats(ctx context.Context, db *gorm.DB, partnerID snowflake.ID) (partnerdomain.StatsRow, error) {
	return partnerdomain.StatsRow{}, nil
}

type recordingCommissionSvc struct {
	mu       sync.Mutex
	recorded []*commissiondomain.Commission
}

func (s *recordingCommissionSvc) Record(ctx context.Context, db *gorm.DB, booking *domain.Booking, partner *partnerdomain.Partner) (*commissiondomain.Commission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &commissiondomain.Commission{
		PartnerID: partner.ID,
		BookingID: booking.ID,
		Amount:    commissiondomain.AmountFor(booking.TotalAmount, partner.CommissionRate),
		Rate:      partner.CommissionRate,
		Status:    commissiondomain.StatusPending,
	}
	s.recorded = append(s.recorded, c)
	return c, nil
}

type fixture struct {
	svc         domain.Service
	repo        *fakeBookingRepo
	commissions *recordingCommissionSvc
	avail       *stubAvailability
}

const (
	testUnitID    = snowflake.ID(7001)
	testAccountID = "8001"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	c := fixedClock{at: at}

	unit := &catalogdomain.Unit{
		ID:            testUnitID,
		Slug:          "harbor-view-loft",
		Name:          "Harbor View Loft",
		PricePerNight: 850_000,
		MaxGuests:     4,
		Active:        true,
	}
	partner := &partnerdomain.Partner{
		ID:             snowflake.ID(9001),
		AccountID:      snowflake.ID(9002),
		ReferralCode:   "A1B2C3D4",
		CommissionRate: 12.5,
		Approved:       true,
	}

	f := &fixture{
		repo:        newFakeBookingRepo(),
		commissions: &recordingCommissionSvc{},
		avail:       &stubAvailability{},
	}
	f.svc = New(Params{
		DB:              gdb,
		Log:             zap.NewNop(),
		GenID:           node,
		Clock:           c,
		Codes:           identifier.New(c),
		Repo:            f.repo,
		AvailabilitySvc: f.avail,
		CatalogRepo:     &stubCatalogRepo{units: map[snowflake.ID]*catalogdomain.Unit{unit.ID: unit}},
		PartnerRepo:     &stubPartnerRepo{byCode: map[string]*partnerdomain.Partner{partner.ReferralCode: partner}},
		CommissionSvc:   f.commissions,
	})
	return f
}

func validRequest() domain.CreateRequest {
	return domain.CreateRequest{
		UnitID:     testUnitID.String(),
		AccountID:  testAccountID,
		CheckIn:    time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		GuestName:  "Dana Reyes",
		GuestEmail: "dana@example.com",
		GuestPhone: "+31 6 1234 5678",
	}
}

func TestCreateComputesNightsAndTotal(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalNights)
	assert.Equal(t, int64(2_550_000), resp.TotalAmount)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.True(t, strings.HasPrefix(resp.BookingCode, "APT-"))
	assert.Empty(t, f.commissions.recorded)
}

func TestCreateRejectsInvalidRange(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.CheckIn, req.CheckOut = req.CheckOut, req.CheckIn
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	req = validRequest()
	req.CheckOut = req.CheckIn
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	assert.Zero(t, f.repo.inserts)
}

func TestCreateRejectsUnknownUnit(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.UnitID = "424242"
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, catalogdomain.ErrUnitNotFound)
}

func TestCreateRejectsTooManyGuests(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Guests = 5
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestCreateRejectsBadGuestEmail(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.GuestEmail = "not-an-email"
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestCreateRejectsUnknownReferralCode(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.ReferralCode = "ZZZZZZZZ"
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, partnerdomain.ErrPartnerNotFound)
	assert.Zero(t, f.repo.inserts)
}

func TestCreateFailsWhenRangeTaken(t *testing.T) {
	f := newFixture(t)
	f.avail.available = func(snowflake.ID, time.Time, time.Time) bool { return false }

	_, err := f.svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Zero(t, f.repo.inserts)
}

func TestCreateRecordsCommissionForReferral(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.ReferralCode = "a1b2c3d4" // matched case-insensitively

	resp, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.PartnerID)

	require.Len(t, f.commissions.recorded, 1)
	commission := f.commissions.recorded[0]
	assert.Equal(t, int64(318_750), commission.Amount)
	assert.Equal(t, 12.5, commission.Rate)
}

func TestCreateReplaysIdempotencyKey(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.IdempotencyKey = "req-77f1"

	first, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	second, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.BookingCode, second.BookingCode)
	assert.Equal(t, 1, f.repo.inserts)
}

func TestCreateRetriesAfterBookingCodeRace(t *testing.T) {
	f := newFixture(t)

	f.repo.dupNextInserts = 1

	resp, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingCode)
	assert.Equal(t, 2, f.repo.inserts)
	assert.Len(t, f.repo.bookings, 1)
}

func TestCreateGivesUpAfterRepeatedCodeRaces(t *testing.T) {
	f := newFixture(t)

	f.repo.dupNextInserts = 10

	_, err := f.svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, identifier.ErrGenerationExhausted)
}

func TestConcurrentCreatesSameRangeOneWins(t *testing.T) {
	f := newFixture(t)

	const attempts = 2
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Create(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	var ok, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrUnavailable):
			unavailable++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, unavailable)
	assert.Len(t, f.repo.bookings, 1)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	first, err := f.svc.Cancel(context.Background(), created.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, first.Status)

	second, err := f.svc.Cancel(context.Background(), created.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, second.Status)
	assert.Equal(t, 1, f.repo.statusUpdates)
}

func TestCancelledRangeCanBeRebooked(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), created.BookingCode)
	require.NoError(t, err)

	rebooked, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, created.BookingCode, rebooked.BookingCode)
}

func TestGetByCodeNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByCode(context.Background(), "APT-0-XXXX")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestListByAccountFiltersOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	mine, err := f.svc.ListByAccount(context.Background(), testAccountID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	other, err := f.svc.ListByAccount(context.Background(), "31337")
	require.NoError(t, err)
	assert.Empty(t, other)
}
