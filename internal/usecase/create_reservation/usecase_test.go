package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/pkg/txmanager"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// --- mocks ---

type mockReservationRepo struct {
	reservations []*domain.Reservation
	created      []*domain.Reservation
	nextID       int64
}

func (m *mockReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	m.nextID++
	res.ID = m.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	m.created = append(m.created, res)
	m.reservations = append(m.reservations, res)
	return res, nil
}

func (m *mockReservationRepo) GetByDate(_ context.Context, filter domain.DayFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0, len(m.reservations))
	for _, res := range m.reservations {
		if res.Date.Equal(filter.Date) {
			result = append(result, res)
		}
	}
	return result, nil
}

type mockTableRepo struct {
	tables []domain.Table
}

func (m *mockTableRepo) GetAll(_ context.Context) ([]domain.Table, error) {
	return m.tables, nil
}

func (m *mockTableRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.Table, error) {
	result := make([]domain.Table, 0, len(ids))
	for _, id := range ids {
		for _, t := range m.tables {
			if t.ID == id {
				result = append(result, t)
			}
		}
	}
	return result, nil
}

type mockVenueClient struct {
	schedule *domain.VenueSchedule
	policy   domain.BookingPolicy
}

func (m *mockVenueClient) GetSchedule(_ context.Context) (*domain.VenueSchedule, error) {
	return m.schedule, nil
}

func (m *mockVenueClient) GetPolicy(_ context.Context) (domain.BookingPolicy, error) {
	return m.policy, nil
}

// mockTxManager имитирует менеджер транзакций: первые failures вызовов
// завершаются конфликтом сериализации, дальше функция выполняется напрямую
type mockTxManager struct {
	failures int
	calls    int
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.calls <= m.failures {
		return txmanager.ErrSerialization
	}
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixtures ---

// testNow понедельник 12:00, бронирования проверяются на вторник
var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

var testDate = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

func testSchedule(t *testing.T) *domain.VenueSchedule {
	return weeklySchedule(t, "10:00", "22:00")
}

func weeklySchedule(t *testing.T, openTime, closeTime string) *domain.VenueSchedule {
	t.Helper()

	open, err := types.NewTimeStringFromString(openTime)
	require.NoError(t, err)
	close, err := types.NewTimeStringFromString(closeTime)
	require.NoError(t, err)

	rules := make([]domain.OpeningHoursRule, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		rules = append(rules, domain.OpeningHoursRule{Weekday: wd, Open: open, Close: close})
	}

	return &domain.VenueSchedule{OpeningHours: rules}
}

func newFixture(t *testing.T, tables []domain.Table, existing []*domain.Reservation, txFailures int) (*UseCase, *mockReservationRepo, *mockTxManager) {
	t.Helper()

	resRepo := &mockReservationRepo{reservations: existing}
	txMgr := &mockTxManager{failures: txFailures}

	uc := NewUseCase(
		resRepo,
		&mockTableRepo{tables: tables},
		&mockVenueClient{schedule: testSchedule(t), policy: domain.DefaultBookingPolicy()},
		txMgr,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return uc, resRepo, txMgr
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func customerRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		CustomerName:  "Анна Смирнова",
		CustomerPhone: "+79990001122",
		PartySize:     2,
		Date:          testDate,
		StartTime:     mustTime(t, "19:00"),
		Origin:        domain.OriginCustomer,
	}
}

// --- tests ---

func TestExecute_CustomerAutoAssign(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor},
		{ID: 2, Number: 2, Capacity: 4, Section: domain.SectionIndoor},
	}

	uc, resRepo, _ := newFixture(t, tables, nil, 0)

	resp, err := uc.Execute(context.Background(), customerRequest(t))
	require.NoError(t, err)

	// Клиентское бронирование создаётся в статусе pending,
	// выбирается стол с минимальным излишком вместимости
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.Len(t, resp.Tables, 1)
	assert.Equal(t, int64(1), resp.Tables[0].ID)
	assert.Equal(t, domain.DefaultMaxDurationMinutes, resp.DurationMinutes)
	require.Len(t, resRepo.created, 1)
}

func TestExecute_RetriesOnceAfterSerializationConflict(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 4, Section: domain.SectionIndoor}}

	// Первая попытка завершается конфликтом сериализации, повтор проходит
	uc, _, txMgr := newFixture(t, tables, nil, 1)

	resp, err := uc.Execute(context.Background(), customerRequest(t))
	require.NoError(t, err)
	assert.Equal(t, 2, txMgr.calls)
	require.Len(t, resp.Tables, 1)
}

func TestExecute_ExhaustedRetrySurfacesAsNoCapacity(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 4, Section: domain.SectionIndoor}}

	// Оба захода проигрывают гонку: слот разбирают конкурирующие
	// запросы, для клиента это отсутствие мест
	uc, _, txMgr := newFixture(t, tables, nil, 2)

	_, err := uc.Execute(context.Background(), customerRequest(t))
	assert.ErrorIs(t, err, ErrNoCapacity)
	assert.Equal(t, 2, txMgr.calls)
}

func TestExecute_LastTableAlreadyTaken(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 4, Section: domain.SectionIndoor}}

	existing := []*domain.Reservation{
		{
			ID:              100,
			PartySize:       2,
			Date:            testDate,
			StartMinutes:    19 * 60,
			DurationMinutes: 120,
			Status:          domain.StatusConfirmed,
			Origin:          domain.OriginCustomer,
			Tables:          []domain.Table{tables[0]},
		},
	}

	uc, _, _ := newFixture(t, tables, existing, 0)

	_, err := uc.Execute(context.Background(), customerRequest(t))
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestExecute_VenueClosed(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 4, Section: domain.SectionIndoor}}

	uc, _, _ := newFixture(t, tables, nil, 0)

	req := customerRequest(t)
	req.Date = time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	// Среда объявлена закрытой датой
	schedule := testSchedule(t)
	schedule.ClosedDates = []domain.ClosedDate{{Date: req.Date, Reason: "техобслуживание"}}
	uc.venueClient = &mockVenueClient{schedule: schedule, policy: domain.DefaultBookingPolicy()}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVenueClosed)
}

func TestExecute_PartyTooLargeOnline(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 12, Section: domain.SectionIndoor}}

	uc, _, _ := newFixture(t, tables, nil, 0)

	req := customerRequest(t)
	req.PartySize = domain.DefaultMaxPartySizeOnline + 1

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPartyTooLarge)
}

func TestExecute_CustomerCannotPickTables(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 4, Section: domain.SectionIndoor}}

	uc, _, _ := newFixture(t, tables, nil, 0)

	req := customerRequest(t)
	req.TableIDs = []int64{1}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_AdminExplicitTables(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionOutdoor},
		{ID: 2, Number: 2, Capacity: 2, Section: domain.SectionOutdoor},
	}

	uc, _, _ := newFixture(t, tables, nil, 0)

	req := customerRequest(t)
	req.Origin = domain.OriginAdministrative
	req.PartySize = 4
	req.TableIDs = []int64{1, 2}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Административное бронирование: confirmed по умолчанию,
	// веранда доступна, групповое размещение на двух столах
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.Len(t, resp.Tables, 2)
}

func TestExecute_OffGridStartRejected(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 4, Section: domain.SectionIndoor}}

	uc, _, _ := newFixture(t, tables, nil, 0)

	req := customerRequest(t)
	req.StartTime = mustTime(t, "19:07")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_MidnightTailSlotBookable(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 4, Section: domain.SectionIndoor}}

	uc, resRepo, _ := newFixture(t, tables, nil, 0)

	// окно 20:00-02:00: слот хвоста публикуется и бронируется как "00:00"
	uc.venueClient = &mockVenueClient{
		schedule: weeklySchedule(t, "20:00", "02:00"),
		policy:   domain.DefaultBookingPolicy(),
	}

	req := customerRequest(t)
	req.StartTime = mustTime(t, "00:00")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Tables, 1)
	assert.Equal(t, "00:00", resp.StartTime.String())

	// бронь хранится на минутной оси дня обслуживания
	require.Len(t, resRepo.created, 1)
	assert.Equal(t, 24*60, resRepo.created[0].StartMinutes)
	assert.True(t, testDate.Equal(resRepo.created[0].Date))
}

func TestExecute_PreviousDayTailBlocksEarlySlot(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 4, Section: domain.SectionIndoor}}

	// вчерашняя бронь 23:00 + 120 минут удерживает стол до 01:00
	existing := []*domain.Reservation{
		{
			ID:              100,
			PartySize:       2,
			Date:            testDate.AddDate(0, 0, -1),
			StartMinutes:    23 * 60,
			DurationMinutes: 120,
			Status:          domain.StatusConfirmed,
			Origin:          domain.OriginCustomer,
			Tables:          []domain.Table{tables[0]},
		},
	}

	uc, _, _ := newFixture(t, tables, existing, 0)
	uc.venueClient = &mockVenueClient{
		schedule: weeklySchedule(t, "00:00", "12:00"),
		policy:   domain.DefaultBookingPolicy(),
	}

	req := customerRequest(t)
	req.StartTime = mustTime(t, "00:30")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoCapacity)
}
