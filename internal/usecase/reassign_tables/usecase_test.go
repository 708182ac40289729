package reassign_tables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	reservationRepo "github.com/avdeev-m/TableReservationService/internal/infra/storage/reservation"
	"github.com/avdeev-m/TableReservationService/pkg/txmanager"
)

// --- mocks ---

type mockReservationRepo struct {
	byID     map[int64]*domain.Reservation
	byDate   []*domain.Reservation
	replaced map[int64][]domain.Table
}

func (m *mockReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if res, ok := m.byID[id]; ok {
		return res, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (m *mockReservationRepo) GetByDate(_ context.Context, filter domain.DayFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0, len(m.byDate))
	for _, res := range m.byDate {
		if res.Date.Equal(filter.Date) {
			result = append(result, res)
		}
	}
	return result, nil
}

func (m *mockReservationRepo) ReplaceTables(_ context.Context, id int64, tables []domain.Table) error {
	if m.replaced == nil {
		m.replaced = make(map[int64][]domain.Table)
	}
	m.replaced[id] = tables
	return nil
}

type mockTableRepo struct {
	tables []domain.Table
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
	policy domain.BookingPolicy
}

func (m *mockVenueClient) GetPolicy(_ context.Context) (domain.BookingPolicy, error) {
	return m.policy, nil
}

type passTxManager struct{}

func (passTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixtures ---

var testDate = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

func testReservation(t *testing.T, id int64, origin domain.ReservationOrigin, tables ...domain.Table) *domain.Reservation {
	t.Helper()
	return &domain.Reservation{
		ID:              id,
		PartySize:       2,
		Date:            testDate,
		StartMinutes:    19 * 60,
		DurationMinutes: 120,
		Status:          domain.StatusConfirmed,
		Origin:          origin,
		Tables:          tables,
	}
}

func newFixture(t *testing.T, tables []domain.Table, reservations ...*domain.Reservation) (*UseCase, *mockReservationRepo) {
	t.Helper()

	byID := make(map[int64]*domain.Reservation, len(reservations))
	for _, res := range reservations {
		byID[res.ID] = res
	}

	repo := &mockReservationRepo{byID: byID, byDate: reservations}

	uc := NewUseCase(
		repo,
		&mockTableRepo{tables: tables},
		&mockVenueClient{policy: domain.DefaultBookingPolicy()},
		passTxManager{},
		nopLogger{},
	)

	return uc, repo
}

// --- tests ---

func TestExecute_MoveToFreeTable(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor},
		{ID: 2, Number: 2, Capacity: 4, Section: domain.SectionWindow},
	}

	uc, repo := newFixture(t, tables, testReservation(t, 10, domain.OriginCustomer, tables[0]))

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, TableIDs: []int64{2}})
	require.NoError(t, err)

	require.Len(t, resp.Tables, 1)
	assert.Equal(t, int64(2), resp.Tables[0].ID)
	assert.Len(t, repo.replaced[10], 1)
}

func TestExecute_KeepOwnTableInNewSet(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor},
		{ID: 2, Number: 2, Capacity: 2, Section: domain.SectionIndoor},
	}

	// Собственная занятость стола 1 не считается конфликтом
	uc, _ := newFixture(t, tables, testReservation(t, 10, domain.OriginCustomer, tables[0]))

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, TableIDs: []int64{1, 2}})
	require.NoError(t, err)
	assert.Len(t, resp.Tables, 2)
}

func TestExecute_TableHeldByAnotherReservation(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor},
		{ID: 2, Number: 2, Capacity: 4, Section: domain.SectionIndoor},
	}

	uc, _ := newFixture(t, tables,
		testReservation(t, 10, domain.OriginCustomer, tables[0]),
		testReservation(t, 11, domain.OriginCustomer, tables[1]),
	)

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, TableIDs: []int64{2}})
	assert.ErrorIs(t, err, ErrTableConflict)
}

func TestExecute_CustomerReservationCannotMoveOutdoors(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor},
		{ID: 2, Number: 2, Capacity: 4, Section: domain.SectionOutdoor},
	}

	uc, _ := newFixture(t, tables, testReservation(t, 10, domain.OriginCustomer, tables[0]))

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, TableIDs: []int64{2}})
	assert.ErrorIs(t, err, ErrOutdoorNotAllowed)
}

func TestExecute_AdministrativeReservationMayMoveOutdoors(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor},
		{ID: 2, Number: 2, Capacity: 4, Section: domain.SectionOutdoor},
	}

	uc, _ := newFixture(t, tables, testReservation(t, 10, domain.OriginAdministrative, tables[0]))

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, TableIDs: []int64{2}})
	require.NoError(t, err)
	assert.Len(t, resp.Tables, 1)
}

func TestExecute_TerminalReservation(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor}}

	res := testReservation(t, 10, domain.OriginCustomer, tables[0])
	res.Status = domain.StatusCompleted

	uc, _ := newFixture(t, tables, res)

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, TableIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrReservationTerminal)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	uc, _ := newFixture(t, []domain.Table{{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor}})

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 99, TableIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_TableHeldByPreviousDayTail(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor},
		{ID: 2, Number: 2, Capacity: 4, Section: domain.SectionIndoor},
	}

	// Вчерашняя бронь 23:30 на два часа держит стол 2 до 01:30
	moving := testReservation(t, 10, domain.OriginCustomer, tables[0])
	moving.StartMinutes = 0
	moving.DurationMinutes = 60

	tail := testReservation(t, 11, domain.OriginCustomer, tables[1])
	tail.Date = testDate.AddDate(0, 0, -1)
	tail.StartMinutes = 23*60 + 30

	uc, _ := newFixture(t, tables, moving, tail)

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, TableIDs: []int64{2}})
	assert.ErrorIs(t, err, ErrTableConflict)
}

type failingTxManager struct {
	calls int
}

func (m *failingTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	m.calls++
	return txmanager.ErrSerialization
}

func TestExecute_ExhaustedRetrySurfacesAsTableConflict(t *testing.T) {
	tables := []domain.Table{{ID: 1, Number: 1, Capacity: 2, Section: domain.SectionIndoor}}

	uc, _ := newFixture(t, tables, testReservation(t, 10, domain.OriginCustomer, tables[0]))
	txMgr := &failingTxManager{}
	uc.txManager = txMgr

	// Оба захода проигрывают гонку: для вызывающего столы заняты
	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, TableIDs: []int64{1}})
	assert.ErrorIs(t, err, ErrTableConflict)
	assert.Equal(t, 2, txMgr.calls)
}
