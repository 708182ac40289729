package occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/internal/service/occupancy/models"
	"github.com/avdeev-m/TableReservationService/pkg/ptr"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// Service сервис среза занятости зала.
// Срез всегда производный: он вычисляется из бронирований на лету
// и никогда не хранится, поэтому не может разойтись с их состоянием.
type Service struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса занятости
func NewService(reservationRepo ReservationRepository, tableRepo TableRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Snapshot возвращает состояние каждого стола на момент at
// (nil = текущее время). Стол занят, если активное бронирование
// удерживает его и момент попадает в интервал брони; буфер между
// бронированиями занятостью не считается.
func (s *Service) Snapshot(ctx context.Context, at *time.Time) (*models.SnapshotResponse, error) {
	instant := s.timeProvider.Now()
	if at != nil {
		instant = *at
	}

	s.logger.Info("Snapshot: computing occupancy at %s", instant.Format(time.RFC3339))

	tables, err := s.tableRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Snapshot: failed to get tables: %v", err)
		return nil, fmt.Errorf("%w: Snapshot - failed to get tables: %v", ErrInternal, err)
	}

	date := time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, instant.Location())
	reservations, err := s.reservationRepo.GetByDate(ctx, domain.DayFilter{Date: date})
	if err != nil {
		s.logger.Error("Snapshot: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: Snapshot - failed to get reservations: %v", ErrInternal, err)
	}

	// Вчерашние брони, уходящие за полночь, удерживают столы и после 00:00;
	// сравнение идёт по абсолютным моментам начала и конца
	previous, err := s.reservationRepo.GetByDate(ctx, domain.DayFilter{Date: date.AddDate(0, 0, -1)})
	if err != nil {
		s.logger.Error("Snapshot: failed to get previous day reservations: %v", err)
		return nil, fmt.Errorf("%w: Snapshot - failed to get previous day reservations: %v", ErrInternal, err)
	}
	reservations = append(reservations, previous...)

	resp := &models.SnapshotResponse{
		At:          instant.Format(time.RFC3339),
		Tables:      make([]models.TableOccupancy, 0, len(tables)),
		TotalTables: len(tables),
	}

	seatedReservations := make(map[int64]struct{})

	for _, table := range tables {
		entry := models.TableOccupancy{
			TableID:  table.ID,
			Number:   table.Number,
			Capacity: table.Capacity,
			Section:  string(table.Section),
			Status:   models.StatusFree,
		}

		if holder := holdingReservation(table, reservations, instant); holder != nil {
			entry.Status = models.StatusOccupied
			entry.ReservationID = ptr.Ptr(holder.ID)
			entry.PartySize = ptr.Ptr(holder.PartySize)
			entry.UntilTime = ptr.Ptr(types.NewTimeStringFromMinutes(holder.Interval().End).String())

			resp.OccupiedTables++
			if _, seen := seatedReservations[holder.ID]; !seen {
				seatedReservations[holder.ID] = struct{}{}
				resp.SeatedGuests += holder.PartySize
			}
		}

		resp.TotalCapacity += table.Capacity
		resp.Tables = append(resp.Tables, entry)
	}

	s.logger.Info("Snapshot: %d/%d tables occupied, %d guests seated",
		resp.OccupiedTables, resp.TotalTables, resp.SeatedGuests)

	return resp, nil
}

// holdingReservation находит активное бронирование, удерживающее стол
// в указанный момент. Интервал полуоткрытый: момент окончания брони
// стол уже свободен.
func holdingReservation(table domain.Table, reservations []*domain.Reservation, instant time.Time) *domain.Reservation {
	for _, res := range reservations {
		if !res.IsActive() {
			continue
		}
		if !res.HoldsTable(table.ID) {
			continue
		}
		if !instant.Before(res.StartDateTime()) && instant.Before(res.EndDateTime()) {
			return res
		}
	}
	return nil
}
