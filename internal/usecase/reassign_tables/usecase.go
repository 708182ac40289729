package reassign_tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	reservationRepo "github.com/avdeev-m/TableReservationService/internal/infra/storage/reservation"
	tableRepo "github.com/avdeev-m/TableReservationService/internal/infra/storage/table"
	"github.com/avdeev-m/TableReservationService/pkg/txmanager"
)

// maxCommitAttempts число попыток сериализуемой транзакции: одна основная
// и один повтор после конфликта сериализации
const maxCommitAttempts = 2

// UseCase use case для переноса бронирования на другой набор столов.
// Перенос доступен только персоналу; ограничение по секциям зала
// сохраняется для бронирований клиентского происхождения.
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	venueClient     VenueConfigClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	venueClient VenueConfigClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		venueClient:     venueClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case переноса столов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReassignTables: reservation=%d, tables=%v", req.ReservationID, req.TableIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReassignTables: validation failed: %v", err)
		return nil, err
	}

	// 2. Политика нужна ради буфера между бронированиями
	policy, err := uc.venueClient.GetPolicy(ctx)
	if err != nil {
		uc.logger.Error("ReassignTables: failed to get booking policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
	}

	// 3. Перенос в сериализуемой транзакции, с одним повтором после
	// конфликта сериализации
	var result []domain.Table

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		result, err = uc.tryCommit(ctx, req, policy)
		if err == nil {
			break
		}

		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("ReassignTables: serialization conflict on attempt %d", attempt)
			if attempt == maxCommitAttempts {
				// повторный проигрыш гонки равнозначен занятости столов
				// конкурирующими записями
				return nil, ErrTableConflict
			}
			continue
		}

		return nil, err
	}

	uc.logger.Info("ReassignTables: reservation id=%d moved to %d table(s)", req.ReservationID, len(result))

	return &Response{
		ReservationID: req.ReservationID,
		Tables:        toTableInfos(result),
	}, nil
}

// tryCommit одна попытка атомарной проверки и переноса
func (uc *UseCase) tryCommit(ctx context.Context, req *Request, policy domain.BookingPolicy) ([]domain.Table, error) {
	var result []domain.Table

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ReassignTables: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ReassignTables: failed to get reservation: %v", err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if reservation.IsTerminal() {
			uc.logger.Warn("ReassignTables: reservation id=%d is %s", reservation.ID, reservation.Status)
			return ErrReservationTerminal
		}

		// Бронирования дня под блокировкой (FOR UPDATE)
		dayReservations, err := uc.reservationRepo.GetByDate(txCtx, domain.DayFilter{Date: reservation.Date})
		if err != nil {
			uc.logger.Error("ReassignTables: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// Хвосты вчерашних броней, уходящие за полночь, тоже удерживают столы
		previous, err := uc.reservationRepo.GetByDate(txCtx, domain.DayFilter{Date: reservation.Date.AddDate(0, 0, -1)})
		if err != nil {
			uc.logger.Error("ReassignTables: failed to get previous day reservations: %v", err)
			return fmt.Errorf("%w: failed to get previous day reservations: %v", ErrInternal, err)
		}
		dayReservations = domain.CombineWithPreviousDay(dayReservations, previous)

		tables, err := uc.tableRepo.GetByIDs(txCtx, req.TableIDs)
		if err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				uc.logger.Warn("ReassignTables: table set contains an unknown table")
				return ErrTableNotFound
			}
			uc.logger.Error("ReassignTables: failed to get tables: %v", err)
			return fmt.Errorf("%w: failed to get tables: %v", ErrInternal, err)
		}

		// Собственная занятость бронирования исключается из проверки:
		// перенос на частично совпадающий набор столов легален
		err = domain.ValidateAssignment(
			tables,
			reservation.PartySize,
			reservation.Origin,
			dayReservations,
			reservation.Interval(),
			policy.BufferMinutes,
			reservation.ID,
		)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrOutdoorNotAllowed):
				uc.logger.Warn("ReassignTables: customer reservation id=%d cannot move outdoors", reservation.ID)
				return ErrOutdoorNotAllowed
			case errors.Is(err, domain.ErrInsufficientCapacity):
				uc.logger.Warn("ReassignTables: tables cannot seat party of %d", reservation.PartySize)
				return ErrInsufficientCapacity
			case errors.Is(err, domain.ErrTableConflict):
				uc.logger.Warn("ReassignTables: table is held by an overlapping reservation")
				return ErrTableConflict
			default:
				return fmt.Errorf("%w: assignment validation: %v", ErrInternal, err)
			}
		}

		if err := uc.reservationRepo.ReplaceTables(txCtx, reservation.ID, tables); err != nil {
			uc.logger.Error("ReassignTables: failed to replace tables: %v", err)
			return fmt.Errorf("%w: failed to replace tables: %v", ErrInternal, err)
		}

		result = tables
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// toTableInfos конвертирует доменные столы в модели ответа
func toTableInfos(tables []domain.Table) []TableInfo {
	result := make([]TableInfo, len(tables))
	for i, t := range tables {
		result[i] = TableInfo{
			ID:       t.ID,
			Number:   t.Number,
			Capacity: t.Capacity,
			Section:  string(t.Section),
		}
	}
	return result
}
