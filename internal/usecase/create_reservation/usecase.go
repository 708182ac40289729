package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	tableRepo "github.com/avdeev-m/TableReservationService/internal/infra/storage/table"
	"github.com/avdeev-m/TableReservationService/internal/integrations/venueconfig"
	"github.com/avdeev-m/TableReservationService/pkg/txmanager"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// maxCommitAttempts число попыток сериализуемой транзакции: одна основная
// и один повтор после конфликта сериализации
const maxCommitAttempts = 2

// UseCase use case для создания бронирования.
// Использует сериализуемую транзакцию: проверка доступности и запись
// выполняются атомарно над заблокированными строками дня, что исключает
// двойное бронирование стола при конкурирующих запросах.
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	venueClient     VenueConfigClient
	txManager       TransactionManager
	timeProvider    TimeProvider
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
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: date=%s, time=%s, party=%d, origin=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize, req.Origin)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание и политику бронирования
	schedule, err := uc.venueClient.GetSchedule(ctx)
	if err != nil {
		if errors.Is(err, venueconfig.ErrScheduleNotFound) {
			uc.logger.Warn("CreateReservation: venue schedule not found")
			return nil, ErrScheduleUnavailable
		}
		uc.logger.Error("CreateReservation: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	policy, err := uc.venueClient.GetPolicy(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get booking policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
	}

	// 4. Длительность: по умолчанию максимальная из политики
	duration := policy.MaxDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	if err := validateDuration(duration, policy); err != nil {
		uc.logger.Warn("CreateReservation: duration validation failed: %v", err)
		return nil, err
	}

	// 5. Окно работы и горизонт бронирования
	window, isOpen := schedule.ResolveDay(req.Date)
	if !isOpen {
		uc.logger.Warn("CreateReservation: venue is closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrVenueClosed
	}

	if exceedsAdvanceLimit(req.Date, now, policy) {
		uc.logger.Warn("CreateReservation: date %s is beyond the booking horizon", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.MaxAdvanceDays)
	}

	// 6. Правила источника бронирования
	status, allowedSections, err := resolveOriginRules(req, policy)
	if err != nil {
		uc.logger.Warn("CreateReservation: origin rules rejected request: %v", err)
		return nil, err
	}

	// 7. Время начала должно попадать в сетку слотов
	if !domain.IsOfferedSlot(window, policy, now, req.Date, req.StartTime.Minutes()) {
		uc.logger.Warn("CreateReservation: %s is not an offered slot on %s",
			req.StartTime, req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidTimeSlot
	}

	// 8. Проверка и запись в сериализуемой транзакции, с одним повтором
	// после конфликта сериализации
	var result *domain.Reservation

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		result, err = uc.tryCommit(ctx, req, window, policy, now, duration, status, allowedSections)
		if err == nil {
			break
		}

		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateReservation: serialization conflict on attempt %d", attempt)
			if attempt == maxCommitAttempts {
				// повторный проигрыш гонки означает, что слот разбирают
				// конкурирующие запросы: для клиента это отсутствие мест
				return nil, ErrNoCapacity
			}
			continue
		}

		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, status=%s, tables=%d",
		result.ID, result.Status, len(result.Tables))

	return toResponse(result), nil
}

// tryCommit одна попытка атомарной проверки и записи бронирования.
// Бронирования дня перечитываются внутри транзакции с блокировкой строк,
// поэтому решение о доступности принимается по актуальным данным.
func (uc *UseCase) tryCommit(
	ctx context.Context,
	req *Request,
	window domain.DayWindow,
	policy domain.BookingPolicy,
	now time.Time,
	duration int,
	status domain.ReservationStatus,
	allowedSections []domain.TableSection,
) (*domain.Reservation, error) {
	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Активные бронирования дня под блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetByDate(txCtx, domain.DayFilter{Date: req.Date})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// Хвосты вчерашних броней, уходящие за полночь, тоже удерживают столы
		previous, err := uc.reservationRepo.GetByDate(txCtx, domain.DayFilter{Date: req.Date.AddDate(0, 0, -1)})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get previous day reservations: %v", err)
			return fmt.Errorf("%w: failed to get previous day reservations: %v", ErrInternal, err)
		}
		reservations = domain.CombineWithPreviousDay(reservations, previous)

		start := domain.NormalizeStartMinutes(window, req.StartTime.Minutes())
		interval := domain.Interval{Start: start, End: start + duration}

		var assigned []domain.Table

		if len(req.TableIDs) > 0 {
			// Явное назначение столов администратором
			assigned, err = uc.validateExplicitTables(txCtx, req, reservations, interval, policy)
			if err != nil {
				return err
			}
		} else {
			// Автоматический подбор комбинации столов
			assigned, err = uc.pickCombination(txCtx, req, window, policy, now, duration, allowedSections, reservations)
			if err != nil {
				return err
			}
		}

		reservation := &domain.Reservation{
			Customer: domain.Customer{
				Name:  req.CustomerName,
				Email: req.CustomerEmail,
				Phone: req.CustomerPhone,
			},
			PartySize:       req.PartySize,
			Date:            req.Date,
			StartMinutes:    start,
			DurationMinutes: duration,
			Status:          status,
			Origin:          req.Origin,
			Tables:          assigned,
			SpecialRequests: req.SpecialRequests,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// validateExplicitTables проверяет явно указанный набор столов.
// Для клиентских бронирований действует запрет открытой веранды,
// порог загрузки зала на явное назначение не распространяется.
func (uc *UseCase) validateExplicitTables(
	ctx context.Context,
	req *Request,
	reservations []*domain.Reservation,
	interval domain.Interval,
	policy domain.BookingPolicy,
) ([]domain.Table, error) {
	tables, err := uc.tableRepo.GetByIDs(ctx, req.TableIDs)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			uc.logger.Warn("CreateReservation: explicit table set contains an unknown table")
			return nil, ErrTableNotFound
		}
		uc.logger.Error("CreateReservation: failed to get tables by ids: %v", err)
		return nil, fmt.Errorf("%w: failed to get tables: %v", ErrInternal, err)
	}

	err = domain.ValidateAssignment(tables, req.PartySize, req.Origin, reservations, interval, policy.BufferMinutes, 0)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOutdoorNotAllowed):
			uc.logger.Warn("CreateReservation: customer booking requested outdoor tables")
			return nil, ErrOutdoorNotAllowed
		case errors.Is(err, domain.ErrInsufficientCapacity):
			uc.logger.Warn("CreateReservation: explicit tables cannot seat party of %d", req.PartySize)
			return nil, ErrInsufficientCapacity
		case errors.Is(err, domain.ErrTableConflict):
			uc.logger.Warn("CreateReservation: explicit table is held by an overlapping reservation")
			return nil, ErrTableConflict
		default:
			return nil, fmt.Errorf("%w: assignment validation: %v", ErrInternal, err)
		}
	}

	return tables, nil
}

// pickCombination запускает автоматический подбор столов через общее
// решение о доступности
func (uc *UseCase) pickCombination(
	ctx context.Context,
	req *Request,
	window domain.DayWindow,
	policy domain.BookingPolicy,
	now time.Time,
	duration int,
	allowedSections []domain.TableSection,
	reservations []*domain.Reservation,
) ([]domain.Table, error) {
	tables, err := uc.tableRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get tables: %v", err)
		return nil, fmt.Errorf("%w: failed to get tables: %v", ErrInternal, err)
	}

	decision := domain.Evaluate(domain.AvailabilityQuery{
		Window:          window,
		Policy:          policy,
		Date:            req.Date,
		Now:             now,
		StartMinutes:    req.StartTime.Minutes(),
		DurationMinutes: duration,
		PartySize:       req.PartySize,
		AllowedSections: allowedSections,
		Tables:          tables,
		Reservations:    reservations,
	})

	if !decision.Available {
		uc.logger.Warn("CreateReservation: slot not available, reason=%s", decision.Reason)
		switch decision.Reason {
		case domain.ReasonOutsidePolicyWindow:
			return nil, ErrInvalidTimeSlot
		case domain.ReasonThresholdExceeded:
			return nil, ErrCapacityThreshold
		default:
			return nil, ErrNoCapacity
		}
	}

	return decision.Tables, nil
}

// toResponse конвертирует доменное бронирование в модель ответа
func toResponse(res *domain.Reservation) *Response {
	tables := make([]TableInfo, len(res.Tables))
	for i, t := range res.Tables {
		tables[i] = TableInfo{
			ID:       t.ID,
			Number:   t.Number,
			Capacity: t.Capacity,
			Section:  string(t.Section),
		}
	}

	return &Response{
		ID:              res.ID,
		CustomerName:    res.Customer.Name,
		CustomerEmail:   res.Customer.Email,
		CustomerPhone:   res.Customer.Phone,
		PartySize:       res.PartySize,
		Date:            res.Date,
		StartTime:       types.NewTimeStringFromMinutes(res.StartMinutes),
		DurationMinutes: res.DurationMinutes,
		Status:          string(res.Status),
		Origin:          string(res.Origin),
		Tables:          tables,
		SpecialRequests: res.SpecialRequests,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
