package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/internal/integrations/venueconfig"
)

// UseCase use case для проверки доступности слота.
// Проверка выполняется без транзакции: ответ информационный, а гарантия
// отсутствия двойного бронирования обеспечивается на пути создания.
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	venueClient     VenueConfigClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	venueClient VenueConfigClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		venueClient:     venueClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: date=%s, time=%s, party=%d, origin=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize, req.Origin)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание и политику бронирования
	schedule, err := uc.venueClient.GetSchedule(ctx)
	if err != nil {
		if errors.Is(err, venueconfig.ErrScheduleNotFound) {
			uc.logger.Warn("CheckAvailability: venue schedule not found")
			return nil, ErrScheduleUnavailable
		}
		uc.logger.Error("CheckAvailability: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	policy, err := uc.venueClient.GetPolicy(ctx)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get booking policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
	}

	// 4. Длительность: по умолчанию максимальная из политики
	duration := policy.MaxDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	if err := validateDuration(duration, policy); err != nil {
		uc.logger.Warn("CheckAvailability: duration validation failed: %v", err)
		return nil, err
	}

	// 5. Окно работы на дату
	window, isOpen := schedule.ResolveDay(req.Date)
	if !isOpen {
		uc.logger.Info("CheckAvailability: venue is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{Available: false, Reason: string(domain.ReasonVenueClosed)}, nil
	}

	// 6. Горизонт бронирования
	if exceedsAdvanceLimit(req.Date, now, policy) {
		uc.logger.Info("CheckAvailability: date %s is beyond the booking horizon", req.Date.Format(domain.DateFormat))
		return &Response{Available: false, Reason: string(domain.ReasonOutsidePolicyWindow)}, nil
	}

	// 7. Ограничения клиентских бронирований
	allowedSections := domain.AllSections
	if req.Origin == domain.OriginCustomer {
		if req.PartySize > policy.MaxPartySizeOnline {
			uc.logger.Info("CheckAvailability: party of %d exceeds online limit %d",
				req.PartySize, policy.MaxPartySizeOnline)
			return &Response{Available: false, Reason: string(domain.ReasonPartyTooLarge)}, nil
		}
		allowedSections = domain.CustomerSections
	}

	// 8. Загружаем столы и активные бронирования на дату
	tables, err := uc.tableRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get tables: %v", err)
		return nil, fmt.Errorf("%w: failed to get tables: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.GetByDate(ctx, domain.DayFilter{Date: req.Date})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// Хвосты вчерашних броней, уходящие за полночь, тоже удерживают столы
	previous, err := uc.reservationRepo.GetByDate(ctx, domain.DayFilter{Date: req.Date.AddDate(0, 0, -1)})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get previous day reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get previous day reservations: %v", ErrInternal, err)
	}
	reservations = domain.CombineWithPreviousDay(reservations, previous)

	// 9. Решение о доступности
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
		uc.logger.Info("CheckAvailability: not available, reason=%s", decision.Reason)
		return &Response{Available: false, Reason: string(decision.Reason)}, nil
	}

	uc.logger.Info("CheckAvailability: available, %d table(s) proposed", len(decision.Tables))

	return &Response{
		Available: true,
		Tables:    toTableInfos(decision.Tables),
	}, nil
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
