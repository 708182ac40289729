package get_day_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/internal/integrations/venueconfig"
	"github.com/avdeev-m/TableReservationService/pkg/ptr"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// UseCase use case для получения слотов бронирования на дату
type UseCase struct {
	venueClient  VenueConfigClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(venueClient VenueConfigClient, logger Logger) *UseCase {
	return &UseCase{
		venueClient:  venueClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание и политику бронирования
	schedule, err := uc.venueClient.GetSchedule(ctx)
	if err != nil {
		if errors.Is(err, venueconfig.ErrScheduleNotFound) {
			uc.logger.Warn("GetDaySlots: venue schedule not found")
			return nil, ErrScheduleUnavailable
		}
		uc.logger.Error("GetDaySlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	policy, err := uc.venueClient.GetPolicy(ctx)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get booking policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
	}

	// 4. Определяем окно работы на дату
	window, isOpen := schedule.ResolveDay(req.Date)
	if !isOpen {
		uc.logger.Info("GetDaySlots: venue is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:               req.Date,
			IsOpen:             false,
			GranularityMinutes: policy.SlotGranularityMinutes,
			Slots:              []types.TimeString{},
		}, nil
	}

	// 5. Горизонт бронирования: для далеких дат слоты не предлагаются
	if exceedsAdvanceLimit(req.Date, now, policy) {
		uc.logger.Info("GetDaySlots: date %s is beyond the %d-day booking horizon",
			req.Date.Format(domain.DateFormat), policy.MaxAdvanceDays)
		return uc.buildResponse(req.Date, window, policy, []int{}), nil
	}

	// 6. Генерируем времена начала
	starts := domain.GenerateStartTimes(window, policy, now, req.Date)

	uc.logger.Info("GetDaySlots: %d slots offered on %s", len(starts), req.Date.Format(domain.DateFormat))

	return uc.buildResponse(req.Date, window, policy, starts), nil
}

// buildResponse собирает ответ, конвертируя минуты от полуночи во времена.
// Окно, уходящее за полночь, сворачивается обратно в границы суток.
func (uc *UseCase) buildResponse(date time.Time, window domain.DayWindow, policy domain.BookingPolicy, starts []int) *Response {
	slots := make([]types.TimeString, len(starts))
	for i, start := range starts {
		slots[i] = types.NewTimeStringFromMinutes(start)
	}

	return &Response{
		Date:               date,
		IsOpen:             true,
		OpenTime:           ptr.Ptr(types.NewTimeStringFromMinutes(window.Start)),
		CloseTime:          ptr.Ptr(types.NewTimeStringFromMinutes(window.End)),
		GranularityMinutes: policy.SlotGranularityMinutes,
		Slots:              slots,
	}
}
