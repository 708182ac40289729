package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	reservationRepo "github.com/avdeev-m/TableReservationService/internal/infra/storage/reservation"
	"github.com/avdeev-m/TableReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями: чтение, смена статуса
// и отмена. Создание и перенос столов живут в соответствующих use case,
// так как требуют сериализуемых транзакций.
type Service struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation, s.timeProvider.Now()), nil
}

// GetDayReservations получает бронирования на дату с фильтрацией по статусу.
// По умолчанию отменённые и неявки не включаются.
func (s *Service) GetDayReservations(ctx context.Context, req *models.GetDayReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetDayReservations: date=%s, status=%v, includeInactive=%t",
		req.Date.Format(domain.DateFormat), req.Status, req.IncludeInactive)

	if req.Date.IsZero() {
		s.logger.Warn("GetDayReservations: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDayReservations: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByDate(ctx, filter)
	if err != nil {
		s.logger.Error("GetDayReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetDayReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDayReservations: fetched %d reservations on %s",
		len(reservations), req.Date.Format(domain.DateFormat))

	return models.FromDomainReservationList(reservations, s.timeProvider.Now()), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Смена статуса выражается командой жизненного цикла, так что допустимы
// только переходы, закреплённые за командами. Возврат завершённого
// бронирования в pending невозможен.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d -> status=%s", id, req.Status)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	target, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	command, err := domain.CommandForStatus(target)
	if err != nil {
		s.logger.Warn("UpdateStatus: status=%s is not reachable by any command", req.Status)
		return nil, ErrIllegalTransition
	}

	newStatus, err := domain.ApplyCommand(reservation.Status, command)
	if err != nil {
		s.logger.Warn("UpdateStatus: transition %s -> %s is illegal for reservation id=%d",
			reservation.Status, target, id)
		return nil, ErrIllegalTransition
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: reservation id=%d is now %s", id, newStatus)

	reservation.Status = newStatus
	return models.FromDomainReservation(reservation, s.timeProvider.Now()), nil
}

// Cancel отменяет бронирование с указанием причины.
// Отмена разрешена из любого нетерминального статуса и освобождает столы.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
		return ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLen {
		s.logger.Warn("Cancel: cancellation reason too long for reservation id=%d", id)
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLen)
	}

	if err := s.reservationRepo.Cancel(ctx, id, domain.StatusCancelled, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return nil
}
