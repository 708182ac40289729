package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrScheduleUnavailable возвращается, когда расписание заведения недоступно
	ErrScheduleUnavailable = errors.New("check_availability: venue schedule unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
