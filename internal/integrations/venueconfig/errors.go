package venueconfig

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание заведения
	// не настроено в сервисе настроек
	ErrScheduleNotFound = errors.New("venueconfig client: venue schedule not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("venueconfig client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("venueconfig client: invalid response")

	// ErrInvalidConfiguration возвращается, когда полученная конфигурация
	// не проходит валидацию. Фатально для запроса: закрытый день не должен
	// молча превратиться в открытый.
	ErrInvalidConfiguration = errors.New("venueconfig client: invalid venue configuration")
)
