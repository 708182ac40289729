package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrVenueClosed возвращается, когда заведение закрыто в указанную дату
	ErrVenueClosed = errors.New("create_reservation: venue is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время начала не входит в сетку предлагаемых слотов
	ErrInvalidTimeSlot = errors.New("create_reservation: start time is not an offered slot")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrPartyTooLarge возвращается, когда размер группы превышает лимит онлайн-бронирования
	ErrPartyTooLarge = errors.New("create_reservation: party size exceeds the online limit")

	// ErrNoCapacity возвращается, когда ни одна комбинация свободных столов не вмещает группу
	ErrNoCapacity = errors.New("create_reservation: no free table combination fits the party")

	// ErrCapacityThreshold возвращается, когда бронирование превысило бы порог загрузки зала
	ErrCapacityThreshold = errors.New("create_reservation: venue capacity threshold exceeded")

	// ErrOutdoorNotAllowed возвращается при попытке клиентского бронирования столов открытой веранды
	ErrOutdoorNotAllowed = errors.New("create_reservation: outdoor tables are not bookable online")

	// ErrTableNotFound возвращается, когда явно указанный стол не существует
	ErrTableNotFound = errors.New("create_reservation: table not found")

	// ErrTableConflict возвращается, когда явно указанный стол занят пересекающимся бронированием
	ErrTableConflict = errors.New("create_reservation: table is held by an overlapping reservation")

	// ErrInsufficientCapacity возвращается, когда явно указанные столы не вмещают группу
	ErrInsufficientCapacity = errors.New("create_reservation: assigned tables cannot seat the party")

	// ErrScheduleUnavailable возвращается, когда расписание заведения недоступно
	ErrScheduleUnavailable = errors.New("create_reservation: venue schedule unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
