package reassign_tables

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reassign_tables: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reassign_tables: reservation not found")

	// ErrReservationTerminal возвращается при попытке перенести завершённое бронирование
	ErrReservationTerminal = errors.New("reassign_tables: reservation is in a terminal status")

	// ErrTableNotFound возвращается, когда указанный стол не существует
	ErrTableNotFound = errors.New("reassign_tables: table not found")

	// ErrTableConflict возвращается, когда стол занят пересекающимся бронированием
	ErrTableConflict = errors.New("reassign_tables: table is held by an overlapping reservation")

	// ErrInsufficientCapacity возвращается, когда новые столы не вмещают группу
	ErrInsufficientCapacity = errors.New("reassign_tables: assigned tables cannot seat the party")

	// ErrOutdoorNotAllowed возвращается при переносе клиентского бронирования на открытую веранду
	ErrOutdoorNotAllowed = errors.New("reassign_tables: outdoor tables are not allowed for customer reservations")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reassign_tables: internal error")
)
