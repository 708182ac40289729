package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avdeev-m/TableReservationService/internal/api/handlers"
)

// StaffIDHeader заголовок аутентификации персонала.
// Проверку подлинности выполняет шлюз, сервис доверяет заголовку.
const StaffIDHeader = "X-Staff-ID"

// ErrInvalidStaffID возвращается для присутствующего, но некорректного
// заголовка X-Staff-ID
var ErrInvalidStaffID = errors.New("invalid X-Staff-ID header")

// StaffID извлекает идентификатор сотрудника из заголовка запроса.
// Отсутствующий заголовок - не ошибка: возвращается 0 (анонимный запрос).
// Формат проверяется одинаково на защищённых и публичных маршрутах.
func StaffID(r *http.Request) (int64, error) {
	rawID := r.Header.Get(StaffIDHeader)
	if rawID == "" {
		return 0, nil
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidStaffID
	}

	return id, nil
}

// Auth требует валидный заголовок X-Staff-ID для доступа к защищённым
// маршрутам персонала
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := StaffID(r)
		if err != nil {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-Staff-ID")
			return
		}
		if id == 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-Staff-ID")
			return
		}

		next.ServeHTTP(w, r)
	})
}
