package reassign_tables

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if len(req.TableIDs) == 0 {
		return fmt.Errorf("%w: tableIDs is required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.TableIDs))
	for _, id := range req.TableIDs {
		if id <= 0 {
			return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate tableID %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
