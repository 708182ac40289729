package create_reservation

import (
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	createReservation "github.com/avdeev-m/TableReservationService/internal/usecase/create_reservation"
	"github.com/avdeev-m/TableReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone"`

	PartySize       int    `json:"partySize"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "19:00"
	DurationMinutes *int   `json:"durationMinutes,omitempty"`

	SpecialRequests *string `json:"specialRequests,omitempty"`

	// Административные поля: игнорируются для клиентских запросов
	// на уровне валидации use case
	TableIDs []int64 `json:"tableIds,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// TableResponse данные назначенного стола
type TableResponse struct {
	ID       int64  `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Section  string `json:"section"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64           `json:"id"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	CustomerPhone   string          `json:"customerPhone"`
	PartySize       int             `json:"partySize"`
	Date            string          `json:"date"`
	StartTime       string          `json:"startTime"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	Origin          string          `json:"origin"`
	Tables          []TableResponse `json:"tables"`
	SpecialRequests *string         `json:"specialRequests,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(origin domain.ReservationOrigin) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createReservation.Request{
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		PartySize:       r.PartySize,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Origin:          origin,
		SpecialRequests: r.SpecialRequests,
		TableIDs:        r.TableIDs,
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		req.InitialStatus = &status
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	tables := make([]TableResponse, len(resp.Tables))
	for i, t := range resp.Tables {
		tables[i] = TableResponse{
			ID:       t.ID,
			Number:   t.Number,
			Capacity: t.Capacity,
			Section:  t.Section,
		}
	}

	return &ReservationResponse{
		ID:              resp.ID,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		PartySize:       resp.PartySize,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Origin:          resp.Origin,
		Tables:          tables,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
