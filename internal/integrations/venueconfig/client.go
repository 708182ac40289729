package venueconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avdeev-m/TableReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса настроек заведения.
// Расписание и политика читаются на каждый запрос и нигде не сохраняются:
// ядро рассматривает конфигурацию как read-only вход.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса настроек
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSchedule получает и валидирует расписание заведения
func (c *Client) GetSchedule(ctx context.Context) (*domain.VenueSchedule, error) {
	var schedule VenueSchedule
	if err := c.get(ctx, "/internal/venue/schedule", &schedule); err != nil {
		return nil, err
	}
	return schedule.ToDomain()
}

// GetPolicy получает и валидирует политику бронирования
func (c *Client) GetPolicy(ctx context.Context) (domain.BookingPolicy, error) {
	var policy BookingPolicy
	if err := c.get(ctx, "/internal/venue/booking-policy", &policy); err != nil {
		return domain.BookingPolicy{}, err
	}
	return policy.ToDomain()
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// продолжаем обработку
	case http.StatusNotFound:
		return ErrScheduleNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
