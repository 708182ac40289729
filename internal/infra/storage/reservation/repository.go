package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/pkg/dbmetrics"
	"github.com/avdeev-m/TableReservationService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"party_size",
	"reservation_date",
	"start_minutes",
	"duration_minutes",
	"status",
	"origin",
	"special_requests",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями.
// Назначенные столы хранятся в таблице reservation_tables: групповое
// бронирование - одна строка reservations и несколько строк связи.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование вместе со строками назначенных столов.
// Если в контексте передана активная транзакция, использует её - путь
// создания всегда вызывается внутри сериализуемой транзакции, чтобы
// проверка доступности и запись были атомарны.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"customer_name",
			"customer_email",
			"customer_phone",
			"party_size",
			"reservation_date",
			"start_minutes",
			"duration_minutes",
			"status",
			"origin",
			"special_requests",
		).
		Values(
			res.Customer.Name,
			res.Customer.Email,
			res.Customer.Phone,
			res.PartySize,
			res.Date,
			res.StartMinutes,
			res.DurationMinutes,
			res.Status,
			res.Origin,
			res.SpecialRequests,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	if len(res.Tables) > 0 {
		if err := r.insertTableLinks(ctx, executor, res.ID, res.Tables); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// GetByID получает бронирование по ID вместе с назначенными столами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	tablesByReservation, err := r.loadTables(ctx, executor, []int64{res.ID})
	if err != nil {
		return nil, err
	}
	res.Tables = tablesByReservation[res.ID]

	return res, nil
}

// GetByDate получает бронирования на дату с фильтрацией по статусу.
//
// Внутри транзакции строки блокируются через FOR UPDATE - этим пользуется
// путь создания бронирования: перепроверка пересечений по заблокированным
// строкам и есть защита от двойного бронирования.
func (r *Repository) GetByDate(ctx context.Context, filter domain.DayFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"reservation_date": filter.Date}).
		OrderBy("start_minutes ASC, id ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if len(reservations) == 0 {
		return reservations, nil
	}

	ids := make([]int64, len(reservations))
	for i, res := range reservations {
		ids[i] = res.ID
	}

	tablesByReservation, err := r.loadTables(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, res := range reservations {
		res.Tables = tablesByReservation[res.ID]
	}

	return reservations, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel переводит бронирование в терминальный статус с указанием причины
// (cancelled или no_show). Физическое удаление не используется: отменённые
// бронирования остаются для аудита и статистики.
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ReplaceTables заменяет набор назначенных столов бронирования.
// Вызывается только внутри транзакции переноса, где пересечения уже
// перепроверены по заблокированным строкам.
func (r *Repository) ReplaceTables(ctx context.Context, id int64, tables []domain.Table) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservation_tables").
		Where(squirrel.Eq{"reservation_id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceTables - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceTables - delete old links: %v", ErrExecQuery, err)
	}

	if len(tables) == 0 {
		return nil
	}

	return r.insertTableLinks(ctx, executor, id, tables)
}

// insertTableLinks вставляет строки связи бронирования со столами
func (r *Repository) insertTableLinks(ctx context.Context, executor DBExecutor, reservationID int64, tables []domain.Table) error {
	insertBuilder := psqlbuilder.Insert("reservation_tables").
		Columns("reservation_id", "table_id")

	for _, table := range tables {
		insertBuilder = insertBuilder.Values(reservationID, table.ID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertTableLinks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertTableLinks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// loadTables загружает назначенные столы для набора бронирований
func (r *Repository) loadTables(ctx context.Context, executor DBExecutor, reservationIDs []int64) (map[int64][]domain.Table, error) {
	query, args, err := psqlbuilder.Select(
		"rt.reservation_id",
		"t.id",
		"t.table_number",
		"t.capacity",
		"t.section",
	).
		From("reservation_tables rt").
		Join("tables t ON t.id = rt.table_id").
		Where(squirrel.Eq{"rt.reservation_id": reservationIDs}).
		OrderBy("t.table_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadTables - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.Table)
	for rows.Next() {
		var reservationID int64
		var table domain.Table

		if err := rows.Scan(&reservationID, &table.ID, &table.Number, &table.Capacity, &table.Section); err != nil {
			return nil, fmt.Errorf("%w: loadTables - scan row: %v", ErrScanRow, err)
		}
		result[reservationID] = append(result[reservationID], table)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadTables - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку бронирования
func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.Customer.Name,
		&res.Customer.Email,
		&res.Customer.Phone,
		&res.PartySize,
		&res.Date,
		&res.StartMinutes,
		&res.DurationMinutes,
		&res.Status,
		&res.Origin,
		&res.SpecialRequests,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
