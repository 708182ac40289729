package table

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdeev-m/TableReservationService/internal/domain"
	"github.com/avdeev-m/TableReservationService/pkg/dbmetrics"
	"github.com/avdeev-m/TableReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с физическими столами зала.
// Планировка меняется редко, поэтому репозиторий только читает:
// управление самими столами лежит за пределами сервиса бронирований.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория столов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает все столы зала, отсортированные по номеру
func (r *Repository) GetAll(ctx context.Context) ([]domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "table_number", "capacity", "section").
		From("tables").
		OrderBy("table_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTables(rows)
}

// GetByIDs возвращает столы по списку ID. Если хотя бы один ID не найден,
// возвращает ErrTableNotFound - явное назначение несуществующего стола
// должно падать, а не молча пропускаться.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Table, error) {
	if len(ids) == 0 {
		return []domain.Table{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "table_number", "capacity", "section").
		From("tables").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("table_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables, err := r.scanTables(rows)
	if err != nil {
		return nil, err
	}

	if len(tables) != len(uniqueIDs(ids)) {
		return nil, ErrTableNotFound
	}

	return tables, nil
}

// scanTables сканирует результаты запроса в слайс столов
func (r *Repository) scanTables(rows *sql.Rows) ([]domain.Table, error) {
	tables := make([]domain.Table, 0)

	for rows.Next() {
		var table domain.Table

		if err := rows.Scan(&table.ID, &table.Number, &table.Capacity, &table.Section); err != nil {
			return nil, fmt.Errorf("%w: scanTables - scan row: %v", ErrScanRow, err)
		}
		tables = append(tables, table)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTables - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}

// uniqueIDs убирает дубликаты из списка ID
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
