package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del registro de ubicaciones sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, warehouse_id, type, subtype, code, display_name, system_managed, status, created_at, updated_at, created_by`

// Create persiste una ubicación. Devuelve domain.ErrDuplicate si el código ya
// existe en la bodega (restricción única parcial sobre ubicaciones físicas).
func (r *LocationRepo) Create(location *entity.Location) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	query := `
		INSERT INTO locations (id, warehouse_id, type, subtype, code, display_name, system_managed, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	createdBy := (*string)(nil)
	if location.CreatedBy != "" {
		createdBy = &location.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.WarehouseID, string(location.Type), string(location.Subtype),
		location.Code, location.DisplayName, location.SystemManaged, location.Status,
		location.CreatedAt, location.UpdatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID busca una ubicación por su id.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	loc, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// ListByIDs devuelve las ubicaciones existentes entre los ids pedidos.
func (r *LocationRepo) ListByIDs(ids []string) ([]*entity.Location, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list locations by ids: %w", err)
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// GetVirtual resuelve el bin virtual de un subtipo en la bodega.
func (r *LocationRepo) GetVirtual(warehouseID string, subtype entity.LocationSubtype) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + `
		FROM locations
		WHERE warehouse_id = $1 AND type = 'VIRTUAL' AND subtype = $2`
	loc, err := r.scanOne(r.q.QueryRow(context.Background(), query, warehouseID, string(subtype)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get virtual bin: %w", err)
	}
	return loc, nil
}

// List lista ubicaciones con filtros opcionales.
func (r *LocationRepo) List(filter repository.LocationFilter) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE 1=1`
	var args []any
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", len(args)+1)
		args = append(args, filter.WarehouseID)
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", len(args)+1)
		args = append(args, string(filter.Type))
	}
	if filter.Subtype != "" {
		query += fmt.Sprintf(" AND subtype = $%d", len(args)+1)
		args = append(args, string(filter.Subtype))
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}
	query += fmt.Sprintf(" ORDER BY type, subtype, code LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// UpdateStatus cambia el estado de una ubicación.
func (r *LocationRepo) UpdateStatus(id, status string) error {
	query := `UPDATE locations SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update location status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LockByIDs bloquea las filas de ubicación en orden estable por id. El ORDER BY
// dentro del FOR UPDATE evita deadlocks entre transacciones que bloquean los
// mismos bins en órdenes distintos.
func (r *LocationRepo) LockByIDs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `SELECT id FROM locations WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("lock locations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan locked location: %w", err)
		}
	}
	return rows.Err()
}

func (r *LocationRepo) scanOne(row pgx.Row) (*entity.Location, error) {
	var loc entity.Location
	var locType, subtype string
	var code, displayName, createdBy *string
	err := row.Scan(&loc.ID, &loc.WarehouseID, &locType, &subtype, &code,
		&displayName, &loc.SystemManaged, &loc.Status, &loc.CreatedAt,
		&loc.UpdatedAt, &createdBy)
	if err != nil {
		return nil, err
	}
	loc.Type = entity.LocationType(locType)
	loc.Subtype = entity.LocationSubtype(subtype)
	if code != nil {
		loc.Code = *code
	}
	if displayName != nil {
		loc.DisplayName = *displayName
	}
	if createdBy != nil {
		loc.CreatedBy = *createdBy
	}
	return &loc, nil
}

func (r *LocationRepo) scanRows(rows pgx.Rows) ([]*entity.Location, error) {
	var list []*entity.Location
	for rows.Next() {
		loc, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, loc)
	}
	return list, rows.Err()
}
