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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de persistencia de bodegas sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, code, name, status, created_at, updated_at, created_by`

// Create persiste una bodega. Devuelve domain.ErrDuplicate si el código ya existe.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	if warehouse.ID == "" {
		warehouse.ID = uuid.New().String()
	}
	query := `
		INSERT INTO warehouses (id, code, name, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdBy := (*string)(nil)
	if warehouse.CreatedBy != "" {
		createdBy = &warehouse.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.Code, warehouse.Name, warehouse.Status,
		warehouse.CreatedAt, warehouse.UpdatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create warehouse: %w", err)
	}
	return nil
}

// GetByID busca una bodega por su id.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.Code, &w.Name, &w.Status, &w.CreatedAt, &w.UpdatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if createdBy != nil {
		w.CreatedBy = *createdBy
	}
	return &w, nil
}

// Update actualiza nombre y estado de la bodega.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	query := `UPDATE warehouses SET name = $2, status = $3, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, warehouse.ID, warehouse.Name, warehouse.Status)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bodegas ordenadas por código.
func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		var createdBy *string
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Status, &w.CreatedAt, &w.UpdatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		if createdBy != nil {
			w.CreatedBy = *createdBy
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
