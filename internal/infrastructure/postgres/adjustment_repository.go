package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de solicitudes de ajuste sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, number, warehouse_id, type, item_id, source_location_id, qty, status, memo, requested_by, requested_at, approved_by, approved_at, declined_by, declined_at`

// NextNumber toma el siguiente valor de la secuencia y lo formatea como
// AR-<año>-<secuencia>. La secuencia nunca retrocede ni repite, incluso si la
// transacción que la consumió termina en rollback (huecos aceptables).
func (r *AdjustmentRepo) NextNumber() (string, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('adjustment_number_seq')`).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("next adjustment number: %w", err)
	}
	return fmt.Sprintf("AR-%d-%04d", time.Now().Year(), seq), nil
}

// Create persiste una solicitud de ajuste.
func (r *AdjustmentRepo) Create(request *entity.AdjustmentRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	query := `
		INSERT INTO adjustment_requests (id, number, warehouse_id, type, item_id, source_location_id, qty, status, memo, requested_by, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	sourceID := (*string)(nil)
	if request.SourceLocationID != "" {
		sourceID = &request.SourceLocationID
	}
	requestedBy := (*string)(nil)
	if request.RequestedBy != "" {
		requestedBy = &request.RequestedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.Number, request.WarehouseID, string(request.Type),
		request.ItemID, sourceID, request.Qty, string(request.Status),
		request.Memo, requestedBy, request.RequestedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create adjustment request: %w", err)
	}
	return nil
}

// GetByID busca una solicitud por su id.
func (r *AdjustmentRepo) GetByID(id string) (*entity.AdjustmentRequest, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustment_requests WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate bloquea la fila de la solicitud para serializar transiciones.
func (r *AdjustmentRepo) GetForUpdate(id string) (*entity.AdjustmentRequest, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustment_requests WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *AdjustmentRepo) getOne(query, id string) (*entity.AdjustmentRequest, error) {
	req, err := scanAdjustment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get adjustment request: %w", err)
	}
	return req, nil
}

// Update persiste la transición de estado de una solicitud.
func (r *AdjustmentRepo) Update(request *entity.AdjustmentRequest) error {
	query := `
		UPDATE adjustment_requests
		SET status = $2, approved_by = $3, approved_at = $4, declined_by = $5, declined_at = $6
		WHERE id = $1`
	approvedBy := (*string)(nil)
	if request.ApprovedBy != "" {
		approvedBy = &request.ApprovedBy
	}
	declinedBy := (*string)(nil)
	if request.DeclinedBy != "" {
		declinedBy = &request.DeclinedBy
	}
	tag, err := r.q.Exec(context.Background(), query,
		request.ID, string(request.Status),
		approvedBy, request.ApprovedAt, declinedBy, request.DeclinedAt,
	)
	if err != nil {
		return fmt.Errorf("update adjustment request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una solicitud (solo permitido en REQUESTED; lo valida el caso de uso).
func (r *AdjustmentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM adjustment_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete adjustment request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista solicitudes de una bodega, opcionalmente filtradas por estado.
func (r *AdjustmentRepo) List(warehouseID string, status entity.AdjustmentStatus, limit, offset int) ([]*entity.AdjustmentRequest, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustment_requests WHERE warehouse_id = $1`
	args := []any{warehouseID}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, string(status))
	}
	query += fmt.Sprintf(" ORDER BY requested_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustment requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.AdjustmentRequest
	for rows.Next() {
		req, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func scanAdjustment(row pgx.Row) (*entity.AdjustmentRequest, error) {
	var req entity.AdjustmentRequest
	var adjType, status string
	var sourceID, requestedBy, approvedBy, declinedBy *string
	err := row.Scan(&req.ID, &req.Number, &req.WarehouseID, &adjType, &req.ItemID,
		&sourceID, &req.Qty, &status, &req.Memo, &requestedBy, &req.RequestedAt,
		&approvedBy, &req.ApprovedAt, &declinedBy, &req.DeclinedAt)
	if err != nil {
		return nil, err
	}
	req.Type = entity.AdjustmentType(adjType)
	req.Status = entity.AdjustmentStatus(status)
	if sourceID != nil {
		req.SourceLocationID = *sourceID
	}
	if requestedBy != nil {
		req.RequestedBy = *requestedBy
	}
	if approvedBy != nil {
		req.ApprovedBy = *approvedBy
	}
	if declinedBy != nil {
		req.DeclinedBy = *declinedBy
	}
	return &req, nil
}
