package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/warehousing"
)

// InternalMoveHandler maneja los traslados internos multi-línea (protegido).
type InternalMoveHandler struct {
	uc *warehousing.InternalMoveUseCase
}

// NewInternalMoveHandler construye el handler.
func NewInternalMoveHandler(uc *warehousing.InternalMoveUseCase) *InternalMoveHandler {
	return &InternalMoveHandler{uc: uc}
}

// Execute postea el traslado completo. Un idempotency_key ya usado devuelve
// 200 con duplicate=true sin escribir asientos.
func (h *InternalMoveHandler) Execute(c *fiber.Ctx) error {
	var in dto.InternalMoveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]warehousing.InternalMoveLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, warehousing.InternalMoveLine{
			ItemID:           l.ItemID,
			SourceLocationID: l.SourceLocationID,
			TargetLocationID: l.TargetLocationID,
			Qty:              l.Qty,
		})
	}
	res, err := h.uc.Execute(c.Context(), warehousing.InternalMoveInput{
		WarehouseID:    in.WarehouseID,
		Lines:          lines,
		IdempotencyKey: in.IdempotencyKey,
		Memo:           in.Memo,
		Actor:          GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	status := fiber.StatusCreated
	if res.Duplicate {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.InternalMoveResponse{
		Posted:    res.Posted,
		BatchRef:  res.BatchRef,
		Duplicate: res.Duplicate,
	})
}
