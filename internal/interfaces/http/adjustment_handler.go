package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// AdjustmentHandler maneja las solicitudes de ajuste (protegido).
type AdjustmentHandler struct {
	uc *warehousing.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *warehousing.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create registra la solicitud y postea la retención en el bin pendiente.
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), warehousing.CreateAdjustmentInput{
		WarehouseID:      in.WarehouseID,
		Type:             entity.AdjustmentType(in.Type),
		ItemID:           in.ItemID,
		SourceLocationID: in.SourceLocationID,
		Qty:              in.Qty,
		Memo:             in.Memo,
		Actor:            GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(adjustmentResponse(req))
}

// GetByID devuelve una solicitud por id.
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(adjustmentResponse(req))
}

// List lista solicitudes de una bodega, opcionalmente por estado.
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	limit, offset := pageParams(c)
	list, err := h.uc.List(warehouseID, entity.AdjustmentStatus(c.Query("status")), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, req := range list {
		out = append(out, adjustmentResponse(req))
	}
	return c.JSON(fiber.Map{"total": len(out), "adjustments": out})
}

// Approve aprueba la solicitud y mueve el stock retenido a su bin terminal.
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	req, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(adjustmentResponse(req))
}

// Decline rechaza la solicitud y devuelve el stock retenido a su origen
// (EXCESS no mueve nada: nada se debitó al crearlo).
func (h *AdjustmentHandler) Decline(c *fiber.Ctx) error {
	req, err := h.uc.Decline(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(adjustmentResponse(req))
}

// Delete elimina una solicitud aún REQUESTED, revirtiendo su retención.
func (h *AdjustmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud eliminada"})
}

func adjustmentResponse(req *entity.AdjustmentRequest) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:               req.ID,
		Number:           req.Number,
		WarehouseID:      req.WarehouseID,
		Type:             string(req.Type),
		ItemID:           req.ItemID,
		SourceLocationID: req.SourceLocationID,
		Qty:              req.Qty,
		Status:           string(req.Status),
		Memo:             req.Memo,
		RequestedBy:      req.RequestedBy,
		RequestedAt:      req.RequestedAt,
		ApprovedBy:       req.ApprovedBy,
		ApprovedAt:       req.ApprovedAt,
		DeclinedBy:       req.DeclinedBy,
		DeclinedAt:       req.DeclinedAt,
	}
}
