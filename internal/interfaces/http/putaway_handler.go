package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/warehousing"
)

// PutawayHandler maneja lotes de putaway y sus lecturas (protegido).
type PutawayHandler struct {
	uc      *warehousing.PutawayUseCase
	stockUC *warehousing.StockUseCase
}

// NewPutawayHandler construye el handler.
func NewPutawayHandler(uc *warehousing.PutawayUseCase, stockUC *warehousing.StockUseCase) *PutawayHandler {
	return &PutawayHandler{uc: uc, stockUC: stockUC}
}

// Confirm postea un lote de acciones PUTAWAY/LOST. Un lote con el mismo
// contenido (misma huella) devuelve 200 con duplicate=true sin escribir nada;
// idempotency_key solo sirve para forzar una referencia distinta a propósito.
func (h *PutawayHandler) Confirm(c *fiber.Ctx) error {
	var in dto.PutawayBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actions := make([]warehousing.PutawayAction, 0, len(in.Actions))
	for _, a := range in.Actions {
		actions = append(actions, warehousing.PutawayAction{
			Type:             warehousing.PutawayActionType(a.Type),
			ItemID:           a.ItemID,
			SourceBinID:      a.SourceBinID,
			TargetLocationID: a.TargetLocationID,
			Qty:              a.Qty,
		})
	}
	res, err := h.uc.Execute(c.Context(), warehousing.PutawayInput{
		WarehouseID: c.Params("id"),
		Actions:     actions,
		OverrideKey: in.IdempotencyKey,
		Actor:       GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	status := fiber.StatusCreated
	if res.Duplicate {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.PutawayBatchResponse{
		PostedCount: res.PostedCount,
		BatchRef:    res.BatchRef,
		Duplicate:   res.Duplicate,
	})
}

// List lista el stock pendiente en los bins RETURN/RECEIVE de la bodega.
func (h *PutawayHandler) List(c *fiber.Ctx) error {
	rows, err := h.stockUC.PutawayList(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.PutawayListRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PutawayListRow{
			ItemID:      r.ItemID,
			BinID:       r.LocationID,
			BinSubtype:  string(r.Subtype),
			Qty:         r.Qty,
			LastMovedAt: r.LastMovedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "rows": out})
}

// KPIs métricas agregadas de putaway de la bodega.
func (h *PutawayHandler) KPIs(c *fiber.Ctx) error {
	warehouseID := c.Params("id")
	kpis, err := h.stockUC.PutawayKPIs(warehouseID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.PutawayKPIsResponse{
		WarehouseID: warehouseID,
		Return: dto.PutawayKPIBinResponse{
			Qty:         kpis.Return.Qty,
			Items:       kpis.Return.Items,
			LastMovedAt: kpis.Return.LastMovedAt,
		},
		Receive: dto.PutawayKPIBinResponse{
			Qty:         kpis.Receive.Qty,
			Items:       kpis.Receive.Items,
			LastMovedAt: kpis.Receive.LastMovedAt,
		},
		TotalQty:   kpis.TotalQty,
		TotalItems: kpis.TotalItems,
	})
}
