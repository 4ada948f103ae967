package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// StockHandler lecturas de saldos y del kardex (protegido).
type StockHandler struct {
	uc *warehousing.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *warehousing.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// OnHand saldo actual de (bodega, ubicación, ítem). Siempre responde, con 0
// si la combinación no tiene asientos.
func (h *StockHandler) OnHand(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	locationID := c.Query("location_id")
	itemID := c.Query("item_id")
	if warehouseID == "" || locationID == "" || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id, location_id e item_id son requeridos"})
	}
	qty, err := h.uc.OnHand(warehouseID, locationID, itemID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.OnHandResponse{
		WarehouseID: warehouseID,
		LocationID:  locationID,
		ItemID:      itemID,
		Qty:         qty,
	})
}

// LedgerByLocation asientos de una ubicación, opcionalmente acotados por fecha.
func (h *StockHandler) LedgerByLocation(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	from, to, err := dateRangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	list, err := h.uc.LedgerByLocation(c.Params("id"), from, to, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "entries": ledgerResponses(list)})
}

// LedgerByItem asientos de un ítem en una bodega, opcionalmente acotados por fecha.
func (h *StockHandler) LedgerByItem(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	limit, offset := pageParams(c)
	from, to, err := dateRangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	list, err := h.uc.LedgerByItem(warehouseID, c.Params("id"), from, to, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "entries": ledgerResponses(list)})
}

func dateRangeParams(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}

func ledgerResponses(list []*entity.LedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.LedgerEntryResponse{
			ID:           e.ID,
			WarehouseID:  e.WarehouseID,
			LocationID:   e.LocationID,
			ItemID:       e.ItemID,
			QtyDelta:     e.QtyDelta,
			MovementType: string(e.MovementType),
			RefModel:     e.RefModel,
			RefID:        e.RefID,
			Memo:         e.Memo,
			CreatedBy:    e.CreatedBy,
			CreatedAt:    e.CreatedAt,
		})
	}
	return out
}
