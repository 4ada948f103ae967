package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// WarehouseHandler maneja las peticiones HTTP para bodegas (protegido).
type WarehouseHandler struct {
	uc *warehousing.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *warehousing.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create crea la bodega y provisiona sus bins virtuales estándar.
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	w, err := h.uc.Create(warehousing.CreateWarehouseInput{
		Code:  in.Code,
		Name:  in.Name,
		Actor: GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(warehouseResponse(w))
}

// GetByID devuelve una bodega por id.
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(warehouseResponse(out))
}

// List lista bodegas paginadas.
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, warehouseResponse(w))
	}
	return c.JSON(fiber.Map{"total": len(out), "warehouses": out})
}

// VirtualBins lista los bins virtuales provisionados de la bodega.
func (h *WarehouseHandler) VirtualBins(c *fiber.Ctx) error {
	list, err := h.uc.VirtualBins(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, loc := range list {
		out = append(out, locationResponse(loc))
	}
	return c.JSON(fiber.Map{"total": len(out), "bins": out})
}

// ProvisionBins reintenta la provisión de bins virtuales (idempotente: solo
// crea los que falten, p.ej. tras agregar subtipos nuevos al estándar).
func (h *WarehouseHandler) ProvisionBins(c *fiber.Ctx) error {
	created, err := h.uc.ProvisionVirtualBins(c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ProvisionBinsResponse{Created: created})
}

func warehouseResponse(w *entity.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func locationResponse(loc *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:            loc.ID,
		WarehouseID:   loc.WarehouseID,
		Type:          string(loc.Type),
		Subtype:       string(loc.Subtype),
		Code:          loc.Code,
		DisplayName:   loc.DisplayName,
		SystemManaged: loc.SystemManaged,
		Status:        loc.Status,
	}
}

// pageParams limita la paginación a rangos razonables.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
