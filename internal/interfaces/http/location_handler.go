package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// LocationHandler maneja las peticiones HTTP para ubicaciones (protegido).
type LocationHandler struct {
	uc *warehousing.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *warehousing.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create crea una ubicación física o un bin virtual adicional.
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Create(warehousing.CreateLocationInput{
		WarehouseID: in.WarehouseID,
		Type:        entity.LocationType(in.Type),
		Subtype:     entity.LocationSubtype(in.Subtype),
		Code:        in.Code,
		DisplayName: in.DisplayName,
		Actor:       GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(locationResponse(loc))
}

// GetByID devuelve una ubicación por id.
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	loc, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(locationResponse(loc))
}

// List lista ubicaciones con filtros por bodega, tipo, subtipo y estado.
func (h *LocationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(repository.LocationFilter{
		WarehouseID: c.Query("warehouse_id"),
		Type:        entity.LocationType(c.Query("type")),
		Subtype:     entity.LocationSubtype(c.Query("subtype")),
		Status:      c.Query("status"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, loc := range list {
		out = append(out, locationResponse(loc))
	}
	return c.JSON(fiber.Map{"total": len(out), "locations": out})
}

// UpdateStatus activa o desactiva una ubicación. Desactivar exige saldo cero
// y las ubicaciones system-managed no se tocan.
func (h *LocationHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateLocationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Params("id"), in.Status); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}
