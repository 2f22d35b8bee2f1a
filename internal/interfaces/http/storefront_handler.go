package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greenrail/dispensary-api/internal/application/dto"
	"github.com/greenrail/dispensary-api/internal/application/storefront"
	"github.com/greenrail/dispensary-api/internal/domain"
)

// StorefrontHandler serves the public menu (no auth).
type StorefrontHandler struct {
	uc *storefront.UseCase
}

// NewStorefrontHandler builds the handler.
func NewStorefrontHandler(uc *storefront.UseCase) *StorefrontHandler {
	return &StorefrontHandler{uc: uc}
}

// Menu godoc
// @Summary      Public menu for a dispensary
// @Description  Aggregated stock under the binary availability policy; suspended vendors return 404.
// @Tags         storefront
// @Produce      json
// @Param        slug  path  string  true  "Vendor slug"
// @Success      200   {object}  dto.InventoryListResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storefront/{slug}/products [get]
func (h *StorefrontHandler) Menu(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SLUG", Message: "slug is required"})
	}
	out, err := h.uc.Menu(c.UserContext(), slug)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispensary not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
