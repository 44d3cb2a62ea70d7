package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bagshop/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, cats)
}
