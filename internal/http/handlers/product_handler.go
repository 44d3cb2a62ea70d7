package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bagshop/internal/log"
	"bagshop/internal/services"
	"bagshop/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Catalog.List(c.UserContext(), c.Query("categoryCode"))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, ps)
}

func (h *ProductHandler) New(c *fiber.Ctx) error {
	ps, err := h.Catalog.ListNew(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, ps)
}

func (h *ProductHandler) Best(c *fiber.Ctx) error {
	ps, err := h.Catalog.ListBest(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, ps)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return invalidProductID()
	}
	p, err := h.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.CreateProductInput
	if err := decode(c, &in); err != nil {
		return err
	}
	p, err := h.Catalog.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	log.Audit(c, "product.create", map[string]any{"productId": p.ID, "categoryCode": string(p.CategoryCode)})
	return data(c, fiber.StatusCreated, p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return invalidProductID()
	}
	if err := h.Catalog.Delete(c.UserContext(), id); err != nil {
		return err
	}
	log.Audit(c, "product.delete", map[string]any{"productId": id})
	return result(c)
}
