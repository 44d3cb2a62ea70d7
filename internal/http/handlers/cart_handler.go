package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"bagshop/internal/domain"
	"bagshop/internal/log"
	"bagshop/internal/services"
	"bagshop/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// rawValue keeps a JSON scalar as text so 3 and "3" parse the same way as the
// query string does.
type rawValue string

func (v *rawValue) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*v = rawValue(s)
	return nil
}

type addToCartBody struct {
	ProductID rawValue `json:"productId"`
	Quantity  rawValue `json:"quantity"`
}

func invalidProductID() error {
	return domain.Validation(domain.CodeInvalidProductID, "productId must be a positive integer",
		domain.FieldError{Field: "productId", Message: "must be a positive integer"})
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	lines, err := h.Cart.Get(c.UserContext(), userNo(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, lines)
}

// Add takes productId and quantity from the query string when productId is
// there, otherwise both come from the JSON body.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	pid, qty := c.Query("productId"), c.Query("quantity")
	if pid == "" {
		var body addToCartBody
		if err := decode(c, &body); err != nil {
			return err
		}
		pid, qty = string(body.ProductID), string(body.Quantity)
	}
	productID, ok := validate.ID(pid)
	if !ok {
		return invalidProductID()
	}
	n, err := validate.Qty(qty)
	if err != nil {
		return err
	}
	if err := h.Cart.Add(c.UserContext(), userNo(c), productID, n); err != nil {
		return err
	}
	log.Info(c, "cart.add", map[string]any{"productId": productID, "quantity": n})
	return result(c)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return invalidProductID()
	}
	if err := h.Cart.Remove(c.UserContext(), userNo(c), productID); err != nil {
		return err
	}
	log.Info(c, "cart.remove", map[string]any{"productId": productID})
	return result(c)
}
