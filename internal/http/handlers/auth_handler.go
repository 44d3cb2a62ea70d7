package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bagshop/internal/domain"
	"bagshop/internal/log"
	"bagshop/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := decode(c, &in); err != nil {
		return err
	}
	u, err := h.Auth.Signup(c.UserContext(), in)
	if err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			log.Security(c, "auth.signup.conflict", map[string]any{"userId": in.UserID})
		}
		return err
	}
	log.Audit(c, "auth.signup", map[string]any{"userId": u.UserID, "userNo": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := decode(c, &in); err != nil {
		return err
	}
	res, err := h.Auth.Login(c.UserContext(), in)
	if err != nil {
		if domain.KindOf(err) == domain.KindInvalidCredential {
			log.Security(c, "auth.login.fail", map[string]any{"userId": in.UserID})
		}
		return err
	}
	log.Audit(c, "auth.login.success", map[string]any{"userId": in.UserID})
	return c.JSON(res)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, err := h.Auth.Profile(c.UserContext(), userNo(c))
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var in services.UpdateProfileInput
	if err := decode(c, &in); err != nil {
		return err
	}
	u, err := h.Auth.UpdateProfile(c.UserContext(), userNo(c), in)
	if err != nil {
		return err
	}
	log.Audit(c, "user.profile.update", nil)
	return c.JSON(u)
}
