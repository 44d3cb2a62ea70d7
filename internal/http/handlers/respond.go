package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bagshop/internal/domain"
	applog "bagshop/internal/log"
)

type errorBody struct {
	Status  string              `json:"status"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func data(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(fiber.Map{"data": v})
}

func result(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"result": true})
}

func fail(c *fiber.Ctx, status int, code, msg string, fields []domain.FieldError) error {
	return c.Status(status).JSON(errorBody{Status: "error", Code: code, Message: msg, Errors: fields})
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, dst); err != nil {
		return domain.Validation(domain.CodeInvalidBody, "request body is not valid JSON")
	}
	return nil
}

func statusOf(k domain.Kind) int {
	switch k {
	case domain.KindValidation, domain.KindInvalidCredential:
		return fiber.StatusBadRequest
	case domain.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the app's only error-to-response mapping. Anything that is
// not a business error is logged and answered with a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		status := statusOf(de.Kind)
		if status >= fiber.StatusInternalServerError {
			applog.Error(c, "server.error", err, map[string]any{"kind": de.Kind.String()})
			return fail(c, status, de.Code, "internal server error", nil)
		}
		return fail(c, status, de.Code, de.Message, de.Fields)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return fail(c, fe.Code, domain.CodeNotFound, "resource not found", nil)
		case fiber.StatusMethodNotAllowed:
			return fail(c, fe.Code, domain.CodeMethodNotAllowed, "method not allowed", nil)
		case fiber.StatusRequestEntityTooLarge:
			return fail(c, fe.Code, domain.CodePayloadTooLarge, "request body too large", nil)
		case fiber.StatusTooManyRequests:
			return fail(c, fe.Code, domain.CodeTooManyRequests, "too many requests, retry later", nil)
		}
		if fe.Code < fiber.StatusInternalServerError {
			return fail(c, fe.Code, domain.CodeInvalidBody, fe.Message, nil)
		}
	}

	applog.Error(c, "server.error", err, nil)
	return fail(c, fiber.StatusInternalServerError, domain.CodeInternal, "internal server error", nil)
}
