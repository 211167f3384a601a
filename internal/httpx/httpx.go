package httpx

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/KOD666/study-group-plus/internal/service"
)

// OK writes the success envelope, merging payload into the response body.
func OK(c *fiber.Ctx, status int, message string, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// Fail writes the failure envelope. No payload accompanies a failure.
func Fail(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "Request failed"
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// FromError maps a service error onto the envelope. Unclassified errors are
// logged with the request id and reported as a bare 500.
func FromError(c *fiber.Ctx, err error) error {
	kind := service.KindOf(err)
	if kind == service.KindInternal {
		log.Printf("request %s: internal error: %v", requestID(c), err)
		return Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return Fail(c, StatusOf(kind), err.Error())
}

// StatusOf maps the error taxonomy to HTTP statuses.
func StatusOf(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return fiber.StatusBadRequest
	case service.KindAuthentication:
		return fiber.StatusUnauthorized
	case service.KindAuthorization:
		return fiber.StatusForbidden
	case service.KindNotFound:
		return fiber.StatusNotFound
	case service.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func requestID(c *fiber.Ctx) string {
	if v := c.Locals("requestid"); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
