package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/KOD666/study-group-plus/internal/httpx"
	"github.com/KOD666/study-group-plus/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input service.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.authService.Signup(input)
	if err != nil {
		return httpx.FromError(c, err)
	}

	return httpx.OK(c, fiber.StatusCreated, "Account created successfully", fiber.Map{
		"user":  result.User,
		"token": result.Token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.authService.Login(input)
	if err != nil {
		return httpx.FromError(c, err)
	}

	return httpx.OK(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  result.User,
		"token": result.Token,
	})
}

// Me resolves the identity behind the bearer token; clients use it instead
// of trusting a locally cached user object.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return httpx.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return httpx.OK(c, fiber.StatusOK, "", fiber.Map{"user": user})
}
