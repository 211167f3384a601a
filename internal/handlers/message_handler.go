package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/KOD666/study-group-plus/internal/httpx"
	"github.com/KOD666/study-group-plus/internal/service"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	groupID, ok := groupIDParam(c)
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid group ID format")
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Message == "" || req.UserID == 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "Message and user ID are required")
	}

	messageID, err := h.messageService.SendMessage(groupID, req.UserID, req.Message)
	if err != nil {
		return httpx.FromError(c, err)
	}

	return httpx.OK(c, fiber.StatusCreated, "Message sent successfully", fiber.Map{
		"messageId": messageID,
	})
}

func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	groupID, ok := groupIDParam(c)
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid group ID format")
	}
	userID, ok := queryUint(c, "userId")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "User ID is required")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	result, err := h.messageService.ListMessages(groupID, userID, page, limit)
	if err != nil {
		return httpx.FromError(c, err)
	}

	return httpx.OK(c, fiber.StatusOK, "", fiber.Map{
		"messages":   result.Messages,
		"pagination": result.Pagination,
	})
}

func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	groupID, ok := groupIDParam(c)
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid group ID format")
	}
	messageID, ok := queryUint(c, "messageId")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Message ID and user ID are required")
	}
	userID, ok := queryUint(c, "userId")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Message ID and user ID are required")
	}

	if err := h.messageService.DeleteMessage(groupID, messageID, userID); err != nil {
		return httpx.FromError(c, err)
	}
	return httpx.OK(c, fiber.StatusOK, "Message deleted successfully", nil)
}
