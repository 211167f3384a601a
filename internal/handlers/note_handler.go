package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/KOD666/study-group-plus/internal/httpx"
	"github.com/KOD666/study-group-plus/internal/service"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) GetNotes(c *fiber.Ctx) error {
	groupID, ok := groupIDParam(c)
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid group ID format")
	}
	userID, ok := queryUint(c, "userId")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "User ID is required")
	}

	notes, err := h.noteService.ListNotes(groupID, userID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return httpx.OK(c, fiber.StatusOK, "", fiber.Map{"notes": notes})
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  uint   `json:"userId"`
}

func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	groupID, ok := groupIDParam(c)
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid group ID format")
	}

	var req createNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserID == 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "Title and user ID are required")
	}

	noteID, err := h.noteService.CreateNote(groupID, req.UserID, req.Title, req.Content)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return httpx.OK(c, fiber.StatusCreated, "Note created successfully", fiber.Map{
		"noteId": noteID,
	})
}
