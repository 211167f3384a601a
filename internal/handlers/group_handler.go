package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/KOD666/study-group-plus/internal/httpx"
	"github.com/KOD666/study-group-plus/internal/repository"
	"github.com/KOD666/study-group-plus/internal/service"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func groupIDParam(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *fiber.Ctx, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	var input service.CreateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	group, err := h.groupService.CreateGroup(input)
	if err != nil {
		return httpx.FromError(c, err)
	}

	return httpx.OK(c, fiber.StatusCreated, "Group created successfully", fiber.Map{
		"groupId":   group.ID,
		"groupCode": group.Code,
		"group":     group,
	})
}

// Discover serves both discovery modes: with userId it lists that user's
// groups, otherwise it searches all active groups.
func (h *GroupHandler) Discover(c *fiber.Ctx) error {
	if userID, ok := queryUint(c, "userId"); ok {
		groups, err := h.groupService.ListForUser(userID)
		if err != nil {
			return httpx.FromError(c, err)
		}
		return httpx.OK(c, fiber.StatusOK, "", fiber.Map{"groups": groups})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	skip, _ := strconv.Atoi(c.Query("skip", "0"))
	filter := repository.GroupFilter{
		Search:  c.Query("search"),
		Subject: c.Query("subject"),
	}

	result, err := h.groupService.Discover(filter, limit, skip)
	if err != nil {
		return httpx.FromError(c, err)
	}

	return httpx.OK(c, fiber.StatusOK, "", fiber.Map{
		"groups": result.Groups,
		"pagination": fiber.Map{
			"total":   result.Total,
			"limit":   result.Limit,
			"skip":    result.Skip,
			"hasMore": result.HasMore,
		},
	})
}

func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	groupID, ok := groupIDParam(c)
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid group ID format")
	}

	group, err := h.groupService.GetGroupDetail(groupID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return httpx.OK(c, fiber.StatusOK, "", fiber.Map{"group": group})
}

type updateGroupRequest struct {
	service.UpdateGroupInput
	UserID uint `json:"userId"`
}

func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	groupID, ok := groupIDParam(c)
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid group ID format")
	}

	var req updateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserID == 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "User ID is required")
	}

	if err := h.groupService.UpdateGroup(groupID, req.UserID, req.UpdateGroupInput); err != nil {
		return httpx.FromError(c, err)
	}
	return httpx.OK(c, fiber.StatusOK, "Group updated successfully", nil)
}

func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	groupID, ok := groupIDParam(c)
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid group ID format")
	}
	userID, ok := queryUint(c, "userId")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "User ID is required")
	}

	if err := h.groupService.SoftDeleteGroup(groupID, userID); err != nil {
		return httpx.FromError(c, err)
	}
	return httpx.OK(c, fiber.StatusOK, "Group deleted successfully", nil)
}

type joinGroupRequest struct {
	GroupCode string `json:"groupCode"`
	UserID    uint   `json:"userId"`
}

func (h *GroupHandler) JoinGroup(c *fiber.Ctx) error {
	var req joinGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.GroupCode == "" || req.UserID == 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "Group code and user ID are required")
	}

	group, err := h.groupService.JoinByCode(req.GroupCode, req.UserID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return httpx.OK(c, fiber.StatusOK, "Successfully joined the group", fiber.Map{"group": group})
}
