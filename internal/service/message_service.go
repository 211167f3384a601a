package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/KOD666/study-group-plus/internal/cache"
	"github.com/KOD666/study-group-plus/internal/models"
	"github.com/KOD666/study-group-plus/internal/repository"
	"github.com/KOD666/study-group-plus/internal/validation"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type MessageService struct {
	messageRepo  repository.MessageRepositoryInterface
	groupRepo    repository.GroupRepositoryInterface
	userRepo     repository.UserRepositoryInterface
	messageCache *cache.MessageCache
	userCache    *cache.UserCache
}

func NewMessageService(
	messageRepo repository.MessageRepositoryInterface,
	groupRepo repository.GroupRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	messageCache *cache.MessageCache,
	userCache *cache.UserCache,
) *MessageService {
	return &MessageService{
		messageRepo:  messageRepo,
		groupRepo:    groupRepo,
		userRepo:     userRepo,
		messageCache: messageCache,
		userCache:    userCache,
	}
}

// requireMember gates every message operation: an inactive group and a
// non-member caller are both reported as not-found, never as forbidden,
// so outsiders cannot probe which groups exist.
func (s *MessageService) requireMember(groupID, userID uint) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Group not found or you are not a member")
		}
		return nil, internalError(err)
	}
	isMember, err := s.groupRepo.IsMember(groupID, userID)
	if err != nil {
		return nil, internalError(err)
	}
	if !isMember {
		return nil, notFoundError("Group not found or you are not a member")
	}
	return group, nil
}

func (s *MessageService) resolveSender(userID uint) (*models.UserResponse, error) {
	if cached, ok := s.userCache.Get(userID); ok {
		return cached, nil
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, internalError(err)
	}
	resp := user.ToResponse()
	_ = s.userCache.Set(resp)
	return &resp, nil
}

// SendMessage appends a message with the sender identity snapshotted at
// send time and returns the new message id.
func (s *MessageService) SendMessage(groupID, userID uint, body string) (uint, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, validationError("Message cannot be empty")
	}
	if max := validation.MaxMessageLength(); len(body) > max {
		return 0, validationError(fmt.Sprintf("Message is too long (max %d characters)", max))
	}

	if _, err := s.requireMember(groupID, userID); err != nil {
		return 0, err
	}

	sender, err := s.resolveSender(userID)
	if err != nil {
		return 0, err
	}

	message := &models.Message{
		GroupID:     groupID,
		SenderID:    sender.ID,
		SenderName:  sender.Name,
		SenderEmail: sender.Email,
		Body:        body,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return 0, internalError(err)
	}

	// Chat activity bumps the group's updatedAt.
	if err := s.groupRepo.Touch(groupID); err != nil {
		return 0, internalError(err)
	}
	_ = s.messageCache.Invalidate(groupID)

	return message.ID, nil
}

type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalMessages int64 `json:"totalMessages"`
	HasMore       bool  `json:"hasMore"`
}

type MessagePage struct {
	Messages   []models.MessageResponse `json:"messages"`
	Pagination Pagination               `json:"pagination"`
}

// ListMessages returns one page of non-deleted messages in ascending sent
// order. Storage fetches newest-first for stable page boundaries, then the
// page is reversed before it leaves the service.
func (s *MessageService) ListMessages(groupID, userID uint, page, limit int) (*MessagePage, error) {
	if _, err := s.requireMember(groupID, userID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	skip := (page - 1) * limit

	cacheable := page == 1 && limit == DefaultPageSize

	var messages []models.Message
	var total int64
	if cached, ok := s.messageCache.GetFirstPage(groupID); ok && cacheable {
		messages, total = cached.Messages, cached.Total
	} else {
		var err error
		messages, err = s.messageRepo.FindPage(groupID, limit, skip)
		if err != nil {
			return nil, internalError(err)
		}
		total, err = s.messageRepo.CountByGroup(groupID)
		if err != nil {
			return nil, internalError(err)
		}
		if cacheable {
			_ = s.messageCache.SetFirstPage(groupID, &cache.CachedPage{Messages: messages, Total: total})
		}
	}

	// Reverse to chronological order.
	responses := make([]models.MessageResponse, len(messages))
	for i := range messages {
		responses[len(messages)-1-i] = messages[i].ToResponse()
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &MessagePage{
		Messages: responses,
		Pagination: Pagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalMessages: total,
			HasMore:       int64(skip+len(messages)) < total,
		},
	}, nil
}

// DeleteMessage soft-deletes. Only the sender or the group's creator may
// delete; other members get an authorization error, not a silent no-op.
func (s *MessageService) DeleteMessage(groupID, messageID, userID uint) error {
	group, err := s.requireMember(groupID, userID)
	if err != nil {
		return err
	}

	message, err := s.messageRepo.FindInGroup(messageID, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Message not found")
		}
		return internalError(err)
	}

	if message.SenderID != userID && group.CreatorID != userID {
		return authorizationError("You are not authorized to delete this message")
	}

	if err := s.messageRepo.SoftDelete(messageID, userID); err != nil {
		return internalError(err)
	}
	_ = s.messageCache.Invalidate(groupID)
	return nil
}
