package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/KOD666/study-group-plus/internal/groupcode"
	"github.com/KOD666/study-group-plus/internal/models"
	"github.com/KOD666/study-group-plus/internal/repository"
	"github.com/KOD666/study-group-plus/internal/validation"
)

type GroupService struct {
	groupRepo   repository.GroupRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	messageRepo repository.MessageRepositoryInterface
	noteRepo    repository.NoteRepositoryInterface
}

func NewGroupService(
	groupRepo repository.GroupRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	messageRepo repository.MessageRepositoryInterface,
	noteRepo repository.NoteRepositoryInterface,
) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		noteRepo:    noteRepo,
	}
}

type CreateGroupInput struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Tags        string `json:"tags"`
	Description string `json:"description"`
	CreatedBy   uint   `json:"createdBy"`
}

func (s *GroupService) CreateGroup(input CreateGroupInput) (*models.GroupSummary, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Subject) == "" || input.CreatedBy == 0 {
		return nil, validationError("Title, subject, and user ID are required")
	}
	if !validation.ValidateGroupTitle(input.Title) {
		return nil, validationError("Group title must be at least 3 characters long")
	}
	if !validation.ValidateSubject(input.Subject) {
		return nil, validationError("Subject must be at least 2 characters long")
	}

	code, err := groupcode.EnsureUnique(s.groupRepo.CodeExists)
	if err != nil {
		return nil, internalError(err)
	}

	group := &models.Group{
		Name:        strings.TrimSpace(input.Title),
		Subject:     strings.TrimSpace(input.Subject),
		Description: validation.TrimAndLimit(input.Description, 500),
		Tags:        validation.ParseTags(input.Tags),
		Code:        code,
		CreatorID:   input.CreatedBy,
		IsActive:    true,
	}
	if err := s.groupRepo.Create(group); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("Group code already in use, please retry")
		}
		return nil, internalError(err)
	}

	// Creator is always the first member.
	if err := s.groupRepo.AddMember(group.ID, input.CreatedBy); err != nil {
		return nil, internalError(err)
	}

	summary := group.ToSummary(1)
	return &summary, nil
}

// GetGroupDetail builds the denormalized full view: group fields, resolved
// creator and members, notes and the chat history in ascending sent order.
func (s *GroupService) GetGroupDetail(groupID uint) (*models.GroupDetail, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Group not found or inactive")
		}
		return nil, internalError(err)
	}

	members := make([]models.MemberDetail, 0, len(group.Members))
	var missing []uint
	for _, m := range group.Members {
		if m.User.ID == 0 {
			missing = append(missing, m.UserID)
			continue
		}
		members = append(members, models.MemberDetail{
			ID:       m.User.ID,
			Name:     m.User.Name,
			Email:    m.User.Email,
			JoinedAt: m.JoinedAt,
		})
	}
	// Best-effort backfill for membership rows whose association did not
	// resolve. With ids normalized at write time this path stays cold.
	if len(missing) > 0 {
		if users, err := s.userRepo.FindByIDs(missing); err == nil {
			joined := make(map[uint]time.Time, len(group.Members))
			for _, m := range group.Members {
				joined[m.UserID] = m.JoinedAt
			}
			for _, u := range users {
				members = append(members, models.MemberDetail{
					ID:       u.ID,
					Name:     u.Name,
					Email:    u.Email,
					JoinedAt: joined[u.ID],
				})
			}
		}
	}

	creator := group.Creator.ToResponse()
	if creator.ID == 0 {
		if u, err := s.userRepo.FindByID(group.CreatorID); err == nil {
			creator = u.ToResponse()
		}
	}

	notes, err := s.noteRepo.ListByGroup(groupID)
	if err != nil {
		return nil, internalError(err)
	}
	noteResponses := make([]models.NoteResponse, 0, len(notes))
	for i := range notes {
		noteResponses = append(noteResponses, notes[i].ToResponse())
	}

	messages, err := s.messageRepo.ListAscending(groupID)
	if err != nil {
		return nil, internalError(err)
	}
	messageResponses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		messageResponses = append(messageResponses, messages[i].ToResponse())
	}

	return &models.GroupDetail{
		GroupSummary: group.ToSummary(len(group.Members)),
		Creator:      creator,
		Members:      members,
		Notes:        noteResponses,
		Messages:     messageResponses,
	}, nil
}

type UpdateGroupInput struct {
	Name        *string `json:"name"`
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
}

func (s *GroupService) UpdateGroup(groupID, requesterID uint, input UpdateGroupInput) error {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Group not found or inactive")
		}
		return internalError(err)
	}
	if group.CreatorID != requesterID {
		return authorizationError("You are not authorized to edit this group")
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		if !validation.ValidateGroupTitle(*input.Name) {
			return validationError("Group title must be at least 3 characters long")
		}
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Subject != nil && strings.TrimSpace(*input.Subject) != "" {
		if !validation.ValidateSubject(*input.Subject) {
			return validationError("Subject must be at least 2 characters long")
		}
		fields["subject"] = strings.TrimSpace(*input.Subject)
	}
	if input.Description != nil {
		// An explicitly empty description clears the old one.
		fields["description"] = validation.TrimAndLimit(*input.Description, 500)
	}
	if input.Tags != nil {
		// Map updates bypass the field serializer, so marshal here.
		b, err := json.Marshal(validation.ParseTags(*input.Tags))
		if err != nil {
			return internalError(err)
		}
		fields["tags"] = string(b)
	}

	if err := s.groupRepo.UpdateFields(groupID, fields); err != nil {
		return internalError(err)
	}
	return nil
}

func (s *GroupService) SoftDeleteGroup(groupID, requesterID uint) error {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Group not found or inactive")
		}
		return internalError(err)
	}
	if group.CreatorID != requesterID {
		return authorizationError("You are not authorized to delete this group")
	}
	if err := s.groupRepo.SoftDelete(groupID); err != nil {
		return internalError(err)
	}
	return nil
}

func (s *GroupService) JoinByCode(code string, userID uint) (*models.GroupSummary, error) {
	code = groupcode.Normalize(code)
	if len(code) != groupcode.Length {
		return nil, validationError("Invalid group code format")
	}

	group, err := s.groupRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Group not found or inactive")
		}
		return nil, internalError(err)
	}

	isMember, err := s.groupRepo.IsMember(group.ID, userID)
	if err != nil {
		return nil, internalError(err)
	}
	if isMember {
		return nil, conflictError("You are already a member of this group")
	}

	if err := s.groupRepo.AddMember(group.ID, userID); err != nil {
		// A concurrent join for the same user lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("You are already a member of this group")
		}
		return nil, internalError(err)
	}
	if err := s.groupRepo.Touch(group.ID); err != nil {
		return nil, internalError(err)
	}

	count, err := s.groupRepo.MemberCount(group.ID)
	if err != nil {
		return nil, internalError(err)
	}
	summary := group.ToSummary(int(count))
	summary.UpdatedAt = time.Now()
	return &summary, nil
}

func (s *GroupService) ListForUser(userID uint) ([]models.GroupSummary, error) {
	groups, err := s.groupRepo.ListForUser(userID)
	if err != nil {
		return nil, internalError(err)
	}
	summaries := make([]models.GroupSummary, 0, len(groups))
	for i := range groups {
		count, err := s.groupRepo.MemberCount(groups[i].ID)
		if err != nil {
			return nil, internalError(err)
		}
		summaries = append(summaries, groups[i].ToSummary(int(count)))
	}
	return summaries, nil
}

type DiscoverResult struct {
	Groups  []models.GroupSummary `json:"groups"`
	Total   int64                 `json:"total"`
	Limit   int                   `json:"limit"`
	Skip    int                   `json:"skip"`
	HasMore bool                  `json:"hasMore"`
}

func (s *GroupService) Discover(filter repository.GroupFilter, limit, skip int) (*DiscoverResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	groups, total, err := s.groupRepo.Discover(filter, limit, skip)
	if err != nil {
		return nil, internalError(err)
	}
	summaries := make([]models.GroupSummary, 0, len(groups))
	for i := range groups {
		count, err := s.groupRepo.MemberCount(groups[i].ID)
		if err != nil {
			return nil, internalError(err)
		}
		summaries = append(summaries, groups[i].ToSummary(int(count)))
	}
	return &DiscoverResult{
		Groups:  summaries,
		Total:   total,
		Limit:   limit,
		Skip:    skip,
		HasMore: int64(skip+limit) < total,
	}, nil
}
