package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/KOD666/study-group-plus/internal/models"
	"github.com/KOD666/study-group-plus/internal/repository"
	"github.com/KOD666/study-group-plus/internal/validation"
)

type NoteService struct {
	noteRepo  repository.NoteRepositoryInterface
	groupRepo repository.GroupRepositoryInterface
	userRepo  repository.UserRepositoryInterface
}

func NewNoteService(
	noteRepo repository.NoteRepositoryInterface,
	groupRepo repository.GroupRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *NoteService {
	return &NoteService{
		noteRepo:  noteRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

func (s *NoteService) requireMember(groupID, userID uint) error {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Group not found or you are not a member")
		}
		return internalError(err)
	}
	isMember, err := s.groupRepo.IsMember(groupID, userID)
	if err != nil {
		return internalError(err)
	}
	if !isMember {
		return notFoundError("Group not found or you are not a member")
	}
	return nil
}

func (s *NoteService) ListNotes(groupID, userID uint) ([]models.NoteResponse, error) {
	if err := s.requireMember(groupID, userID); err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListByGroup(groupID)
	if err != nil {
		return nil, internalError(err)
	}
	responses := make([]models.NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, notes[i].ToResponse())
	}
	return responses, nil
}

func (s *NoteService) CreateNote(groupID, userID uint, title, content string) (uint, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, validationError("Note title is required")
	}

	if err := s.requireMember(groupID, userID); err != nil {
		return 0, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFoundError("User not found")
		}
		return 0, internalError(err)
	}

	note := &models.Note{
		GroupID:      groupID,
		Title:        validation.TrimAndLimit(title, 200),
		Content:      strings.TrimSpace(content),
		UploaderID:   user.ID,
		UploaderName: user.Name,
	}
	if err := s.noteRepo.Create(note); err != nil {
		return 0, internalError(err)
	}
	return note.ID, nil
}
