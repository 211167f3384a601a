package repository

import (
	"github.com/KOD666/study-group-plus/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	FindByIDs(ids []uint) ([]models.User, error)
}

// GroupFilter narrows group discovery. Zero values mean "no filter".
type GroupFilter struct {
	Search  string
	Subject string
}

// GroupRepositoryInterface defines the contract for group repository operations
type GroupRepositoryInterface interface {
	Create(group *models.Group) error
	FindByID(id uint) (*models.Group, error)
	FindByCode(code string) (*models.Group, error)
	CodeExists(code string) (bool, error)
	UpdateFields(id uint, fields map[string]interface{}) error
	SoftDelete(id uint) error
	Touch(id uint) error
	AddMember(groupID, userID uint) error
	IsMember(groupID, userID uint) (bool, error)
	MemberCount(groupID uint) (int64, error)
	ListForUser(userID uint) ([]models.Group, error)
	Discover(filter GroupFilter, limit, skip int) ([]models.Group, int64, error)
}

// MessageRepositoryInterface defines the contract for message repository operations
type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	FindInGroup(messageID, groupID uint) (*models.Message, error)
	FindPage(groupID uint, limit, skip int) ([]models.Message, error)
	CountByGroup(groupID uint) (int64, error)
	ListAscending(groupID uint) ([]models.Message, error)
	SoftDelete(messageID, deletedBy uint) error
}

// NoteRepositoryInterface defines the contract for note repository operations
type NoteRepositoryInterface interface {
	Create(note *models.Note) error
	ListByGroup(groupID uint) ([]models.Note, error)
}
