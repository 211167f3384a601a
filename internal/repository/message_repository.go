package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/KOD666/study-group-plus/internal/models"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindInGroup looks a message up within its owning group, deleted or not.
func (r *MessageRepository) FindInGroup(messageID, groupID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Where("id = ? AND group_id = ?", messageID, groupID).
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// FindPage fetches a page of non-deleted messages newest-first. Callers
// reverse the slice for display; fetching descending keeps page boundaries
// stable while new messages arrive.
func (r *MessageRepository) FindPage(groupID uint, limit, skip int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("group_id = ? AND is_deleted = ?", groupID, false).
		Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) CountByGroup(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("group_id = ? AND is_deleted = ?", groupID, false).
		Count(&count).Error
	return count, err
}

func (r *MessageRepository) ListAscending(groupID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("group_id = ? AND is_deleted = ?", groupID, false).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) SoftDelete(messageID, deletedBy uint) error {
	now := time.Now()
	return r.db.Model(&models.Message{}).
		Where("id = ?", messageID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_by": deletedBy,
			"deleted_at": now,
		}).Error
}
