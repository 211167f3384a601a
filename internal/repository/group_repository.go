package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/KOD666/study-group-plus/internal/models"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// FindByID returns an active group with members and creator resolved.
// Inactive groups are indistinguishable from absent ones.
func (r *GroupRepository) FindByID(id uint) (*models.Group, error) {
	var group models.Group
	err := r.db.Where("is_active = ?", true).
		Preload("Members.User").
		Preload("Creator").
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) FindByCode(code string) (*models.Group, error) {
	var group models.Group
	err := r.db.Where("code = ? AND is_active = ?", code, true).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// CodeExists checks active and inactive groups: a code is never reissued,
// even after its group is soft-deleted.
func (r *GroupRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Group{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *GroupRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Group{}).Where("id = ?", id).Updates(fields).Error
}

func (r *GroupRepository) SoftDelete(id uint) error {
	return r.UpdateFields(id, map[string]interface{}{"is_active": false})
}

func (r *GroupRepository) Touch(id uint) error {
	return r.db.Model(&models.Group{}).Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

// AddMember inserts a membership row. The composite primary key makes this
// an atomic add-to-set: a losing concurrent join gets gorm.ErrDuplicatedKey.
func (r *GroupRepository) AddMember(groupID, userID uint) error {
	member := models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
	}
	return r.db.Create(&member).Error
}

func (r *GroupRepository) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GroupRepository) MemberCount(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *GroupRepository) ListForUser(userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.
		Distinct("groups.*").
		Joins("LEFT JOIN group_members ON group_members.group_id = groups.id").
		Where("groups.is_active = ? AND (group_members.user_id = ? OR groups.creator_id = ?)",
			true, userID, userID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Discover(filter GroupFilter, limit, skip int) ([]models.Group, int64, error) {
	q := r.db.Model(&models.Group{}).Where("is_active = ?", true)

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"(LOWER(name) LIKE ? OR LOWER(subject) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?)",
			like, like, like, like,
		)
	}
	if subject := strings.TrimSpace(filter.Subject); subject != "" {
		q = q.Where("subject = ?", subject)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []models.Group
	err := q.Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&groups).Error
	return groups, total, err
}
