package repository

import (
	"gorm.io/gorm"

	"github.com/KOD666/study-group-plus/internal/models"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(note *models.Note) error {
	return r.db.Create(note).Error
}

func (r *NoteRepository) ListByGroup(groupID uint) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}
