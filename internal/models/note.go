package models

import (
	"time"
)

// Note is a shared study note attached to a group.
type Note struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"uploaded_at"`

	GroupID uint `gorm:"not null;index" json:"group_id"`

	Title   string `gorm:"size:200;not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`

	// Uploader snapshot, same convention as message senders.
	UploaderID   uint   `gorm:"not null" json:"uploader_id"`
	UploaderName string `gorm:"size:100;not null" json:"uploader_name"`

	Group Group `gorm:"foreignKey:GroupID" json:"-"`
}

type NoteResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	UploaderID   uint      `json:"uploader_id"`
	UploaderName string    `json:"uploader_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func (n *Note) ToResponse() NoteResponse {
	return NoteResponse{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		UploaderID:   n.UploaderID,
		UploaderName: n.UploaderName,
		UploadedAt:   n.CreatedAt,
	}
}
