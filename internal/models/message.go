package models

import (
	"time"
)

type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"sent_at"`

	GroupID uint `gorm:"not null;index" json:"group_id"`

	// Sender snapshot captured at send time; not refreshed on rename.
	SenderID    uint   `gorm:"not null;index" json:"sender_id"`
	SenderName  string `gorm:"size:100;not null" json:"sender_name"`
	SenderEmail string `gorm:"size:255;not null" json:"sender_email"`

	Body string `gorm:"type:text;not null" json:"message"`

	// Soft delete. Deleted messages are kept but excluded from listings.
	IsDeleted bool       `gorm:"default:false;index" json:"is_deleted"`
	DeletedBy *uint      `json:"deleted_by,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	Group Group `gorm:"foreignKey:GroupID" json:"-"`
}

type MessageSender struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MessageResponse struct {
	ID     uint          `json:"id"`
	Body   string        `json:"message"`
	Sender MessageSender `json:"sender"`
	SentAt time.Time     `json:"sent_at"`
}

func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		ID:   m.ID,
		Body: m.Body,
		Sender: MessageSender{
			ID:    m.SenderID,
			Name:  m.SenderName,
			Email: m.SenderEmail,
		},
		SentAt: m.CreatedAt,
	}
}
