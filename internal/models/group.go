package models

import (
	"time"
)

const MaxTags = 10

type Group struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string   `gorm:"size:100;not null" json:"name"`
	Subject     string   `gorm:"size:100;not null;index" json:"subject"`
	Description string   `gorm:"size:500" json:"description"`
	Tags        []string `gorm:"serializer:json" json:"tags"`

	// Shareable invitation code, uppercase [A-Z0-9]. Normally 6 chars; the
	// collision fallback appends a 3-digit suffix.
	Code string `gorm:"size:9;uniqueIndex;not null" json:"group_code"`

	CreatorID uint `gorm:"not null;index" json:"creator_id"`

	// IsActive is the soft-delete marker. Inactive groups persist but are
	// excluded from discovery, detail, join and message operations.
	IsActive bool `gorm:"default:true;index" json:"is_active"`

	// Associations
	Creator User          `gorm:"foreignKey:CreatorID" json:"creator"`
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members"`
}

// GroupMember is one membership row. The composite primary key makes a
// concurrent duplicate join fail at the database instead of double-adding.
type GroupMember struct {
	GroupID  uint      `gorm:"primaryKey" json:"group_id"`
	UserID   uint      `gorm:"primaryKey" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user"`
	Group Group `gorm:"foreignKey:GroupID" json:"-"`
}

// GroupSummary is the compact projection returned by create/join/list.
type GroupSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Code        string    `json:"group_code"`
	CreatorID   uint      `json:"creator_id"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (g *Group) ToSummary(memberCount int) GroupSummary {
	tags := g.Tags
	if tags == nil {
		tags = []string{}
	}
	return GroupSummary{
		ID:          g.ID,
		Name:        g.Name,
		Subject:     g.Subject,
		Description: g.Description,
		Tags:        tags,
		Code:        g.Code,
		CreatorID:   g.CreatorID,
		MemberCount: memberCount,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// MemberDetail is a resolved member identity for the full group view.
type MemberDetail struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

// GroupDetail is the denormalized full view: group fields plus resolved
// creator and member identities, notes and messages in one payload.
type GroupDetail struct {
	GroupSummary
	Creator  UserResponse      `json:"created_by"`
	Members  []MemberDetail    `json:"member_details"`
	Notes    []NoteResponse    `json:"notes"`
	Messages []MessageResponse `json:"messages"`
}
