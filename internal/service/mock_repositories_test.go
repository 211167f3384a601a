package service

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/KOD666/study-group-plus/internal/models"
	"github.com/KOD666/study-group-plus/internal/repository"
)

// MockUserRepository is an in-memory implementation of
// repository.UserRepositoryInterface for tests.
type MockUserRepository struct {
	users  map[uint]*models.User
	nextID uint
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByIDs(ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

// MockGroupRepository is an in-memory implementation of
// repository.GroupRepositoryInterface. When users is set, FindByID resolves
// member and creator identities the way the real repository's preloads do.
type MockGroupRepository struct {
	groups      map[uint]*models.Group
	memberships map[uint]map[uint]time.Time
	users       *MockUserRepository
	nextID      uint
}

func NewMockGroupRepository(users *MockUserRepository) *MockGroupRepository {
	return &MockGroupRepository{
		groups:      make(map[uint]*models.Group),
		memberships: make(map[uint]map[uint]time.Time),
		users:       users,
		nextID:      1,
	}
}

func (m *MockGroupRepository) Create(group *models.Group) error {
	for _, g := range m.groups {
		if g.Code == group.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if group.ID == 0 {
		group.ID = m.nextID
		m.nextID++
	}
	if group.ID >= m.nextID {
		m.nextID = group.ID + 1
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}
	if group.UpdatedAt.IsZero() {
		group.UpdatedAt = group.CreatedAt
	}
	m.groups[group.ID] = group
	return nil
}

func (m *MockGroupRepository) FindByID(id uint) (*models.Group, error) {
	g, ok := m.groups[id]
	if !ok || !g.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	out := *g
	out.Members = nil
	for userID, joinedAt := range m.memberships[id] {
		member := models.GroupMember{GroupID: id, UserID: userID, JoinedAt: joinedAt}
		if m.users != nil {
			if u, ok := m.users.users[userID]; ok {
				member.User = *u
			}
		}
		out.Members = append(out.Members, member)
	}
	sort.Slice(out.Members, func(i, j int) bool {
		return out.Members[i].JoinedAt.Before(out.Members[j].JoinedAt)
	})
	if m.users != nil {
		if u, ok := m.users.users[g.CreatorID]; ok {
			out.Creator = *u
		}
	}
	return &out, nil
}

func (m *MockGroupRepository) FindByCode(code string) (*models.Group, error) {
	for _, g := range m.groups {
		if g.Code == code && g.IsActive {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockGroupRepository) CodeExists(code string) (bool, error) {
	for _, g := range m.groups {
		if g.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockGroupRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	g, ok := m.groups[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			g.Name = value.(string)
		case "subject":
			g.Subject = value.(string)
		case "description":
			g.Description = value.(string)
		case "tags":
			// The real repository stores pre-marshaled JSON; keep the raw
			// string parseable for assertions.
			g.Tags = parseJSONTags(value.(string))
		case "is_active":
			g.IsActive = value.(bool)
		case "updated_at":
			g.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

func parseJSONTags(raw string) []string {
	raw = strings.Trim(raw, "[]")
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.Trim(strings.TrimSpace(p), `"`))
	}
	return out
}

func (m *MockGroupRepository) SoftDelete(id uint) error {
	return m.UpdateFields(id, map[string]interface{}{"is_active": false})
}

func (m *MockGroupRepository) Touch(id uint) error {
	return m.UpdateFields(id, map[string]interface{}{"updated_at": time.Now()})
}

func (m *MockGroupRepository) AddMember(groupID, userID uint) error {
	if _, ok := m.memberships[groupID]; !ok {
		m.memberships[groupID] = make(map[uint]time.Time)
	}
	if _, ok := m.memberships[groupID][userID]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.memberships[groupID][userID] = time.Now()
	return nil
}

func (m *MockGroupRepository) IsMember(groupID, userID uint) (bool, error) {
	_, ok := m.memberships[groupID][userID]
	return ok, nil
}

func (m *MockGroupRepository) MemberCount(groupID uint) (int64, error) {
	return int64(len(m.memberships[groupID])), nil
}

func (m *MockGroupRepository) ListForUser(userID uint) ([]models.Group, error) {
	var out []models.Group
	for id, g := range m.groups {
		if !g.IsActive {
			continue
		}
		_, member := m.memberships[id][userID]
		if member || g.CreatorID == userID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockGroupRepository) Discover(filter repository.GroupFilter, limit, skip int) ([]models.Group, int64, error) {
	var matched []models.Group
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	subject := strings.TrimSpace(filter.Subject)
	for _, g := range m.groups {
		if !g.IsActive {
			continue
		}
		if subject != "" && g.Subject != subject {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(g.Name + " " + g.Subject + " " + g.Description + " " + strings.Join(g.Tags, " "))
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		matched = append(matched, *g)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if skip >= len(matched) {
		return []models.Group{}, total, nil
	}
	matched = matched[skip:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// MockMessageRepository is an in-memory implementation of
// repository.MessageRepositoryInterface.
type MockMessageRepository struct {
	messages map[uint]*models.Message
	nextID   uint
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{
		messages: make(map[uint]*models.Message),
		nextID:   1,
	}
}

func (m *MockMessageRepository) Create(message *models.Message) error {
	if message.ID == 0 {
		message.ID = m.nextID
		m.nextID++
	}
	if message.ID >= m.nextID {
		m.nextID = message.ID + 1
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	m.messages[message.ID] = message
	return nil
}

func (m *MockMessageRepository) FindInGroup(messageID, groupID uint) (*models.Message, error) {
	if msg, ok := m.messages[messageID]; ok && msg.GroupID == groupID {
		return msg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockMessageRepository) visible(groupID uint) []models.Message {
	var out []models.Message
	for _, msg := range m.messages {
		if msg.GroupID == groupID && !msg.IsDeleted {
			out = append(out, *msg)
		}
	}
	return out
}

func (m *MockMessageRepository) FindPage(groupID uint, limit, skip int) ([]models.Message, error) {
	out := m.visible(groupID)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if skip >= len(out) {
		return []models.Message{}, nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockMessageRepository) CountByGroup(groupID uint) (int64, error) {
	return int64(len(m.visible(groupID))), nil
}

func (m *MockMessageRepository) ListAscending(groupID uint) ([]models.Message, error) {
	out := m.visible(groupID)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockMessageRepository) SoftDelete(messageID, deletedBy uint) error {
	msg, ok := m.messages[messageID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	msg.IsDeleted = true
	msg.DeletedBy = &deletedBy
	msg.DeletedAt = &now
	return nil
}

// MockNoteRepository is an in-memory implementation of
// repository.NoteRepositoryInterface.
type MockNoteRepository struct {
	notes  map[uint]*models.Note
	nextID uint
}

func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{
		notes:  make(map[uint]*models.Note),
		nextID: 1,
	}
}

func (m *MockNoteRepository) Create(note *models.Note) error {
	if note.ID == 0 {
		note.ID = m.nextID
		m.nextID++
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	m.notes[note.ID] = note
	return nil
}

func (m *MockNoteRepository) ListByGroup(groupID uint) ([]models.Note, error) {
	var out []models.Note
	for _, n := range m.notes {
		if n.GroupID == groupID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
