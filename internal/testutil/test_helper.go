package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/KOD666/study-group-plus/internal/models"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, name, email string) *models.User {
	if id == 0 {
		id = 1
	}
	if name == "" {
		name = "Test User"
	}
	if email == "" {
		email = fmt.Sprintf("user%d@example.com", id)
	}

	return &models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: "hashed_password_123",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestGroup creates an active test group with default values
func (h *TestHelper) CreateTestGroup(id, creatorID uint, name string) *models.Group {
	if id == 0 {
		id = 1
	}
	if creatorID == 0 {
		creatorID = 1
	}
	if name == "" {
		name = "Test Group"
	}

	return &models.Group{
		ID:          id,
		Name:        name,
		Subject:     "Math",
		Description: "A test group",
		Tags:        []string{"test"},
		Code:        fmt.Sprintf("TEST%02d", id%100),
		CreatorID:   creatorID,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// CreateTestMessage creates a test message with a sender snapshot
func (h *TestHelper) CreateTestMessage(id, groupID, senderID uint, body string) *models.Message {
	if id == 0 {
		id = 1
	}
	if groupID == 0 {
		groupID = 1
	}
	if senderID == 0 {
		senderID = 1
	}
	if body == "" {
		body = "Test message"
	}

	return &models.Message{
		ID:          id,
		GroupID:     groupID,
		SenderID:    senderID,
		SenderName:  "Test Sender",
		SenderEmail: fmt.Sprintf("user%d@example.com", senderID),
		Body:        body,
		CreatedAt:   time.Now(),
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	os.Setenv("PASSWORD_MIN_LENGTH", "6")
	os.Setenv("MAX_MESSAGE_LENGTH", "1000")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("PASSWORD_MIN_LENGTH")
	os.Unsetenv("MAX_MESSAGE_LENGTH")
}
