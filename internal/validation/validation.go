package validation

import (
	"net/mail"
	"os"
	"strconv"
	"strings"

	"github.com/KOD666/study-group-plus/internal/models"
)

const (
	MinGroupTitleLength = 3
	MinSubjectLength    = 2
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func PasswordMinLength() int {
	minStr := os.Getenv("PASSWORD_MIN_LENGTH")
	if minStr == "" {
		return 6
	}
	min, err := strconv.Atoi(minStr)
	if err != nil || min < 6 {
		return 6
	}
	return min
}

func ValidatePassword(password string) bool {
	return len(password) >= PasswordMinLength()
}

func ValidateGroupTitle(title string) bool {
	return len(strings.TrimSpace(title)) >= MinGroupTitleLength
}

func ValidateSubject(subject string) bool {
	return len(strings.TrimSpace(subject)) >= MinSubjectLength
}

func MaxMessageLength() int {
	maxStr := os.Getenv("MAX_MESSAGE_LENGTH")
	if maxStr == "" {
		return 1000
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 1000
	}
	return max
}

// ParseTags splits a comma-separated tag string, trims each entry, drops
// empties and truncates to models.MaxTags. Duplicates are kept as-is.
func ParseTags(tags string) []string {
	out := []string{}
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
		if len(out) == models.MaxTags {
			break
		}
	}
	return out
}

func TrimAndLimit(s string, max int) string {
	s = strings.TrimSpace(s)
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}
