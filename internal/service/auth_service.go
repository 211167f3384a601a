package service

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KOD666/study-group-plus/internal/models"
	"github.com/KOD666/study-group-plus/internal/repository"
	"github.com/KOD666/study-group-plus/internal/validation"
)

const bcryptCost = 12

type AuthService struct {
	userRepo repository.UserRepositoryInterface
}

func NewAuthService(userRepo repository.UserRepositoryInterface) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

func (s *AuthService) Signup(input SignupInput) (*AuthResponse, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, validationError("All fields are required")
	}
	if input.Password != input.ConfirmPassword {
		return nil, validationError("Passwords do not match")
	}
	if !validation.ValidatePassword(input.Password) {
		return nil, validationError("Password is too short")
	}
	if !validation.ValidateEmail(input.Email) {
		return nil, validationError("Please enter a valid email address")
	}

	email := validation.NormalizeEmail(input.Email)
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, conflictError("User with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, internalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		// Unique index on email closes the check-then-insert race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("User with this email already exists")
		}
		return nil, internalError(err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, internalError(err)
	}
	return &AuthResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *AuthService) Login(input LoginInput) (*AuthResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, validationError("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(validation.NormalizeEmail(input.Email))
	if err != nil {
		return nil, authenticationError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, authenticationError("Invalid email or password")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, internalError(err)
	}
	return &AuthResponse{Token: token, User: user.ToResponse()}, nil
}

// GetUser resolves the authenticated identity for /auth/me.
func (s *AuthService) GetUser(userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, internalError(err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
