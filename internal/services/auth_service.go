package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apierrors "todo-api/internal/errors"
	"todo-api/internal/models"
	"todo-api/internal/repository"
	"todo-api/internal/token"
)

// AuthService owns the credential and token lifecycle of a user.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *token.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo *repository.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AuthToken    string `json:"authToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates a new user with a one-way password digest and an empty
// task list. The uniqueness check is a count query, not atomic with the
// insert; the unique index on username is the backstop for the race.
func (s *AuthService) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apierrors.NewBadRequest("Username and password are required.")
	}

	count, err := s.userRepo.Count(repository.Filter{"username": username})
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, apierrors.NewBadRequest("This username is already taken.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Username:       username,
		HashedPassword: string(hashedPassword),
		AccountType:    models.AccountTypeNormal,
		Tasks:          []models.Task{},
	}

	if err := s.userRepo.Add(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues an auth token and a refresh token.
// The new refresh token is persisted on the user record, replacing any prior
// one; a user has a single active session.
func (s *AuthService) Login(username, password string) (*TokenPair, error) {
	if username == "" || password == "" {
		return nil, apierrors.NewBadRequest("Username and password are required.")
	}

	users, err := s.userRepo.Get(repository.Filter{"username": username})
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierrors.NewNotFoundWithDetails("User not found.", map[string]string{
			"username": "User not found.",
		})
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, apierrors.NewBadRequestWithDetails("Password is not valid.", map[string]string{
			"password": "Password is not valid.",
		})
	}

	authToken, err := s.tokens.SignAuthToken(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign auth token: %w", err)
	}
	refreshToken, err := s.tokens.SignRefreshToken(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if _, err := s.userRepo.Update(user.ID, map[string]any{"refresh_token": refreshToken}); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenPair{AuthToken: authToken, RefreshToken: refreshToken}, nil
}

// RefreshToken issues a new auth token when the supplied refresh token exactly
// matches the stored one. The refresh token itself is not rotated.
func (s *AuthService) RefreshToken(userID, refreshToken string) (string, error) {
	if userID == "" || refreshToken == "" {
		return "", apierrors.NewBadRequest("User id and refresh token are required.")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apierrors.NewNotFound("User not found.")
	}

	if user.RefreshToken != refreshToken {
		return "", apierrors.NewBadRequest("Invalid refresh token.")
	}

	authToken, err := s.tokens.SignAuthToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to sign auth token: %w", err)
	}

	return authToken, nil
}

// ChangePassword overwrites the stored digest after verifying the current one.
func (s *AuthService) ChangePassword(userID, currentPassword, newPassword string) error {
	if userID == "" {
		return apierrors.NewBadRequest("User id is required.")
	}
	if currentPassword == "" || newPassword == "" {
		return apierrors.NewBadRequest("Current password and new password are required.")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apierrors.NewNotFound("User not found.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(currentPassword)); err != nil {
		return apierrors.NewBadRequestWithDetails("Current password is not valid.", map[string]string{
			"currentPassword": "Current password is not valid.",
		})
	}

	newHashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.userRepo.Update(userID, map[string]any{"hashed_password": string(newHashedPassword)}); err != nil {
		return fmt.Errorf("failed to persist password: %w", err)
	}

	return nil
}

// ChangeAccountType overwrites the account type. The zero-valued Normal type
// is accepted as a legitimate argument.
func (s *AuthService) ChangeAccountType(userID string, accountType models.AccountType) error {
	if userID == "" || !accountType.Valid() {
		return apierrors.NewBadRequest("User id and account type are required.")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apierrors.NewNotFound("User not found.")
	}

	if _, err := s.userRepo.Update(userID, map[string]any{"account_type": accountType}); err != nil {
		return fmt.Errorf("failed to persist account type: %w", err)
	}

	return nil
}
