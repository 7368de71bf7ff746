package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apierrors "todo-api/internal/errors"
	"todo-api/internal/models"
	"todo-api/internal/repository"
	"todo-api/internal/token"
)

type authTestEnv struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	tokens      *token.Manager
	authService *AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	tokens := token.NewManager("secret", "secret2", 30*time.Minute, 24*time.Hour)
	authService := NewAuthService(userRepo, tokens)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		userRepo:    userRepo,
		tokens:      tokens,
		authService: authService,
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.Code)
}

func TestAuthService_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "John Doe", user.Username)
	require.NotEqual(t, "password", user.HashedPassword)
	require.Equal(t, models.AccountTypeNormal, user.AccountType)

	stored, err := env.userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Empty(t, stored.Tasks)
}

func TestAuthService_Register_MissingArguments(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register("", "password")
	requireCode(t, err, apierrors.ErrCodeBadRequest)

	_, err = env.authService.Register("John Doe", "")
	requireCode(t, err, apierrors.ErrCodeBadRequest)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)

	_, err = env.authService.Register("John Doe", "other-password")
	requireCode(t, err, apierrors.ErrCodeBadRequest)
	require.EqualError(t, err, "This username is already taken.")
}

func TestAuthService_Register_TrimsUsername(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("  padded  ", "password")
	require.NoError(t, err)
	require.Equal(t, "padded", user.Username)
}

func TestAuthService_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)

	pair, err := env.authService.Login("John Doe", "password")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AuthToken)
	require.NotEmpty(t, pair.RefreshToken)

	// The refresh token is persisted on the user record
	stored, err := env.userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, pair.RefreshToken, stored.RefreshToken)

	// The auth token carries the caller's identity
	claims, err := env.tokens.VerifyAuthToken(pair.AuthToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "John Doe", claims.Username)
}

func TestAuthService_Login_ReplacesRefreshToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)

	first, err := env.authService.Login("John Doe", "password")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond) // distinct iat

	second, err := env.authService.Login("John Doe", "password")
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	stored, err := env.userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, second.RefreshToken, stored.RefreshToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)

	_, err = env.authService.Login("John Doe", "wrong")
	requireCode(t, err, apierrors.ErrCodeBadRequest)
	require.EqualError(t, err, "Password is not valid.")
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Login("nobody", "password")
	requireCode(t, err, apierrors.ErrCodeNotFound)
}

func TestAuthService_Login_MissingArguments(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Login("", "password")
	requireCode(t, err, apierrors.ErrCodeBadRequest)

	_, err = env.authService.Login("John Doe", "")
	requireCode(t, err, apierrors.ErrCodeBadRequest)
}

func TestAuthService_RefreshToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)

	pair, err := env.authService.Login("John Doe", "password")
	require.NoError(t, err)

	authToken, err := env.authService.RefreshToken(user.ID, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, authToken)

	claims, err := env.tokens.VerifyAuthToken(authToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	// The refresh token itself is not rotated
	stored, err := env.userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, pair.RefreshToken, stored.RefreshToken)
}

func TestAuthService_RefreshToken_Mismatch(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)

	_, err = env.authService.Login("John Doe", "password")
	require.NoError(t, err)

	_, err = env.authService.RefreshToken(user.ID, "some other token")
	requireCode(t, err, apierrors.ErrCodeBadRequest)
	require.EqualError(t, err, "Invalid refresh token.")
}

func TestAuthService_RefreshToken_UserAbsent(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.RefreshToken("11111111-1111-1111-1111-111111111111", "token")
	requireCode(t, err, apierrors.ErrCodeNotFound)
}

func TestAuthService_RefreshToken_MissingArguments(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.RefreshToken("", "token")
	requireCode(t, err, apierrors.ErrCodeBadRequest)

	_, err = env.authService.RefreshToken("user-id", "")
	requireCode(t, err, apierrors.ErrCodeBadRequest)
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)

	err = env.authService.ChangePassword(user.ID, "password", "new-password")
	require.NoError(t, err)

	// Old password no longer works, the new one does
	_, err = env.authService.Login("John Doe", "password")
	requireCode(t, err, apierrors.ErrCodeBadRequest)

	_, err = env.authService.Login("John Doe", "new-password")
	require.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)

	err = env.authService.ChangePassword(user.ID, "wrong", "new-password")
	requireCode(t, err, apierrors.ErrCodeBadRequest)
	require.EqualError(t, err, "Current password is not valid.")
}

func TestAuthService_ChangePassword_MissingArguments(t *testing.T) {
	env := setupAuthTestEnv(t)

	err := env.authService.ChangePassword("", "a", "b")
	requireCode(t, err, apierrors.ErrCodeBadRequest)
	require.EqualError(t, err, "User id is required.")

	err = env.authService.ChangePassword("user-id", "", "b")
	requireCode(t, err, apierrors.ErrCodeBadRequest)

	err = env.authService.ChangePassword("user-id", "a", "")
	requireCode(t, err, apierrors.ErrCodeBadRequest)
}

func TestAuthService_ChangeAccountType(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("John Doe", "password")
	require.NoError(t, err)

	err = env.authService.ChangeAccountType(user.ID, models.AccountTypeDemo)
	require.NoError(t, err)

	stored, err := env.userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccountTypeDemo, stored.AccountType)

	// The zero-valued Normal type is a legitimate argument
	err = env.authService.ChangeAccountType(user.ID, models.AccountTypeNormal)
	require.NoError(t, err)

	stored, err = env.userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccountTypeNormal, stored.AccountType)
}

func TestAuthService_ChangeAccountType_Invalid(t *testing.T) {
	env := setupAuthTestEnv(t)

	err := env.authService.ChangeAccountType("", models.AccountTypeDemo)
	requireCode(t, err, apierrors.ErrCodeBadRequest)

	user, err2 := env.authService.Register("John Doe", "password")
	require.NoError(t, err2)

	err = env.authService.ChangeAccountType(user.ID, models.AccountType(42))
	requireCode(t, err, apierrors.ErrCodeBadRequest)
}
