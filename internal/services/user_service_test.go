package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserServiceTest(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewUserService(repository.NewUserRepository(db)), db
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	user, err := svc.Create(CreateUserInput{
		Username: "alice",
		Password: "supersecret",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestUserService_Create_DuplicateUsernameDoesNotPersist(t *testing.T) {
	svc, db := setupUserServiceTest(t)

	_, err := svc.Create(CreateUserInput{Username: "alice", Password: "supersecret", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(CreateUserInput{Username: "alice", Password: "supersecret", Email: "other@example.com"})
	require.ErrorIs(t, err, ErrUsernameTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUserService_Create_DuplicateEmailDoesNotPersist(t *testing.T) {
	svc, db := setupUserServiceTest(t)

	_, err := svc.Create(CreateUserInput{Username: "alice", Password: "supersecret", Email: "shared@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(CreateUserInput{Username: "bob", Password: "supersecret", Email: "shared@example.com"})
	require.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUserService_Update_KeepsPasswordWhenOmitted(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	user, err := svc.Create(CreateUserInput{Username: "alice", Password: "supersecret", Email: "alice@example.com"})
	require.NoError(t, err)
	originalHash := user.PasswordHash

	updated, err := svc.Update(user.ID, UpdateUserInput{Username: "alice", Email: "alice@new.example.com"})
	require.NoError(t, err)
	require.Equal(t, originalHash, updated.PasswordHash)

	updated, err = svc.Update(user.ID, UpdateUserInput{Username: "alice", Email: "alice@new.example.com", Password: "newsecret"})
	require.NoError(t, err)
	require.NotEqual(t, originalHash, updated.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newsecret")))
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	_, err := svc.Update(999, UpdateUserInput{Username: "ghost", Email: "ghost@example.com"})
	require.ErrorIs(t, err, ErrUserNotFound)
}
