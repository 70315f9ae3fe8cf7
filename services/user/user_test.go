package user

import (
	"diet-tracker-backend/database"
	"diet-tracker-backend/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserService(db).WithCost(bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	service := newTestUserService(t)

	userEntity, err := service.Register(" Tester@Example.com ", "password123", "Tester")
	require.NoError(t, err)
	assert.NotZero(t, userEntity.ID)
	assert.Equal(t, "tester@example.com", userEntity.Email)
	assert.Equal(t, "Tester", userEntity.FullName)
	assert.NotEqual(t, "password123", userEntity.HashedPassword)
	assert.True(t, CheckPasswordHash("password123", userEntity.HashedPassword))

	found, err := service.FindByID(userEntity.ID)
	require.NoError(t, err)
	assert.Equal(t, userEntity.Email, found.Email)

	var logEntity models.ActivityLog
	require.NoError(t, service.db.Where("log_name = ?", "user.registered").First(&logEntity).Error)
	assert.Equal(t, userEntity.ID, logEntity.SubjectID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := newTestUserService(t)

	_, err := service.Register("dup@example.com", "a", "")
	require.NoError(t, err)

	_, err = service.Register("DUP@example.com", "b", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	service := newTestUserService(t)
	registered, err := service.Register("eater@example.com", "s3cret", "")
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		userEntity, err := service.Authenticate("Eater@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, userEntity.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate("eater@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Authenticate("ghost@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestFindMissing(t *testing.T) {
	service := newTestUserService(t)

	_, err := service.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.FindByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertUserLosesRegistrationRace(t *testing.T) {
	service := newTestUserService(t)

	_, err := service.Register("racer@example.com", "first", "First")
	require.NoError(t, err)

	// the existence check already passed for the second request
	_, err = service.insertUser(models.User{Email: "racer@example.com", HashedPassword: "hash"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	var users, logs int
	require.NoError(t, service.db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, service.db.Model(&models.ActivityLog{}).Count(&logs).Error)
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, logs)
}
