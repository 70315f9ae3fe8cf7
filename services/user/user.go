package user

import (
	"diet-tracker-backend/database"
	"diet-tracker-backend/enums"
	"diet-tracker-backend/models"
	"diet-tracker-backend/services/activityLog"
	"diet-tracker-backend/structs"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect credentials")
	ErrNotFound           = errors.New("user not found")
)

type UserService struct {
	db   *gorm.DB
	cost int
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, cost: bcrypt.DefaultCost}
}

// WithCost sets the bcrypt cost, tests use bcrypt.MinCost.
func (u *UserService) WithCost(cost int) *UserService {
	u.cost = cost
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *UserService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (u *UserService) FindByEmail(email string) (*models.User, error) {
	var userEntity models.User
	if err := u.db.Where("email = ?", normalizeEmail(email)).First(&userEntity).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &userEntity, nil
}

func (u *UserService) FindByID(id int64) (*models.User, error) {
	var userEntity models.User
	if err := u.db.Where("id = ?", id).First(&userEntity).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &userEntity, nil
}

// Register stores a new user with a bcrypt password hash.
func (u *UserService) Register(email, password, fullName string) (*models.User, error) {
	email = normalizeEmail(email)
	if _, err := u.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashed, err := u.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return u.insertUser(models.User{
		Email:          email,
		HashedPassword: hashed,
		FullName:       strings.TrimSpace(fullName),
		CreatedAt:      time.Now().UTC(),
	})
}

// insertUser writes the user and its activity log in one transaction.
// A unique-index hit on email means a concurrent registration won.
func (u *UserService) insertUser(userEntity models.User) (*models.User, error) {
	tx := u.db.Begin()
	if err := tx.Error; err != nil {
		return nil, fmt.Errorf("begin user transaction: %w", err)
	}
	if err := tx.Create(&userEntity).Error; err != nil {
		tx.Rollback()
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	logModel := structs.ActivityLogJsonModel{
		Type:    enums.LogUserRegistered,
		UserID:  userEntity.ID,
		Result:  true,
		Message: "registered",
	}
	if err := activityLog.Insert(tx, enums.LogUserRegistered, logModel, userEntity.ID, userEntity.ID, userEntity.TableName()); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("commit user: %w", err)
	}
	return &userEntity, nil
}

// Authenticate returns the user when the password matches the stored hash.
func (u *UserService) Authenticate(email, password string) (*models.User, error) {
	userEntity, err := u.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPasswordHash(password, userEntity.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return userEntity, nil
}
