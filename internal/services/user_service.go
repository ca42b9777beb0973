package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "monthwise/internal/errors"
	"monthwise/internal/models"
)

// userService handles user accounts and their standing configuration.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user.
func (s *userService) CreateUser(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", strings.ToLower(username)).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: strings.ToLower(username),
		Password: string(hashedPassword),
		Currency: "USD",
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", strings.ToLower(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash.
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *userService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if !s.VerifyPassword(user, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if newPassword == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "new password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(user).Update("password", string(hashedPassword)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// updateField sets a single column on the user row and returns the fresh row.
func (s *userService) updateField(userID uint, column string, value interface{}) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update(column, value).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// UpdateCurrency sets the user's display currency.
func (s *userService) UpdateCurrency(userID uint, currency string) (*models.User, error) {
	return s.updateField(userID, "currency", strings.ToUpper(currency))
}

// UpdateSavings sets the user's current savings balance.
func (s *userService) UpdateSavings(userID uint, amount float64) (*models.User, error) {
	return s.updateField(userID, "savings", amount)
}

// UpdateSavingsGoal sets the user's savings target.
func (s *userService) UpdateSavingsGoal(userID uint, amount float64) (*models.User, error) {
	return s.updateField(userID, "savings_goal", amount)
}

// UpdateRetirementSavings sets the user's retirement savings balance.
func (s *userService) UpdateRetirementSavings(userID uint, amount float64) (*models.User, error) {
	return s.updateField(userID, "retirement_savings", amount)
}

// ClearData deletes everything the user owns: months with their income,
// budgets, items, and snapshots, plus categories and fixed expenses. The
// account itself is kept.
func (s *userService) ClearData(userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return wipeUserData(tx, userID)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
