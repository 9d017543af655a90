package services

import (
	"errors"

	"github.com/shujie1st/tinyapp/internal/models"
	"github.com/shujie1st/tinyapp/pkg/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db           *gorm.DB
	auditService *AuditService
	idGenerator  func(int) string
	idLength     int
}

func NewUserService(db *gorm.DB, auditService *AuditService, idLength int) *UserService {
	return &UserService{
		db:           db,
		auditService: auditService,
		idGenerator:  utils.RandomString,
		idLength:     idLength,
	}
}

// Register creates a new user with a bcrypt-hashed password and a fresh
// random id. Email must be non-empty and not already registered.
func (s *UserService) Register(email, password, ipAddress string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	if _, err := s.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// Generate a user id unused by any existing account
	var userID string
	for {
		userID = s.idGenerator(s.idLength)
		var existing models.User
		err := s.db.Where("id = ?", userID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	newUser := models.User{
		ID:           userID,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.db.Create(&newUser).Error; err != nil {
		// A registration for the same email can slip past the lookup above;
		// the unique index catches it here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.auditService.LogAction(&newUser.ID, "REGISTER", newUser.Email, nil, ipAddress)

	return &newUser, nil
}

// Authenticate verifies email/password credentials. A missing account and a
// password mismatch are distinct internal signals even though the HTTP edge
// renders both the same way.
func (s *UserService) Authenticate(email, password, ipAddress string) (*models.User, error) {
	user, err := s.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	s.auditService.LogAction(&user.ID, "LOGIN", user.Email, nil, ipAddress)

	return user, nil
}

// FindByEmail does a case-sensitive exact match on email.
func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID resolves a session's user id back to an account. Sessions whose id
// no longer resolves (e.g. after a restart on the in-memory backend) are
// treated as anonymous by the caller.
func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
