package usecase

import (
	"context"

	"cups-server/internal/domain/model"
	"cups-server/internal/domain/provider"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UpdateProfileInput carries profile fields a user can change. A password
// change requires the current password for verification.
type UpdateProfileInput struct {
	Email           string
	FirstName       string
	LastName        string
	Patronymic      string
	CurrentPassword string
	NewPassword     string
}

// UserService handles profile reads and updates.
type UserService struct {
	userRepo domainRepo.UserRepository
	storage  provider.BlobStorage
	logger   *zap.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo domainRepo.UserRepository, storage provider.BlobStorage, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		storage:  storage,
		logger:   logger,
	}
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile changes the user's own profile fields. Only the user
// themselves may update their profile.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, userID int64, in UpdateProfileInput) (*model.User, error) {
	if callerID != userID {
		return nil, errors.Forbidden("users can only update their own profile")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		user.Email = in.Email
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Patronymic != "" {
		user.Patronymic = in.Patronymic
	}

	if in.NewPassword != "" {
		if len(in.NewPassword) < 6 {
			return nil, errors.Validation("password must be at least 6 characters")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, errors.Forbidden("current password is incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.Int64("user_id", userID))
	return user, nil
}

// UpdateProfileImage uploads a new profile image and stores its URL.
func (s *UserService) UpdateProfileImage(ctx context.Context, callerID, userID int64, image ImageInput) (string, error) {
	if callerID != userID {
		return "", errors.Forbidden("users can only update their own profile")
	}

	url, err := s.storage.Upload(ctx, image.Data, image.ContentType, "profiles")
	if err != nil {
		return "", err
	}
	if err := s.userRepo.UpdateProfileImage(ctx, userID, url); err != nil {
		return "", err
	}

	s.logger.Info("Profile image updated", zap.Int64("user_id", userID))
	return url, nil
}
