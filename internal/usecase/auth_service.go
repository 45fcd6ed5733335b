package usecase

import (
	"context"
	"strconv"
	"time"

	"cups-server/internal/config"
	"cups-server/internal/domain/model"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Patronymic string
}

// AuthService handles registration, credential verification and token issuance.
type AuthService struct {
	userRepo domainRepo.UserRepository
	jwtCfg   config.JWTConfig
	logger   *zap.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo domainRepo.UserRepository, jwtCfg config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		logger:   logger,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	switch {
	case in.Email == "":
		return nil, errors.Validation("email is required")
	case len(in.Password) < 6:
		return nil, errors.Validation("password must be at least 6 characters")
	case in.FirstName == "" || in.LastName == "":
		return nil, errors.Validation("first and last name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Patronymic:   in.Patronymic,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login verifies credentials, records the login time and issues a JWT whose
// subject is the user ID.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrNotFound {
			return "", nil, errors.Unauthenticated("invalid email or password")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.Unauthenticated("invalid email or password")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user.ID, now)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return token, user, nil
}

func (s *AuthService) issueToken(userID int64, now time.Time) (string, error) {
	expiresIn := s.jwtCfg.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 24 * time.Hour
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}
