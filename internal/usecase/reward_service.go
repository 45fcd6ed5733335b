package usecase

import (
	"context"

	"cups-server/internal/domain/model"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
)

// RewardService applies cup accrual and the goal-reset rule to user records.
type RewardService struct {
	userRepo   domainRepo.UserRepository
	transactor domainRepo.Transactor
	logger     *zap.Logger
}

// NewRewardService creates a new reward service instance
func NewRewardService(
	userRepo domainRepo.UserRepository,
	transactor domainRepo.Transactor,
	logger *zap.Logger,
) *RewardService {
	return &RewardService{
		userRepo:   userRepo,
		transactor: transactor,
		logger:     logger,
	}
}

// Award credits amount cups to the user. The accrual and goal-reset run under
// a row lock; when the context already carries a transaction the award joins
// it, so task completion distributes all rewards or none.
func (s *RewardService) Award(ctx context.Context, userID int64, amount int) (*model.User, error) {
	if amount < 0 {
		return nil, errors.Validation("award amount must be non-negative")
	}

	var user *model.User
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.AwardCups(ctx, userID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetGoal updates the user's cup goal. The counters are untouched; the goal
// only affects future awards.
func (s *RewardService) SetGoal(ctx context.Context, userID int64, purposeCupCount int) error {
	if purposeCupCount <= 0 {
		return errors.Validation("goal must be positive")
	}

	if err := s.userRepo.SetGoal(ctx, userID, purposeCupCount); err != nil {
		return err
	}

	s.logger.Info("Cup goal updated",
		zap.Int64("user_id", userID),
		zap.Int("purpose_cup_count", purposeCupCount))
	return nil
}

// Level returns the user's derived level.
func (s *RewardService) Level(ctx context.Context, userID int64) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Level(), nil
}
