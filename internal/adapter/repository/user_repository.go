package repository

import (
	"context"
	"fmt"

	"cups-server/internal/domain/model"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB, logger *zap.Logger) domainRepo.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("email already registered")
		}
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return errors.Storage("failed to create user", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User

	err := conn(ctx, r.db).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("user not found")
		}
		r.logger.Error("Failed to get user", zap.Int64("user_id", id), zap.Error(err))
		return nil, errors.Storage("failed to get user", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := conn(ctx, r.db).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("user not found")
		}
		r.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, errors.Storage("failed to get user", err)
	}

	return &user, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []*model.User
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&users).Error; err != nil {
		r.logger.Error("Failed to list users by ids", zap.Error(err))
		return nil, errors.Storage("failed to list users", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	if err := conn(ctx, r.db).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("email already registered")
		}
		r.logger.Error("Failed to update user", zap.Int64("user_id", user.ID), zap.Error(err))
		return errors.Storage("failed to update user", err)
	}
	return nil
}

func (r *userRepository) UpdateProfileImage(ctx context.Context, id int64, imageURL string) error {
	result := conn(ctx, r.db).Model(&model.User{}).
		Where("id = ?", id).
		Update("profile_image", imageURL)
	if result.Error != nil {
		r.logger.Error("Failed to update profile image", zap.Int64("user_id", id), zap.Error(result.Error))
		return errors.Storage("failed to update profile image", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("user not found")
	}
	return nil
}

func (r *userRepository) SetMembership(ctx context.Context, userID int64, orgID *int64, role model.Role) error {
	result := conn(ctx, r.db).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"organization_id": orgID,
			"role":            role,
		})
	if result.Error != nil {
		r.logger.Error("Failed to set membership", zap.Int64("user_id", userID), zap.Error(result.Error))
		return errors.Storage("failed to set membership", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("user not found")
	}
	return nil
}

func (r *userRepository) ClearMembershipByOrganization(ctx context.Context, orgID int64) (int64, error) {
	result := conn(ctx, r.db).Model(&model.User{}).
		Where("organization_id = ?", orgID).
		Updates(map[string]interface{}{
			"organization_id": nil,
			"role":            model.RoleUser,
		})
	if result.Error != nil {
		r.logger.Error("Failed to clear memberships", zap.Int64("organization_id", orgID), zap.Error(result.Error))
		return 0, errors.Storage("failed to clear memberships", result.Error)
	}
	return result.RowsAffected, nil
}

// SetRoleExcludingAdmin mirrors the membership invariant in the WHERE clause:
// an Admin row never matches, so the update silently skips it.
func (r *userRepository) SetRoleExcludingAdmin(ctx context.Context, orgID, userID int64, role model.Role) (int64, error) {
	result := conn(ctx, r.db).Model(&model.User{}).
		Where("id = ? AND organization_id = ? AND role <> ?", userID, orgID, model.RoleAdmin).
		Update("role", role)
	if result.Error != nil {
		r.logger.Error("Failed to set role",
			zap.Int64("user_id", userID),
			zap.Int64("organization_id", orgID),
			zap.Error(result.Error))
		return 0, errors.Storage("failed to set role", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *userRepository) ListByOrganization(ctx context.Context, orgID int64, nameFilter string) ([]*model.User, error) {
	query := conn(ctx, r.db).Where("organization_id = ?", orgID)

	if nameFilter != "" {
		pattern := "%" + nameFilter + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}

	var users []*model.User
	if err := query.Order("first_name, last_name").Find(&users).Error; err != nil {
		r.logger.Error("Failed to list organization members", zap.Int64("organization_id", orgID), zap.Error(err))
		return nil, errors.Storage("failed to list members", err)
	}
	return users, nil
}

func (r *userRepository) SearchMembers(ctx context.Context, orgID int64, query string, limit int) ([]*model.User, error) {
	pattern := "%" + query + "%"

	var users []*model.User
	err := conn(ctx, r.db).
		Where("organization_id = ?", orgID).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR (first_name || ' ' || last_name) ILIKE ?",
			pattern, pattern, pattern).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		r.logger.Error("Failed to search members", zap.Int64("organization_id", orgID), zap.Error(err))
		return nil, errors.Storage("failed to search members", err)
	}
	return users, nil
}

func (r *userRepository) SearchByName(ctx context.Context, query string) ([]*model.User, error) {
	pattern := "%" + query + "%"

	var users []*model.User
	err := conn(ctx, r.db).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR (first_name || ' ' || last_name) ILIKE ?",
			pattern, pattern, pattern).
		Find(&users).Error
	if err != nil {
		r.logger.Error("Failed to search users", zap.Error(err))
		return nil, errors.Storage("failed to search users", err)
	}
	return users, nil
}

// AwardCups locks the user row so concurrent completions sharing a performer
// never lose an increment, then applies the accrual and goal-reset rule.
func (r *userRepository) AwardCups(ctx context.Context, userID int64, amount int) (*model.User, error) {
	db := conn(ctx, r.db)

	var user model.User
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound(fmt.Sprintf("user %d not found", userID))
		}
		r.logger.Error("Failed to lock user row", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.Storage("failed to lock user row", err)
	}

	goalReached := user.ApplyAward(amount)

	err = db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"full_cup_count": user.FullCupCount,
			"now_cup_count":  user.NowCupCount,
		}).Error
	if err != nil {
		r.logger.Error("Failed to award cups", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.Storage("failed to award cups", err)
	}

	r.logger.Info("Cups awarded",
		zap.Int64("user_id", userID),
		zap.Int("amount", amount),
		zap.Int("full_cup_count", user.FullCupCount),
		zap.Int("now_cup_count", user.NowCupCount),
		zap.Bool("goal_reached", goalReached))

	return &user, nil
}

func (r *userRepository) SetGoal(ctx context.Context, userID int64, purposeCupCount int) error {
	result := conn(ctx, r.db).Model(&model.User{}).
		Where("id = ?", userID).
		Update("purpose_cup_count", purposeCupCount)
	if result.Error != nil {
		r.logger.Error("Failed to set goal", zap.Int64("user_id", userID), zap.Error(result.Error))
		return errors.Storage("failed to set goal", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("user not found")
	}
	return nil
}
