package repository

import (
	"context"

	"cups-server/internal/domain/model"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// organizationRepository implements the OrganizationRepository interface
type organizationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrganizationRepository creates a new organization repository instance
func NewOrganizationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.OrganizationRepository {
	return &organizationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *organizationRepository) Create(ctx context.Context, org *model.Organization) error {
	if err := conn(ctx, r.db).Create(org).Error; err != nil {
		r.logger.Error("Failed to create organization", zap.String("name", org.Name), zap.Error(err))
		return errors.Storage("failed to create organization", err)
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	var org model.Organization

	err := conn(ctx, r.db).First(&org, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("organization not found")
		}
		r.logger.Error("Failed to get organization", zap.Int64("organization_id", id), zap.Error(err))
		return nil, errors.Storage("failed to get organization", err)
	}

	return &org, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *model.Organization) error {
	if err := conn(ctx, r.db).Save(org).Error; err != nil {
		r.logger.Error("Failed to update organization", zap.Int64("organization_id", org.ID), zap.Error(err))
		return errors.Storage("failed to update organization", err)
	}
	return nil
}

func (r *organizationRepository) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	result := conn(ctx, r.db).Model(&model.Organization{}).
		Where("id = ?", id).
		Update("image_url", imageURL)
	if result.Error != nil {
		r.logger.Error("Failed to update organization image", zap.Int64("organization_id", id), zap.Error(result.Error))
		return errors.Storage("failed to update organization image", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("organization not found")
	}
	return nil
}

func (r *organizationRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&model.Organization{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete organization", zap.Int64("organization_id", id), zap.Error(result.Error))
		return errors.Storage("failed to delete organization", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("organization not found")
	}
	return nil
}

func (r *organizationRepository) SearchByName(ctx context.Context, query string) ([]*model.Organization, error) {
	var orgs []*model.Organization

	err := conn(ctx, r.db).
		Where("name ILIKE ?", "%"+query+"%").
		Find(&orgs).Error
	if err != nil {
		r.logger.Error("Failed to search organizations", zap.Error(err))
		return nil, errors.Storage("failed to search organizations", err)
	}
	return orgs, nil
}

// organizationRequestRepository implements the OrganizationRequestRepository interface
type organizationRequestRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrganizationRequestRepository creates a new membership request repository instance
func NewOrganizationRequestRepository(db *gorm.DB, logger *zap.Logger) domainRepo.OrganizationRequestRepository {
	return &organizationRequestRepository{
		db:     db,
		logger: logger,
	}
}

func (r *organizationRequestRepository) Create(ctx context.Context, request *model.OrganizationRequest) error {
	if err := conn(ctx, r.db).Create(request).Error; err != nil {
		r.logger.Error("Failed to create membership request",
			zap.Int64("user_id", request.UserID),
			zap.Int64("organization_id", request.OrganizationID),
			zap.Error(err))
		return errors.Storage("failed to create membership request", err)
	}
	return nil
}

func (r *organizationRequestRepository) GetByID(ctx context.Context, id int64) (*model.OrganizationRequest, error) {
	var request model.OrganizationRequest

	err := conn(ctx, r.db).First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("membership request not found")
		}
		r.logger.Error("Failed to get membership request", zap.Int64("request_id", id), zap.Error(err))
		return nil, errors.Storage("failed to get membership request", err)
	}

	return &request, nil
}

func (r *organizationRequestRepository) GetForUpdate(ctx context.Context, id int64) (*model.OrganizationRequest, error) {
	var request model.OrganizationRequest

	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("membership request not found")
		}
		r.logger.Error("Failed to lock membership request", zap.Int64("request_id", id), zap.Error(err))
		return nil, errors.Storage("failed to lock membership request", err)
	}

	return &request, nil
}

func (r *organizationRequestRepository) SetStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	result := conn(ctx, r.db).Model(&model.OrganizationRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		r.logger.Error("Failed to set request status", zap.Int64("request_id", id), zap.Error(result.Error))
		return errors.Storage("failed to set request status", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("membership request not found")
	}
	return nil
}

func (r *organizationRequestRepository) HasPending(ctx context.Context, userID, orgID int64) (bool, error) {
	var count int64

	err := conn(ctx, r.db).Model(&model.OrganizationRequest{}).
		Where("user_id = ? AND organization_id = ? AND status = ?", userID, orgID, model.RequestStatusPending).
		Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to check pending request",
			zap.Int64("user_id", userID),
			zap.Int64("organization_id", orgID),
			zap.Error(err))
		return false, errors.Storage("failed to check pending request", err)
	}

	return count > 0, nil
}

func (r *organizationRequestRepository) ListPendingByOrganization(ctx context.Context, orgID int64, nameFilter string) ([]*model.OrganizationRequest, error) {
	query := conn(ctx, r.db).
		Preload("User").
		Joins("JOIN users ON users.id = organization_requests.user_id").
		Where("organization_requests.organization_id = ? AND organization_requests.status = ?", orgID, model.RequestStatusPending)

	if nameFilter != "" {
		pattern := "%" + nameFilter + "%"
		query = query.Where("users.first_name ILIKE ? OR users.last_name ILIKE ?", pattern, pattern)
	}

	var requests []*model.OrganizationRequest
	if err := query.Order("users.first_name, users.last_name").Find(&requests).Error; err != nil {
		r.logger.Error("Failed to list pending requests", zap.Int64("organization_id", orgID), zap.Error(err))
		return nil, errors.Storage("failed to list pending requests", err)
	}
	return requests, nil
}

func (r *organizationRequestRepository) DeleteByOrganization(ctx context.Context, orgID int64) error {
	err := conn(ctx, r.db).
		Where("organization_id = ?", orgID).
		Delete(&model.OrganizationRequest{}).Error
	if err != nil {
		r.logger.Error("Failed to delete membership requests", zap.Int64("organization_id", orgID), zap.Error(err))
		return errors.Storage("failed to delete membership requests", err)
	}
	return nil
}
