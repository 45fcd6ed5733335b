package usecase

import (
	"context"

	"cups-server/internal/domain/model"
	"cups-server/internal/domain/provider"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
)

// OrganizationService owns the organization membership and role state
// machine: creation, join requests, promotion, removal and the deletion
// cascade.
type OrganizationService struct {
	orgRepo     domainRepo.OrganizationRepository
	requestRepo domainRepo.OrganizationRequestRepository
	userRepo    domainRepo.UserRepository
	transactor  domainRepo.Transactor
	taskSvc     *TaskService
	storage     provider.BlobStorage
	logger      *zap.Logger
}

// NewOrganizationService creates a new organization service instance
func NewOrganizationService(
	orgRepo domainRepo.OrganizationRepository,
	requestRepo domainRepo.OrganizationRequestRepository,
	userRepo domainRepo.UserRepository,
	transactor domainRepo.Transactor,
	taskSvc *TaskService,
	storage provider.BlobStorage,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:     orgRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		transactor:  transactor,
		taskSvc:     taskSvc,
		storage:     storage,
		logger:      logger,
	}
}

// requireAdmin loads the caller and verifies they are the Admin of orgID.
func (s *OrganizationService) requireAdmin(ctx context.Context, callerID, orgID int64) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if caller.OrganizationID == nil || *caller.OrganizationID != orgID || caller.Role != model.RoleAdmin {
		return errors.Forbidden("only the organization admin can perform this action")
	}
	return nil
}

// requireManagement verifies the caller is an Admin or Manager of orgID.
func (s *OrganizationService) requireManagement(ctx context.Context, callerID, orgID int64) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if caller.OrganizationID == nil || *caller.OrganizationID != orgID ||
		(caller.Role != model.RoleAdmin && caller.Role != model.RoleManager) {
		return errors.Forbidden("only an admin or manager can perform this action")
	}
	return nil
}

// CreateOrganization creates an organization and makes the creator its Admin.
// A user already belonging to an organization must leave it first.
func (s *OrganizationService) CreateOrganization(ctx context.Context, creatorID int64, name, description, website string) (*model.Organization, error) {
	if name == "" {
		return nil, errors.Validation("organization name is required")
	}

	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator.OrganizationID != nil {
		return nil, errors.Conflict("user already belongs to an organization")
	}

	org := &model.Organization{
		Name:        name,
		Description: description,
		AdminID:     creatorID,
		Website:     website,
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orgRepo.Create(ctx, org); err != nil {
			return err
		}
		return s.userRepo.SetMembership(ctx, creatorID, &org.ID, model.RoleAdmin)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Organization created",
		zap.Int64("organization_id", org.ID),
		zap.Int64("admin_id", creatorID),
		zap.String("name", name))

	return org, nil
}

// GetOrganization returns an organization by ID.
func (s *OrganizationService) GetOrganization(ctx context.Context, orgID int64) (*model.Organization, error) {
	return s.orgRepo.GetByID(ctx, orgID)
}

// UpdateOrganization changes the name, description and website. Admin only.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, callerID, orgID int64, name, description, website string) (*model.Organization, error) {
	if name == "" {
		return nil, errors.Validation("organization name is required")
	}
	if err := s.requireAdmin(ctx, callerID, orgID); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	org.Name = name
	org.Description = description
	org.Website = website
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// UpdateImage uploads a new organization image and stores its URL. Admin only.
func (s *OrganizationService) UpdateImage(ctx context.Context, callerID, orgID int64, image ImageInput) (string, error) {
	if err := s.requireAdmin(ctx, callerID, orgID); err != nil {
		return "", err
	}

	url, err := s.storage.Upload(ctx, image.Data, image.ContentType, "organizations")
	if err != nil {
		return "", err
	}
	if err := s.orgRepo.UpdateImage(ctx, orgID, url); err != nil {
		return "", err
	}
	return url, nil
}

// RequestJoin files a pending membership request. Repeats and requests from
// current members are tolerated; clients use HasPendingRequest to avoid
// duplicate submissions.
func (s *OrganizationService) RequestJoin(ctx context.Context, userID, orgID int64) (*model.OrganizationRequest, error) {
	if _, err := s.orgRepo.GetByID(ctx, orgID); err != nil {
		return nil, err
	}

	request := &model.OrganizationRequest{
		UserID:         userID,
		OrganizationID: orgID,
		Status:         model.RequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("Membership requested",
		zap.Int64("user_id", userID),
		zap.Int64("organization_id", orgID),
		zap.Int64("request_id", request.ID))

	return request, nil
}

// HasPendingRequest reports whether the user has a pending request for the
// organization.
func (s *OrganizationService) HasPendingRequest(ctx context.Context, userID, orgID int64) (bool, error) {
	return s.requestRepo.HasPending(ctx, userID, orgID)
}

// AcceptRequest resolves a pending request and attaches the requester to the
// organization as a regular member. Accept never grants Manager or Admin. The
// request row is read under a lock so concurrent accepts of the same request
// serialize on the pending check.
func (s *OrganizationService) AcceptRequest(ctx context.Context, callerID, requestID int64) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.requestRepo.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := s.requireManagement(ctx, callerID, request.OrganizationID); err != nil {
			return err
		}
		if request.Status != model.RequestStatusPending {
			return errors.InvalidState("request has already been resolved")
		}

		if err := s.requestRepo.SetStatus(ctx, requestID, model.RequestStatusAccepted); err != nil {
			return err
		}
		if err := s.userRepo.SetMembership(ctx, request.UserID, &request.OrganizationID, model.RoleUser); err != nil {
			return err
		}

		s.logger.Info("Membership request accepted",
			zap.Int64("request_id", requestID),
			zap.Int64("user_id", request.UserID),
			zap.Int64("organization_id", request.OrganizationID))
		return nil
	})
}

// RejectRequest resolves a pending request without side effects on membership.
func (s *OrganizationService) RejectRequest(ctx context.Context, callerID, requestID int64) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.requireManagement(ctx, callerID, request.OrganizationID); err != nil {
		return err
	}
	if request.Status != model.RequestStatusPending {
		return errors.InvalidState("request has already been resolved")
	}

	if err := s.requestRepo.SetStatus(ctx, requestID, model.RequestStatusRejected); err != nil {
		return err
	}

	s.logger.Info("Membership request rejected",
		zap.Int64("request_id", requestID),
		zap.Int64("user_id", request.UserID))
	return nil
}

// ListPendingRequests returns the organization's pending requests with
// requester info. Admin or Manager only.
func (s *OrganizationService) ListPendingRequests(ctx context.Context, callerID, orgID int64, nameFilter string) ([]*model.OrganizationRequest, error) {
	if err := s.requireManagement(ctx, callerID, orgID); err != nil {
		return nil, err
	}
	return s.requestRepo.ListPendingByOrganization(ctx, orgID, nameFilter)
}

// ListParticipants returns the organization's members, optionally filtered by
// a name substring.
func (s *OrganizationService) ListParticipants(ctx context.Context, orgID int64, nameFilter string) ([]*model.User, error) {
	if _, err := s.orgRepo.GetByID(ctx, orgID); err != nil {
		return nil, err
	}
	return s.userRepo.ListByOrganization(ctx, orgID, nameFilter)
}

// SearchMembers performs a bounded name lookup among the members.
func (s *OrganizationService) SearchMembers(ctx context.Context, orgID int64, query string, limit int) ([]*model.User, error) {
	if len(query) < 2 {
		return nil, errors.Validation("query must be at least 2 characters")
	}
	if limit <= 0 {
		limit = 10
	}
	return s.userRepo.SearchMembers(ctx, orgID, query, limit)
}

// Leave detaches the user from the organization. The Admin cannot leave
// their own organization; they must delete it instead.
func (s *OrganizationService) Leave(ctx context.Context, userID, orgID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.OrganizationID == nil || *user.OrganizationID != orgID {
		return errors.Validation("user is not a member of this organization")
	}
	if user.Role == model.RoleAdmin {
		return errors.Conflict("the admin cannot leave their own organization")
	}

	if err := s.userRepo.SetMembership(ctx, userID, nil, model.RoleUser); err != nil {
		return err
	}

	s.logger.Info("User left organization",
		zap.Int64("user_id", userID),
		zap.Int64("organization_id", orgID))
	return nil
}

// ToggleManager promotes a member to Manager or demotes them back to User.
// The Admin role is never touched. Admin only.
func (s *OrganizationService) ToggleManager(ctx context.Context, callerID, orgID, userID int64, makeManager bool) error {
	if err := s.requireAdmin(ctx, callerID, orgID); err != nil {
		return err
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.OrganizationID == nil || *target.OrganizationID != orgID {
		return errors.Validation("user is not a member of this organization")
	}
	if target.Role == model.RoleAdmin {
		return errors.Forbidden("the admin role cannot be changed")
	}

	role := model.RoleUser
	if makeManager {
		role = model.RoleManager
	}

	rows, err := s.userRepo.SetRoleExcludingAdmin(ctx, orgID, userID, role)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("user not found in organization")
	}

	s.logger.Info("Member role changed",
		zap.Int64("organization_id", orgID),
		zap.Int64("user_id", userID),
		zap.String("role", string(role)))
	return nil
}

// RemoveUser detaches a member from the organization. The Admin cannot be
// removed. Admin only.
func (s *OrganizationService) RemoveUser(ctx context.Context, callerID, orgID, userID int64) error {
	if err := s.requireAdmin(ctx, callerID, orgID); err != nil {
		return err
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.OrganizationID == nil || *target.OrganizationID != orgID {
		return errors.Validation("user is not a member of this organization")
	}
	if target.Role == model.RoleAdmin {
		return errors.Forbidden("the admin cannot be removed from their own organization")
	}

	if err := s.userRepo.SetMembership(ctx, userID, nil, model.RoleUser); err != nil {
		return err
	}

	s.logger.Info("User removed from organization",
		zap.Int64("organization_id", orgID),
		zap.Int64("user_id", userID))
	return nil
}

// DeleteOrganization removes the organization with its membership requests,
// detaches every member and cascade-deletes its tasks, atomically. Admin only.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, callerID, orgID int64) error {
	if err := s.requireAdmin(ctx, callerID, orgID); err != nil {
		return err
	}

	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.orgRepo.GetByID(ctx, orgID); err != nil {
			return err
		}

		if err := s.requestRepo.DeleteByOrganization(ctx, orgID); err != nil {
			return err
		}
		if err := s.taskSvc.DeleteTasksByOrganization(ctx, orgID); err != nil {
			return err
		}

		detached, err := s.userRepo.ClearMembershipByOrganization(ctx, orgID)
		if err != nil {
			return err
		}

		if err := s.orgRepo.Delete(ctx, orgID); err != nil {
			return err
		}

		s.logger.Info("Organization deleted",
			zap.Int64("organization_id", orgID),
			zap.Int64("members_detached", detached))
		return nil
	})
}
