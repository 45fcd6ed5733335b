package usecase

import (
	"context"
	"testing"

	"cups-server/internal/domain/model"
	"cups-server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type orgServiceMocks struct {
	orgRepo     *MockOrganizationRepository
	requestRepo *MockOrganizationRequestRepository
	userRepo    *MockUserRepository
	taskRepo    *MockTaskRepository
	subtaskRepo *MockSubtaskRepository
	performers  *MockPerformerRepository
	storage     *MockBlobStorage
	chats       *MockChatProvisioner
}

func newOrganizationService(t *testing.T) (*OrganizationService, *orgServiceMocks) {
	t.Helper()
	logger := zap.NewNop()
	m := &orgServiceMocks{
		orgRepo:     new(MockOrganizationRepository),
		requestRepo: new(MockOrganizationRequestRepository),
		userRepo:    new(MockUserRepository),
		taskRepo:    new(MockTaskRepository),
		subtaskRepo: new(MockSubtaskRepository),
		performers:  new(MockPerformerRepository),
		storage:     new(MockBlobStorage),
		chats:       new(MockChatProvisioner),
	}
	subtaskSvc := NewSubtaskService(m.taskRepo, m.subtaskRepo, passthroughTransactor{}, logger)
	rewardSvc := NewRewardService(m.userRepo, passthroughTransactor{}, logger)
	taskSvc := NewTaskService(
		m.taskRepo, m.subtaskRepo, m.performers, m.userRepo,
		passthroughTransactor{}, subtaskSvc, rewardSvc, m.storage, m.chats, logger,
	)
	svc := NewOrganizationService(
		m.orgRepo, m.requestRepo, m.userRepo,
		passthroughTransactor{}, taskSvc, m.storage, logger,
	)
	return svc, m
}

func TestOrganizationService_CreateOrganization(t *testing.T) {
	t.Run("creator becomes admin", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.User{ID: 1}, nil)
		m.orgRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Organization")).
			Run(func(args mock.Arguments) { args.Get(1).(*model.Organization).ID = 7 }).Return(nil)
		m.userRepo.On("SetMembership", mock.Anything, int64(1), mock.MatchedBy(func(orgID *int64) bool {
			return orgID != nil && *orgID == 7
		}), model.RoleAdmin).Return(nil)

		org, err := svc.CreateOrganization(context.Background(), 1, "Acme", "widgets", "https://acme.test")
		assert.NoError(t, err)
		assert.Equal(t, int64(7), org.ID)
		assert.Equal(t, int64(1), org.AdminID)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("existing membership is a conflict", func(t *testing.T) {
		svc, m := newOrganizationService(t)
		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(orgMember(1, 3, model.RoleUser), nil)

		_, err := svc.CreateOrganization(context.Background(), 1, "Acme", "", "")
		assert.Equal(t, errors.ErrConflict, errors.CodeOf(err))
		m.orgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("name is required", func(t *testing.T) {
		svc, _ := newOrganizationService(t)
		_, err := svc.CreateOrganization(context.Background(), 1, "", "", "")
		assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	})
}

func TestOrganizationService_RequestJoin(t *testing.T) {
	t.Run("files a pending request", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		m.orgRepo.On("GetByID", mock.Anything, int64(7)).Return(&model.Organization{ID: 7}, nil)
		m.requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.OrganizationRequest) bool {
			return r.UserID == 2 && r.OrganizationID == 7 && r.Status == model.RequestStatusPending
		})).Return(nil)

		request, err := svc.RequestJoin(context.Background(), 2, 7)
		assert.NoError(t, err)
		assert.Equal(t, model.RequestStatusPending, request.Status)
	})

	t.Run("current member may file another request", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		m.orgRepo.On("GetByID", mock.Anything, int64(7)).Return(&model.Organization{ID: 7}, nil)
		m.requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.OrganizationRequest) bool {
			return r.UserID == 3 && r.OrganizationID == 7 && r.Status == model.RequestStatusPending
		})).Return(nil)

		request, err := svc.RequestJoin(context.Background(), 3, 7)
		assert.NoError(t, err)
		assert.Equal(t, model.RequestStatusPending, request.Status)
		m.userRepo.AssertNotCalled(t, "SetMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.requestRepo.AssertExpectations(t)
	})

	t.Run("unknown organization is rejected", func(t *testing.T) {
		svc, m := newOrganizationService(t)
		m.orgRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, errors.NotFound("organization not found"))

		_, err := svc.RequestJoin(context.Background(), 2, 99)
		assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
		m.requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestOrganizationService_AcceptRequest(t *testing.T) {
	pendingRequest := func() *model.OrganizationRequest {
		return &model.OrganizationRequest{ID: 10, UserID: 2, OrganizationID: 7, Status: model.RequestStatusPending}
	}

	t.Run("manager accepts a pending request", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		m.requestRepo.On("GetForUpdate", mock.Anything, int64(10)).Return(pendingRequest(), nil)
		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(orgMember(1, 7, model.RoleManager), nil)
		m.requestRepo.On("SetStatus", mock.Anything, int64(10), model.RequestStatusAccepted).Return(nil)
		m.userRepo.On("SetMembership", mock.Anything, int64(2), mock.MatchedBy(func(orgID *int64) bool {
			return orgID != nil && *orgID == 7
		}), model.RoleUser).Return(nil)

		err := svc.AcceptRequest(context.Background(), 1, 10)
		assert.NoError(t, err)
		m.requestRepo.AssertExpectations(t)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("regular member cannot accept", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		m.requestRepo.On("GetForUpdate", mock.Anything, int64(10)).Return(pendingRequest(), nil)
		m.userRepo.On("GetByID", mock.Anything, int64(3)).Return(orgMember(3, 7, model.RoleUser), nil)

		err := svc.AcceptRequest(context.Background(), 3, 10)
		assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
		m.requestRepo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("resolved request cannot be accepted again", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		resolved := pendingRequest()
		resolved.Status = model.RequestStatusAccepted
		m.requestRepo.On("GetForUpdate", mock.Anything, int64(10)).Return(resolved, nil)
		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(orgMember(1, 7, model.RoleAdmin), nil)

		err := svc.AcceptRequest(context.Background(), 1, 10)
		assert.Equal(t, errors.ErrInvalidState, errors.CodeOf(err))
		m.userRepo.AssertNotCalled(t, "SetMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrganizationService_Leave(t *testing.T) {
	t.Run("member leaves", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		m.userRepo.On("GetByID", mock.Anything, int64(2)).Return(orgMember(2, 7, model.RoleManager), nil)
		m.userRepo.On("SetMembership", mock.Anything, int64(2), (*int64)(nil), model.RoleUser).Return(nil)

		err := svc.Leave(context.Background(), 2, 7)
		assert.NoError(t, err)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("admin cannot leave", func(t *testing.T) {
		svc, m := newOrganizationService(t)
		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(orgMember(1, 7, model.RoleAdmin), nil)

		err := svc.Leave(context.Background(), 1, 7)
		assert.Equal(t, errors.ErrConflict, errors.CodeOf(err))
		m.userRepo.AssertNotCalled(t, "SetMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-member cannot leave", func(t *testing.T) {
		svc, m := newOrganizationService(t)
		m.userRepo.On("GetByID", mock.Anything, int64(2)).Return(orgMember(2, 8, model.RoleUser), nil)

		err := svc.Leave(context.Background(), 2, 7)
		assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	})
}

func TestOrganizationService_ToggleManager(t *testing.T) {
	t.Run("admin promotes a member", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(orgMember(1, 7, model.RoleAdmin), nil)
		m.userRepo.On("GetByID", mock.Anything, int64(2)).Return(orgMember(2, 7, model.RoleUser), nil)
		m.userRepo.On("SetRoleExcludingAdmin", mock.Anything, int64(7), int64(2), model.RoleManager).
			Return(int64(1), nil)

		err := svc.ToggleManager(context.Background(), 1, 7, 2, true)
		assert.NoError(t, err)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("manager cannot promote", func(t *testing.T) {
		svc, m := newOrganizationService(t)
		m.userRepo.On("GetByID", mock.Anything, int64(3)).Return(orgMember(3, 7, model.RoleManager), nil)

		err := svc.ToggleManager(context.Background(), 3, 7, 2, true)
		assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
	})

	t.Run("admin role cannot be changed", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(orgMember(1, 7, model.RoleAdmin), nil)

		err := svc.ToggleManager(context.Background(), 1, 7, 1, false)
		assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
		m.userRepo.AssertNotCalled(t, "SetRoleExcludingAdmin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrganizationService_RemoveUser(t *testing.T) {
	t.Run("admin removes a member", func(t *testing.T) {
		svc, m := newOrganizationService(t)

		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(orgMember(1, 7, model.RoleAdmin), nil)
		m.userRepo.On("GetByID", mock.Anything, int64(2)).Return(orgMember(2, 7, model.RoleUser), nil)
		m.userRepo.On("SetMembership", mock.Anything, int64(2), (*int64)(nil), model.RoleUser).Return(nil)

		err := svc.RemoveUser(context.Background(), 1, 7, 2)
		assert.NoError(t, err)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("admin cannot be removed", func(t *testing.T) {
		svc, m := newOrganizationService(t)
		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(orgMember(1, 7, model.RoleAdmin), nil)

		err := svc.RemoveUser(context.Background(), 1, 7, 1)
		assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
	})
}

func TestOrganizationService_DeleteOrganization(t *testing.T) {
	t.Run("cascades requests, tasks and memberships", func(t *testing.T) {
		svc, m := newOrganizationService(t)
		chatID := int64(99)

		m.userRepo.On("GetByID", mock.Anything, int64(1)).Return(orgMember(1, 7, model.RoleAdmin), nil)
		m.orgRepo.On("GetByID", mock.Anything, int64(7)).Return(&model.Organization{ID: 7}, nil)
		m.requestRepo.On("DeleteByOrganization", mock.Anything, int64(7)).Return(nil)

		m.taskRepo.On("ListIDsByOrganization", mock.Anything, int64(7)).Return([]int64{5}, nil)
		m.taskRepo.On("GetForUpdate", mock.Anything, int64(5)).
			Return(&model.Task{ID: 5, OrganizationID: 7, ChatID: &chatID}, nil)
		m.subtaskRepo.On("DeleteByTask", mock.Anything, int64(5)).Return(nil)
		m.performers.On("DeleteByTask", mock.Anything, int64(5)).Return(nil)
		m.taskRepo.On("DeleteImagesByTask", mock.Anything, int64(5)).Return(nil)
		m.chats.On("RemoveChat", mock.Anything, chatID).Return(nil)
		m.taskRepo.On("Delete", mock.Anything, int64(5)).Return(nil)

		m.userRepo.On("ClearMembershipByOrganization", mock.Anything, int64(7)).Return(int64(4), nil)
		m.orgRepo.On("Delete", mock.Anything, int64(7)).Return(nil)

		err := svc.DeleteOrganization(context.Background(), 1, 7)
		assert.NoError(t, err)
		m.orgRepo.AssertExpectations(t)
		m.taskRepo.AssertExpectations(t)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("non-admin cannot delete", func(t *testing.T) {
		svc, m := newOrganizationService(t)
		m.userRepo.On("GetByID", mock.Anything, int64(3)).Return(orgMember(3, 7, model.RoleManager), nil)

		err := svc.DeleteOrganization(context.Background(), 3, 7)
		assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
		m.orgRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestOrganizationService_SearchMembers(t *testing.T) {
	t.Run("short query is rejected", func(t *testing.T) {
		svc, _ := newOrganizationService(t)
		_, err := svc.SearchMembers(context.Background(), 7, "a", 10)
		assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	})

	t.Run("zero limit falls back to the default", func(t *testing.T) {
		svc, m := newOrganizationService(t)
		m.userRepo.On("SearchMembers", mock.Anything, int64(7), "iv", 10).
			Return([]*model.User{{ID: 2}}, nil)

		users, err := svc.SearchMembers(context.Background(), 7, "iv", 0)
		assert.NoError(t, err)
		assert.Len(t, users, 1)
		m.userRepo.AssertExpectations(t)
	})
}
