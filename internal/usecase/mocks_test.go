package usecase

import (
	"context"
	"time"

	"cups-server/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

// passthroughTransactor runs the function directly; transaction semantics are
// exercised at the repository layer.
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfileImage(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *MockUserRepository) SetMembership(ctx context.Context, userID int64, orgID *int64, role model.Role) error {
	args := m.Called(ctx, userID, orgID, role)
	return args.Error(0)
}

func (m *MockUserRepository) ClearMembershipByOrganization(ctx context.Context, orgID int64) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SetRoleExcludingAdmin(ctx context.Context, orgID, userID int64, role model.Role) (int64, error) {
	args := m.Called(ctx, orgID, userID, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ListByOrganization(ctx context.Context, orgID int64, nameFilter string) ([]*model.User, error) {
	args := m.Called(ctx, orgID, nameFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) SearchMembers(ctx context.Context, orgID int64, query string, limit int) ([]*model.User, error) {
	args := m.Called(ctx, orgID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) SearchByName(ctx context.Context, query string) ([]*model.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) AwardCups(ctx context.Context, userID int64, amount int) (*model.User, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetGoal(ctx context.Context, userID int64, purposeCupCount int) error {
	args := m.Called(ctx, userID, purposeCupCount)
	return args.Error(0)
}

// MockOrganizationRepository is a mock implementation of OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *model.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrganizationRepository) SearchByName(ctx context.Context, query string) ([]*model.Organization, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Organization), args.Error(1)
}

// MockOrganizationRequestRepository is a mock implementation of OrganizationRequestRepository
type MockOrganizationRequestRepository struct {
	mock.Mock
}

func (m *MockOrganizationRequestRepository) Create(ctx context.Context, request *model.OrganizationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockOrganizationRequestRepository) GetByID(ctx context.Context, id int64) (*model.OrganizationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationRequest), args.Error(1)
}

func (m *MockOrganizationRequestRepository) GetForUpdate(ctx context.Context, id int64) (*model.OrganizationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationRequest), args.Error(1)
}

func (m *MockOrganizationRequestRepository) SetStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrganizationRequestRepository) HasPending(ctx context.Context, userID, orgID int64) (bool, error) {
	args := m.Called(ctx, userID, orgID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrganizationRequestRepository) ListPendingByOrganization(ctx context.Context, orgID int64, nameFilter string) ([]*model.OrganizationRequest, error) {
	args := m.Called(ctx, orgID, nameFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.OrganizationRequest), args.Error(1)
}

func (m *MockOrganizationRequestRepository) DeleteByOrganization(ctx context.Context, orgID int64) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetForUpdate(ctx context.Context, id int64) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) SetStatus(ctx context.Context, id int64, status model.TaskStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTaskRepository) SetChat(ctx context.Context, id int64, chatID int64) error {
	args := m.Called(ctx, id, chatID)
	return args.Error(0)
}

func (m *MockTaskRepository) AttachImages(ctx context.Context, taskID int64, imageURLs []string) error {
	args := m.Called(ctx, taskID, imageURLs)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteImagesByTask(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskRepository) ListForUser(ctx context.Context, userID int64, from, to *time.Time) ([]*model.Task, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListAll(ctx context.Context, from, to *time.Time) ([]*model.Task, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListIDsByOrganization(ctx context.Context, orgID int64) ([]int64, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockSubtaskRepository is a mock implementation of SubtaskRepository
type MockSubtaskRepository struct {
	mock.Mock
}

func (m *MockSubtaskRepository) CreateBatch(ctx context.Context, subtasks []*model.Subtask) error {
	args := m.Called(ctx, subtasks)
	return args.Error(0)
}

func (m *MockSubtaskRepository) GetByID(ctx context.Context, taskID, subtaskID int64) (*model.Subtask, error) {
	args := m.Called(ctx, taskID, subtaskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subtask), args.Error(1)
}

func (m *MockSubtaskRepository) ListByTask(ctx context.Context, taskID int64) ([]*model.Subtask, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Subtask), args.Error(1)
}

func (m *MockSubtaskRepository) SetStatus(ctx context.Context, subtaskID int64, status model.SubtaskStatus) error {
	args := m.Called(ctx, subtaskID, status)
	return args.Error(0)
}

func (m *MockSubtaskRepository) DeleteByTask(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MockPerformerRepository is a mock implementation of PerformerRepository
type MockPerformerRepository struct {
	mock.Mock
}

func (m *MockPerformerRepository) CreateBatch(ctx context.Context, performers []*model.Performer) error {
	args := m.Called(ctx, performers)
	return args.Error(0)
}

func (m *MockPerformerRepository) ListByTask(ctx context.Context, taskID int64) ([]*model.Performer, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Performer), args.Error(1)
}

func (m *MockPerformerRepository) Exists(ctx context.Context, taskID, userID int64) (bool, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPerformerRepository) DeleteByTask(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MockBlobStorage is a mock implementation of provider.BlobStorage
type MockBlobStorage struct {
	mock.Mock
}

func (m *MockBlobStorage) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	args := m.Called(ctx, data, contentType, folder)
	return args.String(0), args.Error(1)
}

// MockChatProvisioner is a mock implementation of provider.ChatProvisioner
type MockChatProvisioner struct {
	mock.Mock
}

func (m *MockChatProvisioner) CreateChat(ctx context.Context, taskID int64, memberIDs []int64) (int64, error) {
	args := m.Called(ctx, taskID, memberIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatProvisioner) DeactivateChat(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *MockChatProvisioner) RemoveChat(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}
