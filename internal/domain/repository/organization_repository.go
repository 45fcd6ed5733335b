package repository

import (
	"context"

	"cups-server/internal/domain/model"
)

// OrganizationRepository defines the interface for organization storage operations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) error

	GetByID(ctx context.Context, id int64) (*model.Organization, error)

	Update(ctx context.Context, org *model.Organization) error

	UpdateImage(ctx context.Context, id int64, imageURL string) error

	Delete(ctx context.Context, id int64) error

	// SearchByName performs a case-insensitive name lookup.
	SearchByName(ctx context.Context, query string) ([]*model.Organization, error)
}

// OrganizationRequestRepository defines the interface for membership request storage.
type OrganizationRequestRepository interface {
	Create(ctx context.Context, request *model.OrganizationRequest) error

	GetByID(ctx context.Context, id int64) (*model.OrganizationRequest, error)

	// GetForUpdate loads the request row under a SELECT ... FOR UPDATE lock so
	// concurrent resolutions of the same request serialize.
	GetForUpdate(ctx context.Context, id int64) (*model.OrganizationRequest, error)

	SetStatus(ctx context.Context, id int64, status model.RequestStatus) error

	// HasPending reports whether at least one pending request exists for the
	// (user, organization) pair.
	HasPending(ctx context.Context, userID, orgID int64) (bool, error)

	// ListPendingByOrganization returns pending requests with requester info,
	// optionally filtered by a case-insensitive name substring.
	ListPendingByOrganization(ctx context.Context, orgID int64, nameFilter string) ([]*model.OrganizationRequest, error)

	DeleteByOrganization(ctx context.Context, orgID int64) error
}
