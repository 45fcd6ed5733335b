package repository

import (
	"context"

	"cups-server/internal/domain/model"
)

// UserRepository defines the interface for user storage operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error

	GetByID(ctx context.Context, id int64) (*model.User, error)

	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ListByIDs returns the users with the given IDs, in no particular order.
	ListByIDs(ctx context.Context, ids []int64) ([]*model.User, error)

	Update(ctx context.Context, user *model.User) error

	UpdateProfileImage(ctx context.Context, id int64, imageURL string) error

	// SetMembership updates a user's organization reference and role in one
	// statement. A nil orgID detaches the user.
	SetMembership(ctx context.Context, userID int64, orgID *int64, role model.Role) error

	// ClearMembershipByOrganization detaches every member of the organization
	// and resets their role to User. Returns the number of affected rows.
	ClearMembershipByOrganization(ctx context.Context, orgID int64) (int64, error)

	// SetRoleExcludingAdmin updates the role of a member of orgID, skipping
	// targets whose current role is Admin. Returns the number of affected rows.
	SetRoleExcludingAdmin(ctx context.Context, orgID, userID int64, role model.Role) (int64, error)

	// ListByOrganization returns the members of an organization, optionally
	// filtered by a case-insensitive name substring.
	ListByOrganization(ctx context.Context, orgID int64, nameFilter string) ([]*model.User, error)

	// SearchMembers performs a bounded name lookup among an organization's members.
	SearchMembers(ctx context.Context, orgID int64, query string, limit int) ([]*model.User, error)

	// SearchByName performs a case-insensitive name lookup across all users.
	SearchByName(ctx context.Context, query string) ([]*model.User, error)

	// AwardCups atomically credits amount cups to the user, applying the
	// goal-reset rule under a row lock. Returns the updated user.
	AwardCups(ctx context.Context, userID int64, amount int) (*model.User, error)

	SetGoal(ctx context.Context, userID int64, purposeCupCount int) error
}
