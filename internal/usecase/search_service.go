package usecase

import (
	"context"
	"sort"
	"strings"

	"cups-server/internal/domain/model"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
)

// SearchResult aggregates user and organization matches for a query.
type SearchResult struct {
	Users         []*model.User         `json:"users,omitempty"`
	Organizations []*model.Organization `json:"organizations,omitempty"`
}

// SearchService performs name lookups over users and organizations.
type SearchService struct {
	userRepo domainRepo.UserRepository
	orgRepo  domainRepo.OrganizationRepository
	logger   *zap.Logger
}

// NewSearchService creates a new search service instance
func NewSearchService(userRepo domainRepo.UserRepository, orgRepo domainRepo.OrganizationRepository, logger *zap.Logger) *SearchService {
	return &SearchService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		logger:   logger,
	}
}

// Search looks up users and/or organizations by name. The filter selects
// "users", "organizations" or "all". Exact matches sort first.
func (s *SearchService) Search(ctx context.Context, query, filter string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, errors.Validation("query must be at least 2 characters")
	}

	result := &SearchResult{}

	switch filter {
	case "", "all":
		users, err := s.userRepo.SearchByName(ctx, query)
		if err != nil {
			return nil, err
		}
		orgs, err := s.orgRepo.SearchByName(ctx, query)
		if err != nil {
			return nil, err
		}
		result.Users = rankUsers(users, query)
		result.Organizations = rankOrganizations(orgs, query)
	case "users":
		users, err := s.userRepo.SearchByName(ctx, query)
		if err != nil {
			return nil, err
		}
		result.Users = rankUsers(users, query)
	case "organizations":
		orgs, err := s.orgRepo.SearchByName(ctx, query)
		if err != nil {
			return nil, err
		}
		result.Organizations = rankOrganizations(orgs, query)
	default:
		return nil, errors.Validation("filter must be 'users', 'organizations' or 'all'")
	}

	return result, nil
}

func rankUsers(users []*model.User, query string) []*model.User {
	q := strings.ToLower(query)
	sort.SliceStable(users, func(i, j int) bool {
		return userExactMatch(users[i], q) && !userExactMatch(users[j], q)
	})
	return users
}

func userExactMatch(u *model.User, q string) bool {
	full := strings.ToLower(u.FirstName + " " + u.LastName)
	return strings.ToLower(u.FirstName) == q || strings.ToLower(u.LastName) == q || full == q
}

func rankOrganizations(orgs []*model.Organization, query string) []*model.Organization {
	q := strings.ToLower(query)
	sort.SliceStable(orgs, func(i, j int) bool {
		return strings.ToLower(orgs[i].Name) == q && strings.ToLower(orgs[j].Name) != q
	})
	return orgs
}
