package database

import (
	"cups-server/internal/adapter/repository"
	domainRepo "cups-server/internal/domain/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         domainRepo.UserRepository
	Organization domainRepo.OrganizationRepository
	Request      domainRepo.OrganizationRequestRepository
	Task         domainRepo.TaskRepository
	Subtask      domainRepo.SubtaskRepository
	Performer    domainRepo.PerformerRepository
	Transactor   domainRepo.Transactor
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		User:         repository.NewUserRepository(db, logger),
		Organization: repository.NewOrganizationRepository(db, logger),
		Request:      repository.NewOrganizationRequestRepository(db, logger),
		Task:         repository.NewTaskRepository(db, logger),
		Subtask:      repository.NewSubtaskRepository(db, logger),
		Performer:    repository.NewPerformerRepository(db, logger),
		Transactor:   repository.NewTransactor(db, logger),
	}
}
