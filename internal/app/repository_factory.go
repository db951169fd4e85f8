package app

import (
	"github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/activities/infrastructure/persistence"
	"github.com/manumorante/whats-next/internal/shared/infrastructure/database"
)

// RepositoryFactory creates repositories on an open connection. The
// repositories write portable SQL, so one implementation serves every driver.
type RepositoryFactory struct {
	conn database.Connection
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{conn: conn}
}

// Driver returns the backend the repositories run on.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.conn.Driver()
}

func (f *RepositoryFactory) ActivityRepository() domain.ActivityRepository {
	return persistence.NewActivityRepository(f.conn)
}

func (f *RepositoryFactory) ContextRepository() domain.ContextRepository {
	return persistence.NewContextRepository(f.conn)
}

func (f *RepositoryFactory) CategoryRepository() domain.CategoryRepository {
	return persistence.NewCategoryRepository(f.conn)
}

// UnitOfWork returns a unit of work on the same connection.
func (f *RepositoryFactory) UnitOfWork() *database.UnitOfWork {
	return database.NewUnitOfWork(f.conn)
}
