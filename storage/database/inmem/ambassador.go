package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/ambassador"
)

type ambassadorRepository struct {
	db *ambassadorTable
}

var _ ambassador.Repository = (*ambassadorRepository)(nil) // interface compliance check

func NewAmbassadorRepository(db *DB) *ambassadorRepository {
	return &ambassadorRepository{db: db.ambassador}
}

func (repo *ambassadorRepository) CreateApplication(_ context.Context, app ambassador.Application) (ambassador.Application, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.table {
		if existing.Email == app.Email {
			return ambassador.Application{}, ambassador.ErrAlreadyApplied
		}
	}
	app.ID = uuid.New().String()
	repo.db.table = append(repo.db.table, app)
	return app, nil
}

func (repo *ambassadorRepository) QueryApplications(_ context.Context) ([]ambassador.Application, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	// appended in creation order
	apps := make([]ambassador.Application, 0, len(repo.db.table))
	for i := len(repo.db.table) - 1; i >= 0; i-- {
		apps = append(apps, repo.db.table[i])
	}
	return apps, nil
}
