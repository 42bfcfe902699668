package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/assignment"
)

type assignmentRepository struct {
	db *assignmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) *assignmentRepository {
	return &assignmentRepository{db: db.assignment}
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	asg.ID = uuid.New().String()
	repo.db.table[asg.ID] = &asg
	return asg, nil
}

func (repo *assignmentRepository) QueryAssignments(_ context.Context) ([]assignment.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	asgs := make([]assignment.Assignment, 0, len(repo.db.table))
	for _, asg := range repo.db.table {
		asgs = append(asgs, *asg)
	}
	sort.Slice(asgs, func(i, j int) bool {
		if asgs[i].ModuleIndex != asgs[j].ModuleIndex {
			return asgs[i].ModuleIndex < asgs[j].ModuleIndex
		}
		if !asgs[i].CreatedAt.Equal(asgs[j].CreatedAt) {
			return asgs[i].CreatedAt.Before(asgs[j].CreatedAt)
		}
		return asgs[i].ID < asgs[j].ID
	})
	return asgs, nil
}

func (repo *assignmentRepository) DeleteAssignment(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return assignment.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
