package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/submission"
)

type submissionRepository struct {
	db *submissionTable
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) *submissionRepository {
	return &submissionRepository{db: db.submission}
}

func (repo *submissionRepository) CreateSubmission(_ context.Context, sub submission.Submission) (submission.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sub.ID = uuid.New().String()
	repo.db.table = append(repo.db.table, sub)
	return sub, nil
}

func (repo *submissionRepository) QuerySubmissions(_ context.Context, filter submission.QueryFilter) ([]submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subs := make([]submission.Submission, 0)
	for i := len(repo.db.table) - 1; i >= 0; i-- {
		sub := repo.db.table[i]
		if filter.LearnerID != "" && sub.LearnerID != filter.LearnerID {
			continue
		}
		if filter.ModuleIndex != nil && sub.ModuleIndex != *filter.ModuleIndex {
			continue
		}
		subs = append(subs, sub)
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].SubmittedAt.After(subs[j].SubmittedAt) })
	return subs, nil
}
