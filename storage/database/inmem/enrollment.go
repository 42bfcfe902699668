package inmemdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
)

type enrollmentRepository struct {
	db    *enrollmentTable
	users *userTable
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) *enrollmentRepository {
	return &enrollmentRepository{db: db.enrollment, users: db.user}
}

func (repo *enrollmentRepository) ReplaceEnrollment(_ context.Context, enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if prev, ok := repo.db.table[enr.LearnerID]; ok {
		delete(repo.db.progress, prev.ID)
	}
	enr.ID = uuid.New().String()
	repo.db.table[enr.LearnerID] = &enr
	repo.db.progress[enr.ID] = make(enrollment.Ledger)
	return enr, nil
}

func (repo *enrollmentRepository) GetEnrollment(_ context.Context, learnerID string) (enrollment.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if enr, ok := repo.db.table[learnerID]; ok {
		return *enr, nil
	}
	return enrollment.Enrollment{}, enrollment.ErrNotEnrolled
}

func (repo *enrollmentRepository) GetLedger(_ context.Context, enrollmentID string) (enrollment.Ledger, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ledger := make(enrollment.Ledger, len(repo.db.progress[enrollmentID]))
	for i, done := range repo.db.progress[enrollmentID] {
		ledger[i] = done
	}
	return ledger, nil
}

func (repo *enrollmentRepository) MarkModuleCompleted(_ context.Context, enrollmentID string, index int, _ time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	enr := repo.findByID(enrollmentID)
	if enr == nil {
		return enrollment.ErrNotEnrolled
	}
	next, err := enrollment.Complete(repo.db.progress[enrollmentID], enr.ModuleCount, index)
	if err != nil {
		return err
	}
	repo.db.progress[enrollmentID] = next
	return nil
}

func (repo *enrollmentRepository) findByID(id string) *enrollment.Enrollment {
	for _, enr := range repo.db.table {
		if enr.ID == id {
			return enr
		}
	}
	return nil
}

func (repo *enrollmentRepository) QueryLearners(_ context.Context, filter enrollment.LearnerFilter) ([]enrollment.Learner, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	repo.users.mutex.RLock()
	defer repo.users.mutex.RUnlock()

	learners := make([]enrollment.Learner, 0, len(repo.db.table))
	for learnerID, enr := range repo.db.table {
		usr, ok := repo.users.table[learnerID]
		if !ok {
			continue
		}
		if filter.PackageID != "" && enr.PackageID != filter.PackageID {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(usr.Name), filter.Search) &&
			!strings.Contains(strings.ToLower(usr.Email), filter.Search) {
			continue
		}
		learners = append(learners, enrollment.Learner{
			ID:             learnerID,
			Name:           usr.Name,
			Email:          usr.Email,
			EnrollmentID:   enr.ID,
			PackageID:      enr.PackageID,
			PackageName:    enr.PackageName,
			Mode:           enr.Mode,
			Domain:         enr.Domain,
			CompletedCount: enrollment.CompletedCount(repo.db.progress[enr.ID], enr.ModuleCount),
			ModuleCount:    enr.ModuleCount,
			EnrolledAt:     enr.CreatedAt,
		})
	}

	ordering := filter.Ordering
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "enrolled_at"}} // latest first
	}
	sort.SliceStable(learners, func(i, j int) bool {
		for _, ord := range ordering {
			if cmp := compareLearners(learners[i], learners[j], ord.Field); cmp != 0 {
				if ord.Ascending {
					return cmp < 0
				}
				return cmp > 0
			}
		}
		return learners[i].ID < learners[j].ID
	})
	return learners, nil
}

func compareLearners(a, b enrollment.Learner, field string) int {
	switch field {
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "enrolled_at":
		switch {
		case a.EnrolledAt.Before(b.EnrolledAt):
			return -1
		case a.EnrolledAt.After(b.EnrolledAt):
			return 1
		}
	case "completed_count":
		return a.CompletedCount - b.CompletedCount
	}
	return 0
}
