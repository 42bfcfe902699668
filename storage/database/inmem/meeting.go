package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
)

type meetingRepository struct {
	db *meetingTable
}

var _ meeting.Repository = (*meetingRepository)(nil) // interface compliance check

func NewMeetingRepository(db *DB) *meetingRepository {
	return &meetingRepository{db: db.meeting}
}

func (repo *meetingRepository) CreateMeeting(_ context.Context, mtg meeting.Meeting) (meeting.Meeting, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	mtg.ID = uuid.New().String()
	repo.db.table[mtg.ID] = &mtg
	return mtg, nil
}

func (repo *meetingRepository) QueryMeetings(_ context.Context, filter meeting.QueryFilter) ([]meeting.Meeting, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	mtgs := make([]meeting.Meeting, 0, len(repo.db.table))
	for _, mtg := range repo.db.table {
		if filter.From != "" && mtg.ScheduledDate < filter.From {
			continue
		}
		if filter.To != "" && mtg.ScheduledDate >= filter.To {
			continue
		}
		mtgs = append(mtgs, *mtg)
	}
	sort.Slice(mtgs, func(i, j int) bool {
		if mtgs[i].ScheduledDate != mtgs[j].ScheduledDate {
			return mtgs[i].ScheduledDate < mtgs[j].ScheduledDate
		}
		if mtgs[i].ScheduledTime != mtgs[j].ScheduledTime {
			return mtgs[i].ScheduledTime < mtgs[j].ScheduledTime
		}
		return mtgs[i].CreatedAt.Before(mtgs[j].CreatedAt)
	})
	return mtgs, nil
}

func (repo *meetingRepository) DeleteMeeting(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return meeting.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
