package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
)

const meetingColumns = `id, title, description, to_char(scheduled_date, 'YYYY-MM-DD') AS scheduled_date, scheduled_time, join_link, created_by, created_at`

type meetingRow struct {
	ID            string      `db:"id"`
	Title         string      `db:"title"`
	Description   null.String `db:"description"`
	ScheduledDate string      `db:"scheduled_date"`
	ScheduledTime string      `db:"scheduled_time"`
	JoinLink      string      `db:"join_link"`
	CreatedBy     string      `db:"created_by"`
	CreatedAt     time.Time   `db:"created_at"`
}

func (row meetingRow) meeting() meeting.Meeting {
	return meeting.Meeting{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description.String,
		ScheduledDate: row.ScheduledDate,
		ScheduledTime: row.ScheduledTime,
		JoinLink:      row.JoinLink,
		CreatedBy:     row.CreatedBy,
		CreatedAt:     row.CreatedAt.UTC(),
	}
}

type meetingRepository struct {
	db *sqlx.DB
}

var _ meeting.Repository = (*meetingRepository)(nil) // interface compliance check

func NewMeetingRepository(db *sql.DB) *meetingRepository {
	return &meetingRepository{db: sqlx.NewDb(db, driverName)}
}

func (repo *meetingRepository) CreateMeeting(ctx context.Context, mtg meeting.Meeting) (meeting.Meeting, error) {
	row := meetingRow{
		ID:            uuid.New().String(),
		Title:         mtg.Title,
		Description:   optString(mtg.Description),
		ScheduledDate: mtg.ScheduledDate,
		ScheduledTime: mtg.ScheduledTime,
		JoinLink:      mtg.JoinLink,
		CreatedBy:     mtg.CreatedBy,
		CreatedAt:     mtg.CreatedAt.UTC(),
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO meeting (id, title, description, scheduled_date, scheduled_time, join_link, created_by, created_at)
		VALUES (:id, :title, :description, :scheduled_date, :scheduled_time, :join_link, :created_by, :created_at)`, row)
	if err != nil {
		return meeting.Meeting{}, persistenceErr(err, "inserting meeting")
	}
	return row.meeting(), nil
}

func (repo *meetingRepository) QueryMeetings(ctx context.Context, filter meeting.QueryFilter) ([]meeting.Meeting, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.From != "" {
		args = append(args, filter.From)
		conds = append(conds, "scheduled_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		conds = append(conds, "scheduled_date < $"+strconv.Itoa(len(args)))
	}

	var rows []meetingRow
	q := `SELECT ` + meetingColumns + ` FROM meeting` + where(conds) + ` ORDER BY meeting.scheduled_date, scheduled_time, created_at`
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, persistenceErr(err, "querying meetings")
	}
	mtgs := make([]meeting.Meeting, 0, len(rows))
	for _, row := range rows {
		mtgs = append(mtgs, row.meeting())
	}
	return mtgs, nil
}

func (repo *meetingRepository) DeleteMeeting(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return meeting.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM meeting WHERE id = $1`, id)
	if err != nil {
		return persistenceErr(err, "deleting meeting")
	}
	if n, err := res.RowsAffected(); err != nil {
		return persistenceErr(err, "deleting meeting")
	} else if n == 0 {
		return meeting.ErrNotFound
	}
	return nil
}
