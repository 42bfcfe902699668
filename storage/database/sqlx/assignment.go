package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/assignment"
)

type assignmentRow struct {
	ID               string      `db:"id"`
	Title            string      `db:"title"`
	ModuleIndex      int         `db:"module_index"`
	Description      string      `db:"description"`
	VideoLink        null.String `db:"video_link"`
	SampleScreenshot null.String `db:"sample_screenshot"`
	DueDate          null.String `db:"due_date"`
	CreatedBy        string      `db:"created_by"`
	CreatedAt        time.Time   `db:"created_at"`
}

func (row assignmentRow) assignment() assignment.Assignment {
	return assignment.Assignment{
		ID:               row.ID,
		Title:            row.Title,
		ModuleIndex:      row.ModuleIndex,
		Description:      row.Description,
		VideoLink:        row.VideoLink.String,
		SampleScreenshot: row.SampleScreenshot.String,
		DueDate:          row.DueDate.String,
		CreatedBy:        row.CreatedBy,
		CreatedAt:        row.CreatedAt.UTC(),
	}
}

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sql.DB) *assignmentRepository {
	return &assignmentRepository{db: sqlx.NewDb(db, driverName)}
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	row := assignmentRow{
		ID:               uuid.New().String(),
		Title:            asg.Title,
		ModuleIndex:      asg.ModuleIndex,
		Description:      asg.Description,
		VideoLink:        optString(asg.VideoLink),
		SampleScreenshot: optString(asg.SampleScreenshot),
		DueDate:          optString(asg.DueDate),
		CreatedBy:        asg.CreatedBy,
		CreatedAt:        asg.CreatedAt.UTC(),
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO assignment (id, title, module_index, description, video_link, sample_screenshot, due_date, created_by, created_at)
		VALUES (:id, :title, :module_index, :description, :video_link, :sample_screenshot, :due_date::date, :created_by, :created_at)`, row)
	if err != nil {
		return assignment.Assignment{}, persistenceErr(err, "inserting assignment")
	}
	return row.assignment(), nil
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT id, title, module_index, description, video_link, sample_screenshot,
			to_char(due_date, 'YYYY-MM-DD') AS due_date, created_by, created_at
		FROM assignment
		ORDER BY module_index, created_at`)
	if err != nil {
		return nil, persistenceErr(err, "querying assignments")
	}
	asgs := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		asgs = append(asgs, row.assignment())
	}
	return asgs, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return assignment.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM assignment WHERE id = $1`, id)
	if err != nil {
		return persistenceErr(err, "deleting assignment")
	}
	if n, err := res.RowsAffected(); err != nil {
		return persistenceErr(err, "deleting assignment")
	} else if n == 0 {
		return assignment.ErrNotFound
	}
	return nil
}
