package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/submission"
)

type submissionRow struct {
	ID             string      `db:"id"`
	LearnerID      string      `db:"learner_id"`
	EnrollmentID   null.String `db:"enrollment_id"`
	ModuleIndex    int         `db:"module_index"`
	RepositoryLink null.String `db:"repository_link"`
	HostingLink    null.String `db:"hosting_link"`
	FreeText       null.String `db:"free_text"`
	SubmittedAt    time.Time   `db:"submitted_at"`
}

func optString(s string) null.String {
	return null.NewString(s, s != "")
}

func (row submissionRow) submission() submission.Submission {
	return submission.Submission{
		ID:             row.ID,
		LearnerID:      row.LearnerID,
		EnrollmentID:   row.EnrollmentID.String,
		ModuleIndex:    row.ModuleIndex,
		RepositoryLink: row.RepositoryLink.String,
		HostingLink:    row.HostingLink.String,
		FreeText:       row.FreeText.String,
		SubmittedAt:    row.SubmittedAt.UTC(),
	}
}

type submissionRepository struct {
	db *sqlx.DB
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *sql.DB) *submissionRepository {
	return &submissionRepository{db: sqlx.NewDb(db, driverName)}
}

func (repo *submissionRepository) CreateSubmission(ctx context.Context, sub submission.Submission) (submission.Submission, error) {
	row := submissionRow{
		ID:             uuid.New().String(),
		LearnerID:      sub.LearnerID,
		EnrollmentID:   optString(sub.EnrollmentID),
		ModuleIndex:    sub.ModuleIndex,
		RepositoryLink: optString(sub.RepositoryLink),
		HostingLink:    optString(sub.HostingLink),
		FreeText:       optString(sub.FreeText),
		SubmittedAt:    sub.SubmittedAt.UTC(),
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO submission (id, learner_id, enrollment_id, module_index, repository_link, hosting_link, free_text, submitted_at)
		VALUES (:id, :learner_id, :enrollment_id, :module_index, :repository_link, :hosting_link, :free_text, :submitted_at)`, row)
	if err != nil {
		return submission.Submission{}, persistenceErr(err, "inserting submission")
	}
	return row.submission(), nil
}

func (repo *submissionRepository) QuerySubmissions(ctx context.Context, filter submission.QueryFilter) ([]submission.Submission, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.LearnerID != "" {
		if _, err := uuid.Parse(filter.LearnerID); err != nil {
			return []submission.Submission{}, nil
		}
		args = append(args, filter.LearnerID)
		conds = append(conds, "learner_id = $"+strconv.Itoa(len(args)))
	}
	if filter.ModuleIndex != nil {
		args = append(args, *filter.ModuleIndex)
		conds = append(conds, "module_index = $"+strconv.Itoa(len(args)))
	}

	var rows []submissionRow
	q := `SELECT * FROM submission` + where(conds) + ` ORDER BY submitted_at DESC, id`
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, persistenceErr(err, "querying submissions")
	}
	subs := make([]submission.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.submission())
	}
	return subs, nil
}
