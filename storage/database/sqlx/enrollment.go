package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/pricing"
)

const pqUniqueViolation = "23505"

type enrollmentRow struct {
	ID             string      `db:"id"`
	LearnerID      string      `db:"learner_id"`
	PackageID      string      `db:"package_id"`
	PackageName    string      `db:"package_name"`
	ModuleCount    int         `db:"module_count"`
	Mode           string      `db:"mode"`
	DurationMonths int         `db:"duration_months"`
	Amount         int         `db:"amount"`
	Domain         string      `db:"domain"`
	StudentName    string      `db:"student_name"`
	Location       string      `db:"location"`
	PhoneNumber    string      `db:"phone_number"`
	CollegeName    string      `db:"college_name"`
	YearOfStudy    string      `db:"year_of_study"`
	Email          string      `db:"email"`
	SecondaryEmail null.String `db:"secondary_email"`
	CreatedAt      time.Time   `db:"created_at"`
}

func toEnrollmentRow(enr enrollment.Enrollment) enrollmentRow {
	return enrollmentRow{
		ID:             enr.ID,
		LearnerID:      enr.LearnerID,
		PackageID:      enr.PackageID,
		PackageName:    enr.PackageName,
		ModuleCount:    enr.ModuleCount,
		Mode:           string(enr.Mode),
		DurationMonths: enr.DurationMonths,
		Amount:         enr.Amount,
		Domain:         enr.Domain,
		StudentName:    enr.StudentName,
		Location:       enr.Location,
		PhoneNumber:    enr.PhoneNumber,
		CollegeName:    enr.CollegeName,
		YearOfStudy:    enr.YearOfStudy,
		Email:          enr.Email,
		SecondaryEmail: null.NewString(enr.SecondaryEmail, enr.SecondaryEmail != ""),
		CreatedAt:      enr.CreatedAt.UTC(),
	}
}

func (row enrollmentRow) enrollment() enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:             row.ID,
		LearnerID:      row.LearnerID,
		PackageID:      row.PackageID,
		PackageName:    row.PackageName,
		ModuleCount:    row.ModuleCount,
		Mode:           pricing.Mode(row.Mode),
		DurationMonths: row.DurationMonths,
		Amount:         row.Amount,
		Domain:         row.Domain,
		StudentName:    row.StudentName,
		Location:       row.Location,
		PhoneNumber:    row.PhoneNumber,
		CollegeName:    row.CollegeName,
		YearOfStudy:    row.YearOfStudy,
		Email:          row.Email,
		SecondaryEmail: row.SecondaryEmail.String,
		CreatedAt:      row.CreatedAt.UTC(),
	}
}

var learnerOrderingColumns = map[string]string{
	"name":            "u.name",
	"email":           "u.email",
	"enrolled_at":     "e.created_at",
	"completed_count": "completed_count",
}

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{db: sqlx.NewDb(db, driverName)}
}

func (repo *enrollmentRepository) ReplaceEnrollment(ctx context.Context, enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	enr.ID = uuid.New().String()
	row := toEnrollmentRow(enr)

	err := withTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		// progress rows cascade
		if _, err := tx.ExecContext(ctx, `DELETE FROM enrollment WHERE learner_id = $1`, row.LearnerID); err != nil {
			return persistenceErr(err, "deleting previous enrollment")
		}
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO enrollment (
				id, learner_id, package_id, package_name, module_count, mode, duration_months, amount, domain,
				student_name, location, phone_number, college_name, year_of_study, email, secondary_email, created_at
			) VALUES (
				:id, :learner_id, :package_id, :package_name, :module_count, :mode, :duration_months, :amount, :domain,
				:student_name, :location, :phone_number, :college_name, :year_of_study, :email, :secondary_email, :created_at
			)`, row)
		if err != nil {
			return persistenceErr(err, "inserting enrollment")
		}
		return nil
	})
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	return row.enrollment(), nil
}

func (repo *enrollmentRepository) GetEnrollment(ctx context.Context, learnerID string) (enrollment.Enrollment, error) {
	if _, err := uuid.Parse(learnerID); err != nil {
		return enrollment.Enrollment{}, enrollment.ErrNotEnrolled
	}
	var row enrollmentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM enrollment WHERE learner_id = $1`, learnerID); err != nil {
		if isNoRows(err) {
			return enrollment.Enrollment{}, enrollment.ErrNotEnrolled
		}
		return enrollment.Enrollment{}, persistenceErr(err, "finding enrollment")
	}
	return row.enrollment(), nil
}

func (repo *enrollmentRepository) GetLedger(ctx context.Context, enrollmentID string) (enrollment.Ledger, error) {
	return getLedger(ctx, repo.db, enrollmentID)
}

func getLedger(ctx context.Context, q sqlx.QueryerContext, enrollmentID string) (enrollment.Ledger, error) {
	var indices []int
	err := sqlx.SelectContext(ctx, q, &indices, `SELECT module_index FROM module_progress WHERE enrollment_id = $1`, enrollmentID)
	if err != nil {
		return nil, persistenceErr(err, "reading progress")
	}
	ledger := make(enrollment.Ledger, len(indices))
	for _, i := range indices {
		ledger[i] = true
	}
	return ledger, nil
}

func (repo *enrollmentRepository) MarkModuleCompleted(ctx context.Context, enrollmentID string, index int, at time.Time) error {
	return withTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		// the row lock serializes completions of the same enrollment
		var moduleCount int
		err := tx.GetContext(ctx, &moduleCount, `SELECT module_count FROM enrollment WHERE id = $1 FOR UPDATE`, enrollmentID)
		if err != nil {
			if isNoRows(err) {
				return enrollment.ErrNotEnrolled
			}
			return persistenceErr(err, "locking enrollment")
		}

		ledger, err := getLedger(ctx, tx, enrollmentID)
		if err != nil {
			return err
		}
		if _, err = enrollment.Complete(ledger, moduleCount, index); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO module_progress (enrollment_id, module_index, completed_at) VALUES ($1, $2, $3)`,
			enrollmentID, index, at.UTC())
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
				return &enrollment.InvalidTransitionError{Index: index, Available: enrollment.CurrentIndex(ledger, moduleCount)}
			}
			return persistenceErr(err, "inserting progress")
		}
		return nil
	})
}

func (repo *enrollmentRepository) QueryLearners(ctx context.Context, filter enrollment.LearnerFilter) ([]enrollment.Learner, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		p := "$" + strconv.Itoa(len(args))
		conds = append(conds, "(u.name ILIKE "+p+" OR u.email ILIKE "+p+")")
	}
	if filter.PackageID != "" {
		args = append(args, filter.PackageID)
		conds = append(conds, "e.package_id = $"+strconv.Itoa(len(args)))
	}

	q := `
		SELECT
			e.learner_id, u.name, u.email, e.id AS enrollment_id, e.package_id, e.package_name, e.mode, e.domain,
			(SELECT COUNT(*) FROM module_progress mp WHERE mp.enrollment_id = e.id AND mp.module_index < e.module_count) AS completed_count,
			e.module_count, e.created_at AS enrolled_at
		FROM enrollment e
		JOIN "user" u ON u.id = e.learner_id` +
		where(conds) +
		orderBy(filter.Ordering, learnerOrderingColumns, "e.created_at DESC")

	learners := make([]enrollment.Learner, 0)
	if err := repo.db.SelectContext(ctx, &learners, q, args...); err != nil {
		return nil, persistenceErr(err, "querying learners")
	}
	for i := range learners {
		learners[i].EnrolledAt = learners[i].EnrolledAt.UTC()
	}
	return learners, nil
}
