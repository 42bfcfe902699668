package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/ambassador"
)

type applicationRow struct {
	ID          string      `db:"id"`
	Name        string      `db:"name"`
	Email       string      `db:"email"`
	Phone       string      `db:"phone"`
	College     string      `db:"college"`
	YearOfStudy string      `db:"year_of_study"`
	Experience  null.String `db:"experience"`
	SocialMedia null.String `db:"social_media"`
	Motivation  string      `db:"motivation"`
	CreatedAt   time.Time   `db:"created_at"`
}

func (row applicationRow) application() ambassador.Application {
	return ambassador.Application{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Phone:       row.Phone,
		College:     row.College,
		YearOfStudy: row.YearOfStudy,
		Experience:  row.Experience.String,
		SocialMedia: row.SocialMedia.String,
		Motivation:  row.Motivation,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

type ambassadorRepository struct {
	db *sqlx.DB
}

var _ ambassador.Repository = (*ambassadorRepository)(nil) // interface compliance check

func NewAmbassadorRepository(db *sql.DB) *ambassadorRepository {
	return &ambassadorRepository{db: sqlx.NewDb(db, driverName)}
}

func (repo *ambassadorRepository) CreateApplication(ctx context.Context, app ambassador.Application) (ambassador.Application, error) {
	row := applicationRow{
		ID:          uuid.New().String(),
		Name:        app.Name,
		Email:       app.Email,
		Phone:       app.Phone,
		College:     app.College,
		YearOfStudy: app.YearOfStudy,
		Experience:  optString(app.Experience),
		SocialMedia: optString(app.SocialMedia),
		Motivation:  app.Motivation,
		CreatedAt:   app.CreatedAt.UTC(),
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO ambassador_application (id, name, email, phone, college, year_of_study, experience, social_media, motivation, created_at)
		VALUES (:id, :name, :email, :phone, :college, :year_of_study, :experience, :social_media, :motivation, :created_at)`, row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return ambassador.Application{}, ambassador.ErrAlreadyApplied
		}
		return ambassador.Application{}, persistenceErr(err, "inserting ambassador application")
	}
	return row.application(), nil
}

func (repo *ambassadorRepository) QueryApplications(ctx context.Context) ([]ambassador.Application, error) {
	var rows []applicationRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT id, name, email, phone, college, year_of_study, experience, social_media, motivation, created_at
		FROM ambassador_application
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, persistenceErr(err, "querying ambassador applications")
	}
	apps := make([]ambassador.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, row.application())
	}
	return apps, nil
}
