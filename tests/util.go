// Package testutil holds fixtures shared by the test suites.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
	logsvc "github.com/MDharunPrasad/giglabs-intern-venture/services/logger"
	"github.com/MDharunPrasad/giglabs-intern-venture/storage/database"
)

const DefaultPassword = "Gig!Labs2024"

// NewConfig returns a configuration fit for tests, independent of the environment.
func NewConfig() *core.Config {
	return &core.Config{
		AppName:          "GigLabs",
		Env:              "TEST",
		Build:            "test",
		TestMode:         true,
		SecretKey:        "test-secret-key",
		DefaultFromEmail: "GigLabs <noreply@giglabs.test>",
		FrontendBaseURL:  "http://front.test",
		StorageDriver:    core.StorageMemory,
		Server: core.ServerConfig{
			ShutdownTimeout:           time.Second,
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
			PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		},
		Redis: core.RedisConfig{SubmitLockTTL: 10 * time.Second},
	}
}

func NewLogger() core.Logger {
	return logsvc.NewZapLogger(zap.NewNop())
}

// NewValidator returns a validator with every custom validation of the app registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	user.LoadCommonPasswords(NewLogger())
	return validate, translator
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

// EnrollmentForm returns a valid application form for the package.
func EnrollmentForm(packageID, mode string, months int) enrollment.NewEnrollment {
	return enrollment.NewEnrollment{
		PackageID:      packageID,
		Mode:           mode,
		DurationMonths: months,
		Domain:         "backend",
		StudentName:    "Ada Lovelace",
		Location:       "London",
		PhoneNumber:    "+44 20 7946 0958",
		CollegeName:    "University of London",
		YearOfStudy:    "3rd",
		Email:          "ada@test.test",
	}
}

func Enroll(t *testing.T, svc *enrollment.Service, usr user.User, packageID string) enrollment.Enrollment {
	enr, err := svc.Enroll(context.Background(), usr, EnrollmentForm(packageID, "remote", 1))
	if err != nil {
		t.Fatalf("enroll() failed: %v", err)
	}
	return enr
}

// OpenDB opens and migrates the database named by TEST_DATABASE_URL. The test is skipped when it is unset.
func OpenDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("openDB() failed: %v", err)
	}
	if err = database.Migrate(db); err != nil {
		t.Fatalf("openDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ResetDB(t, db)
	return db
}

func ResetDB(t *testing.T, db *sql.DB) {
	q := `TRUNCATE TABLE ambassador_application, assignment, meeting, submission, module_progress, enrollment, "user" CASCADE`
	if _, err := db.Exec(q); err != nil {
		t.Fatalf("resetDB() failed: %v", err)
	}
}
