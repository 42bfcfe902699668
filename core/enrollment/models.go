package enrollment

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/pricing"
)

type Enrollment struct {
	ID             string       `json:"id"`
	LearnerID      string       `json:"learner_id"`
	PackageID      string       `json:"package_id"`
	PackageName    string       `json:"package_name"`
	ModuleCount    int          `json:"module_count"`
	Mode           pricing.Mode `json:"mode"`
	DurationMonths int          `json:"duration_months"`
	Amount         int          `json:"amount"`
	Domain         string       `json:"domain"`
	StudentName    string       `json:"student_name"`
	Location       string       `json:"location"`
	PhoneNumber    string       `json:"phone_number"`
	CollegeName    string       `json:"college_name"`
	YearOfStudy    string       `json:"year_of_study"`
	Email          string       `json:"email"`
	SecondaryEmail string       `json:"secondary_email,omitempty"`
	CreatedAt      time.Time    `json:"created_at"` // UTC
}

// NewEnrollment is the application form.
type NewEnrollment struct {
	PackageID      string `json:"package_id" validate:"required"`
	Mode           string `json:"mode" validate:"required,oneof=remote onsite hybrid"`
	DurationMonths int    `json:"duration_months" validate:"required,min=1,max=4"`
	Domain         string `json:"domain" validate:"required,oneof=frontend backend fullstack uiux aiml"`
	StudentName    string `json:"student_name" validate:"required"`
	Location       string `json:"location" validate:"required"`
	PhoneNumber    string `json:"phone_number" validate:"required,phone"`
	CollegeName    string `json:"college_name" validate:"required"`
	YearOfStudy    string `json:"year_of_study" validate:"required,oneof=1st 2nd 3rd 4th graduate"`
	Email          string `json:"email" validate:"required,email"`
	SecondaryEmail string `json:"secondary_email" validate:"omitempty,email"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	ne.PackageID = core.CleanString(ne.PackageID, true /* lower */)
	ne.Mode = core.CleanString(ne.Mode, true /* lower */)
	ne.Domain = core.CleanString(ne.Domain, true /* lower */)
	ne.StudentName = core.CleanString(ne.StudentName)
	ne.Location = core.CleanString(ne.Location)
	ne.PhoneNumber = core.CleanString(ne.PhoneNumber)
	ne.CollegeName = core.CleanString(ne.CollegeName)
	ne.YearOfStudy = core.CleanString(ne.YearOfStudy, true /* lower */)
	ne.Email = core.CleanString(ne.Email, true /* lower */)
	ne.SecondaryEmail = core.CleanString(ne.SecondaryEmail, true /* lower */)

	if err := validate.Struct(ne); err != nil {
		return err
	}
	if _, ok := GetPackage(ne.PackageID); !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "package_id", Error: "unknown package"})
	}
	return nil
}

// Learner is a row of the staff learner directory: an enrollment joined with its learner's account.
type Learner struct {
	ID             string       `json:"id" db:"learner_id"`
	Name           string       `json:"name" db:"name"`
	Email          string       `json:"email" db:"email"`
	EnrollmentID   string       `json:"enrollment_id" db:"enrollment_id"`
	PackageID      string       `json:"package_id" db:"package_id"`
	PackageName    string       `json:"package_name" db:"package_name"`
	Mode           pricing.Mode `json:"mode" db:"mode"`
	Domain         string       `json:"domain" db:"domain"`
	CompletedCount int          `json:"completed_count" db:"completed_count"`
	ModuleCount    int          `json:"module_count" db:"module_count"`
	EnrolledAt     time.Time    `json:"enrolled_at" db:"enrolled_at"`
}

type LearnerFilter struct {
	Search    string // name or email, case-insensitive
	PackageID string
	Ordering  []core.DBOrdering // name, email, enrolled_at, completed_count
}

type Repository interface {
	// ReplaceEnrollment stores enr as the only enrollment of enr.LearnerID.
	// A previous enrollment of the learner is dropped together with its progress.
	ReplaceEnrollment(ctx context.Context, enr Enrollment) (Enrollment, error)
	// GetEnrollment returns ErrNotEnrolled when the learner has no enrollment.
	GetEnrollment(ctx context.Context, learnerID string) (Enrollment, error)
	GetLedger(ctx context.Context, enrollmentID string) (Ledger, error)
	// MarkModuleCompleted records the completion of module index.
	// It re-applies Complete to the stored ledger under the same lock or transaction as the write,
	// so a concurrent completion of the same module yields an *InvalidTransitionError.
	MarkModuleCompleted(ctx context.Context, enrollmentID string, index int, at time.Time) error
	QueryLearners(ctx context.Context, filter LearnerFilter) ([]Learner, error)
}

// LearnerOrderingFields are the learner directory fields accepted for ordering.
var LearnerOrderingFields = map[string]bool{"name": true, "email": true, "enrolled_at": true, "completed_count": true}
