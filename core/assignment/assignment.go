package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("assignment not found")
)

type (
	Assignment struct {
		ID               string    `json:"id"`
		Title            string    `json:"title"`
		ModuleIndex      int       `json:"module_index"`
		Description      string    `json:"description"`
		VideoLink        string    `json:"video_link,omitempty"`
		SampleScreenshot string    `json:"sample_screenshot,omitempty"`
		DueDate          string    `json:"due_date,omitempty"` // core.DateLayout
		CreatedBy        string    `json:"created_by"`
		CreatedAt        time.Time `json:"created_at"` // UTC
	}

	NewAssignment struct {
		Title            string `json:"title" validate:"required"`
		ModuleIndex      *int   `json:"module_index" validate:"required,min=0"`
		Description      string `json:"description" validate:"required"`
		VideoLink        string `json:"video_link" validate:"omitempty,httpurl"`
		SampleScreenshot string `json:"sample_screenshot" validate:"omitempty,httpurl"`
		DueDate          string `json:"due_date" validate:"omitempty,date"`
	}

	Repository interface {
		CreateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
		// QueryAssignments returns every assignment ordered by module index then creation.
		QueryAssignments(ctx context.Context) ([]Assignment, error)
		// DeleteAssignment returns ErrNotFound when no assignment has the id.
		DeleteAssignment(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.VideoLink = core.CleanString(na.VideoLink)
	na.SampleScreenshot = core.CleanString(na.SampleScreenshot)
	na.DueDate = core.CleanString(na.DueDate)

	if err := validate.Struct(na); err != nil {
		return err
	}
	if *na.ModuleIndex >= enrollment.MaxModuleCount() {
		return core.NewValidationError(nil, core.FieldError{Field: "module_index", Error: "no curriculum has this module"})
	}
	return nil
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds an assignment. na must be validated.
func (svc *Service) Create(ctx context.Context, creator user.User, na NewAssignment) (Assignment, error) {
	asg, err := svc.repo.CreateAssignment(ctx, Assignment{
		Title:            na.Title,
		ModuleIndex:      *na.ModuleIndex,
		Description:      na.Description,
		VideoLink:        na.VideoLink,
		SampleScreenshot: na.SampleScreenshot,
		DueDate:          na.DueDate,
		CreatedBy:        creator.ID,
		CreatedAt:        NowFunc().UTC(),
	})
	if err != nil {
		return Assignment{}, pkgerrors.Wrap(err, "saving assignment")
	}
	return asg, nil
}

func (svc *Service) List(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAssignments(ctx)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteAssignment(ctx, id)
}
