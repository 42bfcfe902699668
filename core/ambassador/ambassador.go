// Package ambassador takes in campus ambassador applications and lets staff review them.
package ambassador

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrAlreadyApplied = errors.New("an application with this email already exists")
)

type (
	Application struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Email       string    `json:"email"`
		Phone       string    `json:"phone"`
		College     string    `json:"college"`
		YearOfStudy string    `json:"year_of_study"`
		Experience  string    `json:"experience,omitempty"`
		SocialMedia string    `json:"social_media,omitempty"`
		Motivation  string    `json:"motivation"`
		CreatedAt   time.Time `json:"created_at"` // UTC
	}

	NewApplication struct {
		Name        string `json:"name" validate:"required"`
		Email       string `json:"email" validate:"required,email"`
		Phone       string `json:"phone" validate:"required,phone"`
		College     string `json:"college" validate:"required"`
		YearOfStudy string `json:"year_of_study" validate:"required"`
		Experience  string `json:"experience" validate:"max=2000"`
		SocialMedia string `json:"social_media" validate:"omitempty,httpurl"`
		Motivation  string `json:"motivation" validate:"required,max=2000"`
	}

	Repository interface {
		// CreateApplication returns ErrAlreadyApplied when an application has the same email.
		CreateApplication(ctx context.Context, app Application) (Application, error)
		// QueryApplications returns every application, newest first.
		QueryApplications(ctx context.Context) ([]Application, error)
	}

	Service struct {
		repo       Repository
		mailSvc    core.EmailService
		staffInbox mail.Address
	}
)

func (na *NewApplication) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.Phone = core.CleanString(na.Phone)
	na.College = core.CleanString(na.College)
	na.YearOfStudy = core.CleanString(na.YearOfStudy)
	na.Experience = core.CleanString(na.Experience)
	na.SocialMedia = core.CleanString(na.SocialMedia)
	na.Motivation = core.CleanString(na.Motivation)

	return validate.Struct(na)
}

// NewService returns the application service. New applications are announced to staffInbox.
func NewService(repo Repository, mailSvc core.EmailService, staffInbox mail.Address) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, staffInbox: staffInbox}
}

// Apply saves the application and notifies the staff inbox. na must be validated.
func (svc *Service) Apply(ctx context.Context, na NewApplication) (Application, error) {
	app, err := svc.repo.CreateApplication(ctx, Application{
		Name:        na.Name,
		Email:       na.Email,
		Phone:       na.Phone,
		College:     na.College,
		YearOfStudy: na.YearOfStudy,
		Experience:  na.Experience,
		SocialMedia: na.SocialMedia,
		Motivation:  na.Motivation,
		CreatedAt:   NowFunc().UTC(),
	})
	if err != nil {
		if err == ErrAlreadyApplied {
			return Application{}, err
		}
		return Application{}, pkgerrors.Wrap(err, "saving ambassador application")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{svc.staffInbox},
		Subject:      "New campus ambassador application: " + app.Name,
		TemplateName: "ambassador_application",
		TemplateData: app,
	})
	return app, nil
}

func (svc *Service) List(ctx context.Context) ([]Application, error) {
	return svc.repo.QueryApplications(ctx)
}
