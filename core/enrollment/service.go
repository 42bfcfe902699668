package enrollment

import (
	"context"
	"errors"
	"net/mail"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/pricing"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrNotEnrolled      = errors.New("learner is not enrolled")
)

type Service struct {
	repo    Repository
	mailSvc core.EmailService
}

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// Enroll replaces the learner's enrollment with a fresh one and mails the offer letter. ne must be validated.
func (svc *Service) Enroll(ctx context.Context, learner user.User, ne NewEnrollment) (Enrollment, error) {
	if learner.ID == "" || !learner.IsActive {
		return Enrollment{}, ErrNotAuthenticated
	}
	pkg, ok := GetPackage(ne.PackageID)
	if !ok {
		return Enrollment{}, core.NewValidationError(nil, core.FieldError{Field: "package_id", Error: "unknown package"})
	}
	mode := pricing.Mode(ne.Mode)
	amount, err := pricing.Price(mode, ne.DurationMonths)
	if err != nil {
		field := "duration_months"
		if err == pricing.ErrInvalidMode {
			field = "mode"
		}
		return Enrollment{}, core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}

	enr, err := svc.repo.ReplaceEnrollment(ctx, Enrollment{
		LearnerID:      learner.ID,
		PackageID:      pkg.ID,
		PackageName:    pkg.Name,
		ModuleCount:    pkg.ModuleCount(),
		Mode:           mode,
		DurationMonths: ne.DurationMonths,
		Amount:         amount,
		Domain:         ne.Domain,
		StudentName:    ne.StudentName,
		Location:       ne.Location,
		PhoneNumber:    ne.PhoneNumber,
		CollegeName:    ne.CollegeName,
		YearOfStudy:    ne.YearOfStudy,
		Email:          ne.Email,
		SecondaryEmail: ne.SecondaryEmail,
		CreatedAt:      NowFunc().UTC(),
	})
	if err != nil {
		return Enrollment{}, pkgerrors.Wrap(err, "saving enrollment")
	}

	svc.sendOfferLetter(enr)
	return enr, nil
}

func (svc *Service) sendOfferLetter(enr Enrollment) {
	domain := enr.Domain
	if d, ok := GetDomain(enr.Domain); ok {
		domain = d.Name
	}
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: enr.StudentName, Address: enr.Email}},
		Subject:      "Your Offer Letter",
		TemplateName: "offer_letter",
		TemplateData: struct {
			StudentName    string
			PackageName    string
			Domain         string
			Mode           pricing.Mode
			DurationMonths int
			ModuleCount    int
			Amount         int
		}{
			StudentName:    enr.StudentName,
			PackageName:    enr.PackageName,
			Domain:         domain,
			Mode:           enr.Mode,
			DurationMonths: enr.DurationMonths,
			ModuleCount:    enr.ModuleCount,
			Amount:         enr.Amount,
		},
	}
	if enr.SecondaryEmail != "" {
		msg.Cc = []mail.Address{{Name: enr.StudentName, Address: enr.SecondaryEmail}}
	}
	svc.mailSvc.SendMessages(msg)
}

func (svc *Service) GetEnrollment(ctx context.Context, learnerID string) (Enrollment, error) {
	return svc.repo.GetEnrollment(ctx, learnerID)
}

// Progress projects the learner's current ledger.
func (svc *Service) Progress(ctx context.Context, learnerID string) (Progress, error) {
	enr, ledger, err := svc.load(ctx, learnerID)
	if err != nil {
		return Progress{}, err
	}
	return Project(enr, ledger), nil
}

// CompleteModule completes module `index` of the learner's enrollment.
// Nothing changes when the transition is invalid or when the write fails.
func (svc *Service) CompleteModule(ctx context.Context, learnerID string, index int) (Progress, error) {
	enr, ledger, err := svc.load(ctx, learnerID)
	if err != nil {
		return Progress{}, err
	}

	next, err := Complete(ledger, enr.ModuleCount, index)
	if err != nil {
		return Progress{}, err
	}
	if err = svc.repo.MarkModuleCompleted(ctx, enr.ID, index, NowFunc().UTC()); err != nil {
		return Progress{}, pkgerrors.Wrap(err, "saving module completion")
	}
	return Project(enr, next), nil
}

func (svc *Service) ListLearners(ctx context.Context, filter LearnerFilter) ([]Learner, error) {
	filter.Search = core.CleanString(filter.Search, true /* lower */)
	filter.PackageID = core.CleanString(filter.PackageID, true /* lower */)
	ordering := make([]core.DBOrdering, 0, len(filter.Ordering))
	for _, ord := range filter.Ordering {
		if LearnerOrderingFields[ord.Field] {
			ordering = append(ordering, ord)
		}
	}
	filter.Ordering = ordering
	return svc.repo.QueryLearners(ctx, filter)
}

func (svc *Service) load(ctx context.Context, learnerID string) (Enrollment, Ledger, error) {
	enr, err := svc.repo.GetEnrollment(ctx, learnerID)
	if err != nil {
		return Enrollment{}, nil, err
	}
	ledger, err := svc.repo.GetLedger(ctx, enr.ID)
	if err != nil {
		return Enrollment{}, nil, pkgerrors.Wrap(err, "reading progress")
	}
	return enr, ledger, nil
}
