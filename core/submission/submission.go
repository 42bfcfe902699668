package submission

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrModuleLocked        = errors.New("module is locked")
	ErrDuplicateSubmission = errors.New("this submission is already being processed")

	errLinkRequired  = "this module requires this link"
	errInvalidLink   = "must be a valid http(s) URL"
	errEmptyPayload  = "provide a repository link, a hosting link or some text"
	guardKeyPrefix   = "submission:"
	defaultGuardTTL  = 10 * time.Second
	guardValueMarker = "1"
)

type (
	Submission struct {
		ID             string    `json:"id"`
		LearnerID      string    `json:"learner_id"`
		EnrollmentID   string    `json:"enrollment_id"`
		ModuleIndex    int       `json:"module_index"`
		RepositoryLink string    `json:"repository_link,omitempty"`
		HostingLink    string    `json:"hosting_link,omitempty"`
		FreeText       string    `json:"free_text,omitempty"`
		SubmittedAt    time.Time `json:"submitted_at"` // UTC
	}

	NewSubmission struct {
		RepositoryLink string `json:"repository_link" validate:"omitempty,httpurl"`
		HostingLink    string `json:"hosting_link" validate:"omitempty,httpurl"`
		FreeText       string `json:"free_text"`
	}

	QueryFilter struct {
		LearnerID   string
		ModuleIndex *int
	}

	Repository interface {
		CreateSubmission(ctx context.Context, sub Submission) (Submission, error)
		// QuerySubmissions returns the matching submissions, latest first.
		QuerySubmissions(ctx context.Context, filter QueryFilter) ([]Submission, error)
	}

	Service struct {
		repo        Repository
		enrollments enrollment.Repository
		kv          core.KeyValueStore
		lockTTL     time.Duration
	}
)

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.RepositoryLink = core.CleanString(ns.RepositoryLink)
	ns.HostingLink = core.CleanString(ns.HostingLink)
	ns.FreeText = core.CleanString(ns.FreeText)
	return validate.Struct(ns)
}

func (ns NewSubmission) isEmpty() bool {
	return ns.RepositoryLink == "" && ns.HostingLink == "" && ns.FreeText == ""
}

// NewService returns a submission recorder. lockTTL bounds how long an identical submission is refused.
func NewService(repo Repository, enrollments enrollment.Repository, kv core.KeyValueStore, lockTTL time.Duration) *Service {
	if lockTTL <= 0 {
		lockTTL = defaultGuardTTL
	}
	return &Service{repo: repo, enrollments: enrollments, kv: kv, lockTTL: lockTTL}
}

// Record appends a submission for module `index` of the learner's enrollment.
// idemKey identifies the client request; when empty, the payload itself is used.
func (svc *Service) Record(ctx context.Context, learnerID string, index int, idemKey string, ns NewSubmission) (Submission, error) {
	enr, err := svc.enrollments.GetEnrollment(ctx, learnerID)
	if err != nil {
		return Submission{}, err
	}
	ledger, err := svc.enrollments.GetLedger(ctx, enr.ID)
	if err != nil {
		return Submission{}, pkgerrors.Wrap(err, "reading progress")
	}

	pkg, _ := enrollment.GetPackage(enr.PackageID)
	mod, ok := pkg.Module(index)
	if !ok || index >= enr.ModuleCount || enrollment.Statuses(ledger, enr.ModuleCount)[index] == enrollment.StatusLocked {
		return Submission{}, ErrModuleLocked
	}
	if err = checkPayload(mod, ns); err != nil {
		return Submission{}, err
	}

	key := guardKeyPrefix + learnerID + ":" + idemKey
	if idemKey == "" {
		key = guardKeyPrefix + learnerID + ":" + payloadHash(index, ns)
	}
	acquired, err := svc.kv.SetNX(ctx, key, guardValueMarker, svc.lockTTL)
	if err != nil {
		return Submission{}, pkgerrors.Wrap(err, "acquiring submission guard")
	}
	if !acquired {
		return Submission{}, ErrDuplicateSubmission
	}

	sub, err := svc.repo.CreateSubmission(ctx, Submission{
		LearnerID:      learnerID,
		EnrollmentID:   enr.ID,
		ModuleIndex:    index,
		RepositoryLink: ns.RepositoryLink,
		HostingLink:    ns.HostingLink,
		FreeText:       ns.FreeText,
		SubmittedAt:    NowFunc().UTC(),
	})
	if err != nil {
		// let the client retry
		if relErr := svc.kv.Delete(ctx, key); relErr != nil {
			return Submission{}, pkgerrors.Wrapf(err, "saving submission (guard %s not released: %v)", key, relErr)
		}
		return Submission{}, pkgerrors.Wrap(err, "saving submission")
	}
	return sub, nil
}

func (svc *Service) ListByLearner(ctx context.Context, learnerID string) ([]Submission, error) {
	return svc.repo.QuerySubmissions(ctx, QueryFilter{LearnerID: learnerID})
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Submission, error) {
	return svc.repo.QuerySubmissions(ctx, filter)
}

func checkPayload(mod enrollment.Module, ns NewSubmission) error {
	var fldErrs []core.FieldError
	checkLink := func(field, link string, required bool) {
		switch {
		case link == "" && required:
			fldErrs = append(fldErrs, core.FieldError{Field: field, Error: errLinkRequired})
		case link != "" && !core.IsHTTPURL(link):
			fldErrs = append(fldErrs, core.FieldError{Field: field, Error: errInvalidLink})
		}
	}
	checkLink("repository_link", ns.RepositoryLink, mod.RequiresRepositoryLink)
	checkLink("hosting_link", ns.HostingLink, mod.RequiresHostingLink)
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	if ns.isEmpty() {
		return core.NewValidationError(nil, core.FieldError{Field: "free_text", Error: errEmptyPayload})
	}
	return nil
}

func payloadHash(index int, ns NewSubmission) string {
	h := sha256.New()
	for _, part := range []string{strconv.Itoa(index), ns.RepositoryLink, ns.HostingLink, ns.FreeText} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
