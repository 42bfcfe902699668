package enrollment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
	emailsvc "github.com/MDharunPrasad/giglabs-intern-venture/services/email"
	inmemdb "github.com/MDharunPrasad/giglabs-intern-venture/storage/database/inmem"
	testutil "github.com/MDharunPrasad/giglabs-intern-venture/tests"
)

// failingRepository fails every completion write.
type failingRepository struct {
	enrollment.Repository
}

func (failingRepository) MarkModuleCompleted(context.Context, string, int, time.Time) error {
	return core.NewPersistenceError(errors.New("connection refused"), "inserting progress")
}

type fixture struct {
	svc   *enrollment.Service
	repo  enrollment.Repository
	users user.Repository
	ada   user.User
}

func setup(t *testing.T) fixture {
	db := inmemdb.Open()
	conf := testutil.NewConfig()
	users := inmemdb.NewUserRepository(db)
	repo := inmemdb.NewEnrollmentRepository(db)
	emailsvc.ResetSentMessages()
	return fixture{
		svc:   enrollment.NewService(repo, emailsvc.NewConsoleServiceMock(conf, testutil.NewLogger())),
		repo:  repo,
		users: users,
		ada:   testutil.CreateUser(t, users, "Ada Lovelace", "ada@test.test", testutil.DefaultPassword, user.StudentRoles, true),
	}
}

func TestEnroll(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	inactive := testutil.CreateUser(t, f.users, "Bob Marley", "bob@test.test", testutil.DefaultPassword, user.StudentRoles, false)

	tests := []struct {
		name       string
		learner    user.User
		form       enrollment.NewEnrollment
		wantErr    error
		wantAmount int
		wantCount  int
	}{
		{"anonymous", user.User{}, testutil.EnrollmentForm("basic", "remote", 1), enrollment.ErrNotAuthenticated, 0, 0},
		{"inactive", inactive, testutil.EnrollmentForm("basic", "remote", 1), enrollment.ErrNotAuthenticated, 0, 0},
		{"remote 1 month", f.ada, testutil.EnrollmentForm("basic", "remote", 1), nil, 299, 6},
		{"onsite 2 months", f.ada, testutil.EnrollmentForm("elite", "onsite", 2), nil, 2897, 6},
		{"fast track", f.ada, testutil.EnrollmentForm("summer", "hybrid", 4), nil, 8676, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enr, err := f.svc.Enroll(ctx, tc.learner, tc.form)
			if err != tc.wantErr {
				t.Fatalf("Enroll() error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				return
			}
			if enr.Amount != tc.wantAmount || enr.ModuleCount != tc.wantCount || enr.LearnerID != tc.learner.ID {
				t.Errorf("Enroll() = %+v", enr)
			}
		})
	}
}

func TestNewEnrollmentValidate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	tests := []struct {
		name   string
		mutate func(ne *enrollment.NewEnrollment)
	}{
		{"unknown package", func(ne *enrollment.NewEnrollment) { ne.PackageID = "platinum" }},
		{"unknown mode", func(ne *enrollment.NewEnrollment) { ne.Mode = "weekend" }},
		{"too long", func(ne *enrollment.NewEnrollment) { ne.DurationMonths = 5 }},
		{"unknown domain", func(ne *enrollment.NewEnrollment) { ne.Domain = "devops" }},
		{"bad phone", func(ne *enrollment.NewEnrollment) { ne.PhoneNumber = "call me" }},
		{"bad email", func(ne *enrollment.NewEnrollment) { ne.Email = "ada" }},
		{"bad secondary email", func(ne *enrollment.NewEnrollment) { ne.SecondaryEmail = "ada@" }},
		{"missing name", func(ne *enrollment.NewEnrollment) { ne.StudentName = "  " }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := testutil.EnrollmentForm("basic", "remote", 1)
			tc.mutate(&form)
			if err := form.Validate(validate); err == nil {
				t.Fatal("Validate() succeeded, want an error")
			}
		})
	}

	form := testutil.EnrollmentForm(" BASIC ", " Remote", 1)
	if err := form.Validate(validate); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if form.PackageID != "basic" || form.Mode != "remote" {
		t.Errorf("Validate() did not clean the form: %+v", form)
	}
}

func TestEnrollSendsOfferLetter(t *testing.T) {
	f := setup(t)
	form := testutil.EnrollmentForm("advanced", "hybrid", 2)
	form.SecondaryEmail = "ada.backup@test.test"

	if _, err := f.svc.Enroll(context.Background(), f.ada, form); err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	msg, ok := emailsvc.LastSentMessage()
	if !ok {
		t.Fatal("no offer letter sent")
	}
	if msg.TemplateName != "offer_letter" || msg.To[0].Address != "ada@test.test" {
		t.Errorf("offer letter = %+v", msg)
	}
	if len(msg.Cc) != 1 || msg.Cc[0].Address != "ada.backup@test.test" {
		t.Errorf("offer letter Cc = %v, want the secondary email", msg.Cc)
	}
	if msg.TextContent == "" {
		t.Error("offer letter was not rendered")
	}
}

func TestCompleteModuleScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutil.Enroll(t, f.svc, f.ada, "basic")

	if _, err := f.svc.CompleteModule(ctx, f.ada.ID, 3); !errors.Is(err, enrollment.ErrInvalidTransition) {
		t.Fatalf("CompleteModule(3) = %v, want ErrInvalidTransition", err)
	}
	prog, err := f.svc.Progress(ctx, f.ada.ID)
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if prog.CompletedCount != 0 || prog.CurrentIndex != 0 {
		t.Fatalf("rejected completion changed the progress: %+v", prog)
	}

	wantPercentages := []float64{16.67, 33.33, 50, 66.67, 83.33, 100}
	for i, want := range wantPercentages {
		prog, err = f.svc.CompleteModule(ctx, f.ada.ID, i)
		if err != nil {
			t.Fatalf("CompleteModule(%d) failed: %v", i, err)
		}
		if prog.Percentage != want {
			t.Errorf("CompleteModule(%d): percentage = %v, want %v", i, prog.Percentage, want)
		}
		if prog.CertificateEligible != (i == 5) {
			t.Errorf("CompleteModule(%d): certificate eligible = %v", i, prog.CertificateEligible)
		}
	}

	stored, err := f.svc.Progress(ctx, f.ada.ID)
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if stored.CompletedCount != 6 || stored.CurrentIndex != -1 || !stored.CertificateEligible {
		t.Errorf("Progress() = %+v, want every module completed", stored)
	}
}

func TestReEnrollResetsProgress(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	first := testutil.Enroll(t, f.svc, f.ada, "basic")
	for i := 0; i < 3; i++ {
		if _, err := f.svc.CompleteModule(ctx, f.ada.ID, i); err != nil {
			t.Fatalf("CompleteModule(%d) failed: %v", i, err)
		}
	}

	second := testutil.Enroll(t, f.svc, f.ada, "summer")
	if second.ID == first.ID {
		t.Error("re-enrollment kept the enrollment id")
	}
	prog, err := f.svc.Progress(ctx, f.ada.ID)
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if prog.CompletedCount != 0 || prog.CurrentIndex != 0 || prog.ModuleCount != 5 || prog.PackageID != "summer" {
		t.Errorf("Progress() after re-enrollment = %+v", prog)
	}
}

func TestNotEnrolled(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	if _, err := f.svc.Progress(ctx, f.ada.ID); err != enrollment.ErrNotEnrolled {
		t.Errorf("Progress() = %v, want ErrNotEnrolled", err)
	}
	if _, err := f.svc.CompleteModule(ctx, f.ada.ID, 0); err != enrollment.ErrNotEnrolled {
		t.Errorf("CompleteModule() = %v, want ErrNotEnrolled", err)
	}
}

func TestCompleteModulePersistenceFailure(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutil.Enroll(t, f.svc, f.ada, "basic")

	svc := enrollment.NewService(failingRepository{f.repo}, emailsvc.NewConsoleServiceMock(testutil.NewConfig(), testutil.NewLogger()))
	_, err := svc.CompleteModule(ctx, f.ada.ID, 0)
	if !core.IsPersistence(err) {
		t.Fatalf("CompleteModule() = %v, want a persistence error", pkgerrors.Cause(err))
	}
	prog, _ := f.svc.Progress(ctx, f.ada.ID)
	if prog.CompletedCount != 0 {
		t.Errorf("failed write advanced the progress: %+v", prog)
	}
}

func TestListLearners(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	bob := testutil.CreateUser(t, f.users, "Bob Marley", "bob@test.test", testutil.DefaultPassword, user.StudentRoles, true)

	enrollment.NowFunc = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	testutil.Enroll(t, f.svc, f.ada, "basic")
	enrollment.NowFunc = func() time.Time { return time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC) }
	testutil.Enroll(t, f.svc, bob, "elite")
	enrollment.NowFunc = time.Now
	if _, err := f.svc.CompleteModule(ctx, f.ada.ID, 0); err != nil {
		t.Fatalf("CompleteModule() failed: %v", err)
	}

	tests := []struct {
		name   string
		filter enrollment.LearnerFilter
		want   []string
	}{
		{"latest enrollment first", enrollment.LearnerFilter{}, []string{bob.ID, f.ada.ID}},
		{"search", enrollment.LearnerFilter{Search: " ADA "}, []string{f.ada.ID}},
		{"package", enrollment.LearnerFilter{PackageID: "elite"}, []string{bob.ID}},
		{"most completed", enrollment.LearnerFilter{Ordering: []core.DBOrdering{{Field: "completed_count"}}}, []string{f.ada.ID, bob.ID}},
		{"unknown ordering ignored", enrollment.LearnerFilter{Ordering: []core.DBOrdering{{Field: "password_hash"}}}, []string{bob.ID, f.ada.ID}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			learners, err := f.svc.ListLearners(ctx, tc.filter)
			if err != nil {
				t.Fatalf("ListLearners() failed: %v", err)
			}
			if len(learners) != len(tc.want) {
				t.Fatalf("ListLearners() returned %d learners, want %d", len(learners), len(tc.want))
			}
			for i, l := range learners {
				if l.ID != tc.want[i] {
					t.Errorf("learners[%d] = %s, want %s", i, l.Name, tc.want[i])
				}
			}
		})
	}
}
