package assignment_test

import (
	"context"
	"testing"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/assignment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
	inmemdb "github.com/MDharunPrasad/giglabs-intern-venture/storage/database/inmem"
	testutil "github.com/MDharunPrasad/giglabs-intern-venture/tests"
)

func intPtr(i int) *int { return &i }

func TestNewAssignmentValidate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	tests := []struct {
		name    string
		na      assignment.NewAssignment
		wantErr bool
	}{
		{"valid", assignment.NewAssignment{Title: "Landing page", ModuleIndex: intPtr(1), Description: "Build it"}, false},
		{"module zero", assignment.NewAssignment{Title: "Welcome", ModuleIndex: intPtr(0), Description: "Read it"}, false},
		{"with links", assignment.NewAssignment{
			Title: "API", ModuleIndex: intPtr(3), Description: "Build it",
			VideoLink: "https://video.test/api", SampleScreenshot: "https://img.test/api.png", DueDate: "2024-06-01",
		}, false},
		{"missing module", assignment.NewAssignment{Title: "Landing page", Description: "Build it"}, true},
		{"negative module", assignment.NewAssignment{Title: "Landing page", ModuleIndex: intPtr(-1), Description: "Build it"}, true},
		{"module past every curriculum", assignment.NewAssignment{Title: "Landing page", ModuleIndex: intPtr(6), Description: "Build it"}, true},
		{"missing description", assignment.NewAssignment{Title: "Landing page", ModuleIndex: intPtr(1)}, true},
		{"bad video link", assignment.NewAssignment{Title: "x", ModuleIndex: intPtr(1), Description: "y", VideoLink: "video"}, true},
		{"bad due date", assignment.NewAssignment{Title: "x", ModuleIndex: intPtr(1), Description: "y", DueDate: "tomorrow"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.na.Validate(validate)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestService(t *testing.T) {
	db := inmemdb.Open()
	staff := testutil.CreateUser(t, inmemdb.NewUserRepository(db), "Grace Hopper", "grace@test.test", testutil.DefaultPassword, user.StaffRoles, true)
	svc := assignment.NewService(inmemdb.NewAssignmentRepository(db))
	ctx := context.Background()

	api, err := svc.Create(ctx, staff, assignment.NewAssignment{Title: "API", ModuleIndex: intPtr(3), Description: "Build it"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err = svc.Create(ctx, staff, assignment.NewAssignment{Title: "Landing page", ModuleIndex: intPtr(1), Description: "Build it"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	asgs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(asgs) != 2 || asgs[0].Title != "Landing page" || asgs[1].ID != api.ID || asgs[1].CreatedBy != staff.ID {
		t.Errorf("List() = %+v, want them ordered by module", asgs)
	}

	if err = svc.Delete(ctx, api.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err = svc.Delete(ctx, api.ID); err != assignment.ErrNotFound {
		t.Errorf("Delete() twice = %v, want ErrNotFound", err)
	}
}
