package user_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
	emailsvc "github.com/MDharunPrasad/giglabs-intern-venture/services/email"
	inmemdb "github.com/MDharunPrasad/giglabs-intern-venture/storage/database/inmem"
	testutil "github.com/MDharunPrasad/giglabs-intern-venture/tests"
)

var resetPathRegex = regexp.MustCompile(`/password-reset/([^/\s]+)/(\S+)`)

func setup() (*user.Service, user.Repository) {
	db := inmemdb.Open()
	repo := inmemdb.NewUserRepository(db)
	conf := testutil.NewConfig()
	emailsvc.ResetSentMessages()
	return user.NewService(repo, emailsvc.NewConsoleServiceMock(conf, testutil.NewLogger()), conf), repo
}

func TestSignUp(t *testing.T) {
	svc, repo := setup()
	ctx := context.Background()
	validate, _ := testutil.NewValidator()
	testutil.CreateUser(t, repo, "Grace Hopper", "grace@test.test", testutil.DefaultPassword, user.StaffRoles, true)

	tests := []struct {
		name      string
		nu        user.NewUser
		wantErr   bool
		wantStaff bool
	}{
		{"student", user.NewUser{Name: "Ada", Email: " ADA@test.test", Password: testutil.DefaultPassword, PasswordConfirm: testutil.DefaultPassword, Role: "student"}, false, false},
		{"staff", user.NewUser{Name: "Alan", Email: "alan@test.test", Password: testutil.DefaultPassword, PasswordConfirm: testutil.DefaultPassword, Role: "Staff"}, false, true},
		{"email taken", user.NewUser{Name: "Grace", Email: "grace@test.test", Password: testutil.DefaultPassword, PasswordConfirm: testutil.DefaultPassword, Role: "student"}, true, false},
		{"unknown role", user.NewUser{Name: "Eve", Email: "eve@test.test", Password: testutil.DefaultPassword, PasswordConfirm: testutil.DefaultPassword, Role: "admin"}, true, false},
		{"passwords differ", user.NewUser{Name: "Eve", Email: "eve@test.test", Password: testutil.DefaultPassword, PasswordConfirm: "other", Role: "student"}, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nu := tc.nu
			err := nu.Validate(ctx, validate, svc)
			if tc.wantErr {
				if err == nil {
					t.Fatal("Validate() succeeded, want an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() failed: %v", err)
			}

			usr, err := svc.SignUp(ctx, nu)
			if err != nil {
				t.Fatalf("SignUp() failed: %v", err)
			}
			if usr.ID == "" || !usr.IsActive || usr.IsStaff() != tc.wantStaff || usr.IsStudent() == tc.wantStaff {
				t.Errorf("SignUp() = %+v", usr)
			}
			if err = usr.CheckPassword(testutil.DefaultPassword); err != nil {
				t.Errorf("CheckPassword() failed: %v", err)
			}
			if got, err := svc.GetByEmail(ctx, nu.Email); err != nil || got.ID != usr.ID {
				t.Errorf("GetByEmail() = %+v, %v", got, err)
			}
		})
	}
}

func TestEmailUniquenessError(t *testing.T) {
	svc, repo := setup()
	validate, _ := testutil.NewValidator()
	testutil.CreateUser(t, repo, "Grace Hopper", "grace@test.test", testutil.DefaultPassword, user.StaffRoles, true)

	nu := user.NewUser{Name: "Grace", Email: "Grace@Test.test", Password: testutil.DefaultPassword, PasswordConfirm: testutil.DefaultPassword, Role: "student"}
	err := nu.Validate(context.Background(), validate, svc)
	valErr, ok := err.(*core.ValidationError)
	if !ok || len(valErr.Fields) != 1 || valErr.Fields[0].Field != "email" {
		t.Errorf("Validate() = %#v, want a validation error on email", err)
	}
}

func TestPasswordReset(t *testing.T) {
	svc, repo := setup()
	ctx := context.Background()
	ada := testutil.CreateUser(t, repo, "Ada Lovelace", "ada@test.test", testutil.DefaultPassword, user.StudentRoles, true)
	testutil.CreateUser(t, repo, "Bob Marley", "bob@test.test", testutil.DefaultPassword, user.StudentRoles, false)

	if err := svc.RequestPasswordReset(ctx, "nobody@test.test"); err != user.ErrNotFound {
		t.Errorf("RequestPasswordReset(unknown) = %v, want ErrNotFound", err)
	}
	if err := svc.RequestPasswordReset(ctx, "bob@test.test"); err != user.ErrNotFound {
		t.Errorf("RequestPasswordReset(inactive) = %v, want ErrNotFound", err)
	}
	if err := svc.RequestPasswordReset(ctx, "ADA@test.test"); err != nil {
		t.Fatalf("RequestPasswordReset() failed: %v", err)
	}

	msg, ok := emailsvc.LastSentMessage()
	if !ok || msg.TemplateName != "password_reset" || msg.To[0].Address != ada.Email {
		t.Fatalf("password reset email = %+v", msg)
	}
	match := resetPathRegex.FindStringSubmatch(msg.TextContent)
	if match == nil {
		t.Fatalf("no reset link in %q", msg.TextContent)
	}
	uid, token := match[1], match[2]

	newPwd := "N3w!Secret#Key"
	tests := []struct {
		name    string
		data    user.ResetUserPassword
		wantErr bool
	}{
		{"bad uid", user.ResetUserPassword{UID: "???", Token: token, Password: newPwd, PasswordConfirm: newPwd}, true},
		{"bad token", user.ResetUserPassword{UID: uid, Token: "1-abc", Password: newPwd, PasswordConfirm: newPwd}, true},
		{"valid", user.ResetUserPassword{UID: uid, Token: token, Password: newPwd, PasswordConfirm: newPwd}, false},
		{"token reused", user.ResetUserPassword{UID: uid, Token: token, Password: newPwd, PasswordConfirm: newPwd}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ResetPassword(ctx, tc.data)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ResetPassword() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}

	usr, err := svc.GetByID(ctx, ada.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if err = usr.CheckPassword(newPwd); err != nil {
		t.Errorf("password was not reset: %v", err)
	}
}

func TestSetLastLogin(t *testing.T) {
	svc, repo := setup()
	ada := testutil.CreateUser(t, repo, "Ada Lovelace", "ada@test.test", testutil.DefaultPassword, user.StudentRoles, true)

	usr, err := svc.SetLastLogin(context.Background(), ada)
	if err != nil {
		t.Fatalf("SetLastLogin() failed: %v", err)
	}
	if usr.LastLogin.IsZero() {
		t.Error("LastLogin not set")
	}
}
