package ambassador_test

import (
	"context"
	"net/mail"
	"testing"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/ambassador"
	emailsvc "github.com/MDharunPrasad/giglabs-intern-venture/services/email"
	inmemdb "github.com/MDharunPrasad/giglabs-intern-venture/storage/database/inmem"
	testutil "github.com/MDharunPrasad/giglabs-intern-venture/tests"
)

func newApplication(email string) ambassador.NewApplication {
	return ambassador.NewApplication{
		Name:        "Ada Lovelace",
		Email:       email,
		Phone:       "+44 20 7946 0958",
		College:     "University of London",
		YearOfStudy: "3rd",
		Motivation:  "I run the coding club",
	}
}

func TestNewApplicationValidate(t *testing.T) {
	validate, _ := testutil.NewValidator()
	with := func(fn func(na *ambassador.NewApplication)) ambassador.NewApplication {
		na := newApplication("ada@test.test")
		fn(&na)
		return na
	}

	tests := []struct {
		name    string
		na      ambassador.NewApplication
		wantErr bool
	}{
		{"valid", newApplication("ada@test.test"), false},
		{"with social media", with(func(na *ambassador.NewApplication) { na.SocialMedia = "https://social.test/ada" }), false},
		{"with experience", with(func(na *ambassador.NewApplication) { na.Experience = "Organised two hackathons" }), false},
		{"missing name", with(func(na *ambassador.NewApplication) { na.Name = "  " }), true},
		{"bad email", with(func(na *ambassador.NewApplication) { na.Email = "ada" }), true},
		{"bad phone", with(func(na *ambassador.NewApplication) { na.Phone = "call me" }), true},
		{"missing college", with(func(na *ambassador.NewApplication) { na.College = "" }), true},
		{"missing year", with(func(na *ambassador.NewApplication) { na.YearOfStudy = "" }), true},
		{"social media handle", with(func(na *ambassador.NewApplication) { na.SocialMedia = "@ada" }), true},
		{"missing motivation", with(func(na *ambassador.NewApplication) { na.Motivation = "" }), true},
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

func TestNewApplicationValidateCleans(t *testing.T) {
	validate, _ := testutil.NewValidator()
	na := newApplication(" ADA@Test.test ")
	na.Name = "  Ada Lovelace "
	if err := na.Validate(validate); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if na.Email != "ada@test.test" || na.Name != "Ada Lovelace" {
		t.Errorf("Validate() left %q, %q", na.Name, na.Email)
	}
}

func TestApply(t *testing.T) {
	conf := testutil.NewConfig()
	inbox := mail.Address{Name: "GigLabs Staff", Address: "staff@giglabs.test"}
	svc := ambassador.NewService(
		inmemdb.NewAmbassadorRepository(inmemdb.Open()),
		emailsvc.NewConsoleServiceMock(conf, testutil.NewLogger()),
		inbox,
	)
	ctx := context.Background()
	emailsvc.ResetSentMessages()

	ada, err := svc.Apply(ctx, newApplication("ada@test.test"))
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if ada.ID == "" || ada.CreatedAt.IsZero() {
		t.Errorf("Apply() = %+v", ada)
	}
	if _, err = svc.Apply(ctx, newApplication("ada@test.test")); err != ambassador.ErrAlreadyApplied {
		t.Fatalf("Apply() twice = %v, want ErrAlreadyApplied", err)
	}
	bob, err := svc.Apply(ctx, newApplication("bob@test.test"))
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	if len(emailsvc.SentMessages) != 2 {
		t.Fatalf("got %d notifications, want 2", len(emailsvc.SentMessages))
	}
	msg, _ := emailsvc.LastSentMessage()
	if len(msg.To) != 1 || msg.To[0] != inbox || msg.TemplateName != "ambassador_application" || msg.HTMLContent == "" {
		t.Errorf("notification = %+v", msg)
	}

	apps, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(apps) != 2 || apps[0].ID != bob.ID || apps[1].ID != ada.ID {
		t.Errorf("List() = %+v, want newest first", apps)
	}
}
