package meeting_test

import (
	"context"
	"testing"
	"time"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
	inmemdb "github.com/MDharunPrasad/giglabs-intern-venture/storage/database/inmem"
	testutil "github.com/MDharunPrasad/giglabs-intern-venture/tests"
)

func setup(t *testing.T) (*meeting.Service, user.User) {
	db := inmemdb.Open()
	staff := testutil.CreateUser(t, inmemdb.NewUserRepository(db), "Grace Hopper", "grace@test.test", testutil.DefaultPassword, user.StaffRoles, true)
	return meeting.NewService(inmemdb.NewMeetingRepository(db)), staff
}

func TestNewMeetingValidate(t *testing.T) {
	validate, _ := testutil.NewValidator()
	valid := func() meeting.NewMeeting {
		return meeting.NewMeeting{
			Title:         "  Weekly sync ",
			ScheduledDate: "2024-05-01",
			ScheduledTime: "09:30",
			JoinLink:      "https://meet.test/sync",
		}
	}

	nm := valid()
	if err := nm.Validate(validate); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if nm.Title != "Weekly sync" {
		t.Errorf("Title = %q, want it trimmed", nm.Title)
	}

	tests := []struct {
		name   string
		mutate func(nm *meeting.NewMeeting)
	}{
		{"missing title", func(nm *meeting.NewMeeting) { nm.Title = "" }},
		{"bad date", func(nm *meeting.NewMeeting) { nm.ScheduledDate = "01/05/2024" }},
		{"impossible date", func(nm *meeting.NewMeeting) { nm.ScheduledDate = "2024-02-30" }},
		{"bad time", func(nm *meeting.NewMeeting) { nm.ScheduledTime = "9.30am" }},
		{"bad link", func(nm *meeting.NewMeeting) { nm.JoinLink = "meet.test/sync" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nm := valid()
			tc.mutate(&nm)
			if err := nm.Validate(validate); err == nil {
				t.Error("Validate() succeeded, want an error")
			}
		})
	}
}

func TestScheduleAndList(t *testing.T) {
	svc, staff := setup(t)
	ctx := context.Background()

	schedule := []struct{ title, date, clock string }{
		{"Demo day", "2024-05-03", "15:00"},
		{"Kick-off", "2024-05-01", "10:00"},
		{"Standup", "2024-05-01", "09:00"},
	}
	for _, s := range schedule {
		_, err := svc.Schedule(ctx, staff, meeting.NewMeeting{
			Title: s.title, ScheduledDate: s.date, ScheduledTime: s.clock, JoinLink: "https://meet.test/" + s.date,
		})
		if err != nil {
			t.Fatalf("Schedule() failed: %v", err)
		}
	}

	mtgs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	want := []string{"Standup", "Kick-off", "Demo day"}
	if len(mtgs) != len(want) {
		t.Fatalf("List() returned %d meetings, want %d", len(mtgs), len(want))
	}
	for i, mtg := range mtgs {
		if mtg.Title != want[i] {
			t.Errorf("meetings[%d] = %s, want %s", i, mtg.Title, want[i])
		}
		if mtg.CreatedBy != staff.ID {
			t.Errorf("meetings[%d].CreatedBy = %s, want %s", i, mtg.CreatedBy, staff.ID)
		}
	}

	from := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	upcoming, err := svc.Upcoming(ctx, from, from.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("Upcoming() failed: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Title != "Demo day" {
		t.Errorf("Upcoming() = %+v, want the demo day only", upcoming)
	}
}

func TestDelete(t *testing.T) {
	svc, staff := setup(t)
	ctx := context.Background()
	mtg, err := svc.Schedule(ctx, staff, meeting.NewMeeting{
		Title: "Standup", ScheduledDate: "2024-05-01", ScheduledTime: "09:00", JoinLink: "https://meet.test/standup",
	})
	if err != nil {
		t.Fatalf("Schedule() failed: %v", err)
	}

	if err = svc.Delete(ctx, mtg.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err = svc.Delete(ctx, mtg.ID); err != meeting.ErrNotFound {
		t.Errorf("Delete() twice = %v, want ErrNotFound", err)
	}
	if mtgs, _ := svc.List(ctx); len(mtgs) != 0 {
		t.Errorf("List() = %+v, want none", mtgs)
	}
}

func TestStartsAt(t *testing.T) {
	mtg := meeting.Meeting{ScheduledDate: "2024-05-01", ScheduledTime: "09:30"}
	got, err := mtg.StartsAt(time.UTC)
	if err != nil {
		t.Fatalf("StartsAt() failed: %v", err)
	}
	if want := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("StartsAt() = %v, want %v", got, want)
	}
}
