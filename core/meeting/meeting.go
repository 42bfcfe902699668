package meeting

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("meeting not found")
)

type (
	// Meeting is a scheduled session. ScheduledDate is formatted as core.DateLayout and ScheduledTime as core.ClockLayout.
	Meeting struct {
		ID            string    `json:"id"`
		Title         string    `json:"title"`
		Description   string    `json:"description,omitempty"`
		ScheduledDate string    `json:"scheduled_date"`
		ScheduledTime string    `json:"scheduled_time"`
		JoinLink      string    `json:"join_link"`
		CreatedBy     string    `json:"created_by"`
		CreatedAt     time.Time `json:"created_at"` // UTC
	}

	NewMeeting struct {
		Title         string `json:"title" validate:"required"`
		Description   string `json:"description"`
		ScheduledDate string `json:"scheduled_date" validate:"required,date"`
		ScheduledTime string `json:"scheduled_time" validate:"required,clock"`
		JoinLink      string `json:"join_link" validate:"required,httpurl"`
	}

	// QueryFilter selects meetings dated in [From, To). Zero values leave the bound open.
	QueryFilter struct {
		From string
		To   string
	}

	Repository interface {
		CreateMeeting(ctx context.Context, mtg Meeting) (Meeting, error)
		// QueryMeetings returns the matching meetings ordered by date then time.
		QueryMeetings(ctx context.Context, filter QueryFilter) ([]Meeting, error)
		// DeleteMeeting returns ErrNotFound when no meeting has the id.
		DeleteMeeting(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

// Validate cleans and checks nm, then normalises the date and time so that they sort as strings.
func (nm *NewMeeting) Validate(validate *validator.Validate) error {
	nm.Title = core.CleanString(nm.Title)
	nm.Description = core.CleanString(nm.Description)
	nm.ScheduledDate = core.CleanString(nm.ScheduledDate)
	nm.ScheduledTime = core.CleanString(nm.ScheduledTime)
	nm.JoinLink = core.CleanString(nm.JoinLink)

	if err := validate.Struct(nm); err != nil {
		return err
	}
	d, _ := time.Parse(core.DateLayout, nm.ScheduledDate)
	c, _ := time.Parse(core.ClockLayout, nm.ScheduledTime)
	nm.ScheduledDate = d.Format(core.DateLayout)
	nm.ScheduledTime = c.Format(core.ClockLayout)
	return nil
}

// StartsAt returns the meeting's start in loc.
func (m Meeting) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(core.DateLayout+" "+core.ClockLayout, m.ScheduledDate+" "+m.ScheduledTime, loc)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Schedule adds a meeting. nm must be validated.
func (svc *Service) Schedule(ctx context.Context, creator user.User, nm NewMeeting) (Meeting, error) {
	mtg, err := svc.repo.CreateMeeting(ctx, Meeting{
		Title:         nm.Title,
		Description:   nm.Description,
		ScheduledDate: nm.ScheduledDate,
		ScheduledTime: nm.ScheduledTime,
		JoinLink:      nm.JoinLink,
		CreatedBy:     creator.ID,
		CreatedAt:     NowFunc().UTC(),
	})
	if err != nil {
		return Meeting{}, pkgerrors.Wrap(err, "saving meeting")
	}
	return mtg, nil
}

func (svc *Service) List(ctx context.Context) ([]Meeting, error) {
	return svc.repo.QueryMeetings(ctx, QueryFilter{})
}

// Upcoming returns the meetings dated in [from, to).
func (svc *Service) Upcoming(ctx context.Context, from, to time.Time) ([]Meeting, error) {
	return svc.repo.QueryMeetings(ctx, QueryFilter{
		From: from.Format(core.DateLayout),
		To:   to.Format(core.DateLayout),
	})
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteMeeting(ctx, id)
}
