// Package remindersvc mails the enrolled learners a reminder of the next day's meetings.
package remindersvc

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
)

const runTimeout = 2 * time.Minute

var NowFunc = time.Now // mockable

type MeetingReminder struct {
	meetings    *meeting.Service
	enrollments *enrollment.Service
	mailSvc     core.EmailService
	logger      core.Logger
	cron        *cron.Cron
}

func NewMeetingReminder(
	meetings *meeting.Service,
	enrollments *enrollment.Service,
	mailSvc core.EmailService,
	logger core.Logger,
) *MeetingReminder {
	return &MeetingReminder{
		meetings:    meetings,
		enrollments: enrollments,
		mailSvc:     mailSvc,
		logger:      logger,
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start schedules RemindUpcoming on the cron `schedule` (eg: "0 9 * * *") and starts the scheduler.
func (r *MeetingReminder) Start(schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		n, err := r.RemindUpcoming(ctx, NowFunc())
		if err != nil {
			r.logger.Error("sending meeting reminders", err)
			return
		}
		r.logger.Info("meeting reminders sent", map[string]interface{}{"meetings": n})
	})
	if err != nil {
		return errors.Wrapf(err, "scheduling meeting reminders %q", schedule)
	}
	r.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (r *MeetingReminder) Stop() {
	<-r.cron.Stop().Done()
}

// RemindUpcoming mails a reminder of every meeting scheduled on the day after `now` to all enrolled learners.
// It returns the number of meetings reminded.
func (r *MeetingReminder) RemindUpcoming(ctx context.Context, now time.Time) (int, error) {
	y, m, d := now.Date()
	tomorrow := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())

	mtgs, err := r.meetings.Upcoming(ctx, tomorrow, tomorrow.AddDate(0, 0, 1))
	if err != nil {
		return 0, errors.Wrap(err, "listing upcoming meetings")
	}
	if len(mtgs) == 0 {
		return 0, nil
	}

	learners, err := r.enrollments.ListLearners(ctx, enrollment.LearnerFilter{})
	if err != nil {
		return 0, errors.Wrap(err, "listing learners")
	}
	if len(learners) == 0 {
		return 0, nil
	}
	bcc := make([]mail.Address, 0, len(learners))
	for _, l := range learners {
		bcc = append(bcc, mail.Address{Name: l.Name, Address: l.Email})
	}

	messages := make([]*core.EmailMessage, 0, len(mtgs))
	for _, mtg := range mtgs {
		messages = append(messages, &core.EmailMessage{
			Bcc:          bcc,
			Subject:      "Tomorrow: " + mtg.Title,
			TemplateName: "meeting_reminder",
			TemplateData: mtg,
		})
	}
	r.mailSvc.SendMessages(messages...)
	return len(mtgs), nil
}
