package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	echoapi "github.com/MDharunPrasad/giglabs-intern-venture/apps/api/echo"
	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/ambassador"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/assignment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/chat"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/submission"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
	emailsvc "github.com/MDharunPrasad/giglabs-intern-venture/services/email"
	logsvc "github.com/MDharunPrasad/giglabs-intern-venture/services/logger"
	remindersvc "github.com/MDharunPrasad/giglabs-intern-venture/services/reminder"
	"github.com/MDharunPrasad/giglabs-intern-venture/storage"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newZap(conf *core.Config) (*zap.Logger, error) {
	return logsvc.NewZap(conf.Env)
}

func newLogger(conf *core.Config, zl *zap.Logger) core.Logger {
	logger := logsvc.NewRollbarLogger(zl.Named("api"), conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config, zl *zap.Logger) core.Logger {
	return logsvc.NewRollbarLogger(zl.Named("db"), conf)
}

func newRepositories(conf *core.Config, loggerParam DBLoggerParam) *storage.Repositories {
	repos, err := storage.Open(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	return repos
}

func newKeyValueStore(conf *core.Config, logger core.Logger) (*storage.KeyValueStore, core.KeyValueStore) {
	kv, err := storage.OpenKeyValueStore(context.Background(), conf.Redis)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up key-value store: %v", err), err)
	}
	return kv, kv
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newUserService(repos *storage.Repositories, mailSvc core.EmailService, conf *core.Config) *user.Service {
	return user.NewService(repos.Users, mailSvc, conf)
}

func newEnrollmentService(repos *storage.Repositories, mailSvc core.EmailService) *enrollment.Service {
	return enrollment.NewService(repos.Enrollments, mailSvc)
}

func newSubmissionService(repos *storage.Repositories, kv core.KeyValueStore, conf *core.Config) *submission.Service {
	return submission.NewService(repos.Submissions, repos.Enrollments, kv, conf.Redis.SubmitLockTTL)
}

func newMeetingService(repos *storage.Repositories) *meeting.Service {
	return meeting.NewService(repos.Meetings)
}

func newAssignmentService(repos *storage.Repositories) *assignment.Service {
	return assignment.NewService(repos.Assignments)
}

func newAmbassadorService(repos *storage.Repositories, mailSvc core.EmailService, conf *core.Config) *ambassador.Service {
	return ambassador.NewService(repos.Ambassadors, mailSvc, conf.DefaultFromAddress())
}

func newAssistant() *chat.Assistant {
	return chat.NewAssistant(nil)
}

type serverParams struct {
	dig.In

	Conf       *core.Config
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	KV         core.KeyValueStore

	UserSvc       *user.Service
	EnrollmentSvc *enrollment.Service
	SubmissionSvc *submission.Service
	MeetingSvc    *meeting.Service
	AssignmentSvc *assignment.Service
	AmbassadorSvc *ambassador.Service
	Assistant     *chat.Assistant
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:          p.Conf,
		Logger:        p.Logger,
		Validate:      p.Validate,
		Translator:    p.Translator,
		KV:            p.KV,
		UserSvc:       p.UserSvc,
		EnrollmentSvc: p.EnrollmentSvc,
		SubmissionSvc: p.SubmissionSvc,
		MeetingSvc:    p.MeetingSvc,
		AssignmentSvc: p.AssignmentSvc,
		AmbassadorSvc: p.AmbassadorSvc,
		Assistant:     p.Assistant,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newZap))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(newKeyValueStore))
	must(c.Provide(newEmailService))
	must(c.Provide(validator.New))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newUserService))
	must(c.Provide(newEnrollmentService))
	must(c.Provide(newSubmissionService))
	must(c.Provide(newMeetingService))
	must(c.Provide(newAssignmentService))
	must(c.Provide(newAmbassadorService))
	must(c.Provide(newAssistant))
	must(c.Provide(remindersvc.NewMeetingReminder))
	must(c.Provide(newServer))

	if os.Getenv("DIG_VISUALIZE") != "" {
		_ = dig.Visualize(c, os.Stdout)
	}

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
