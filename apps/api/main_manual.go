package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

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

func startManual() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zl, err := logsvc.NewZap(conf.Env)
	if err != nil {
		log.Fatalf("setting up zap: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	logger := logsvc.NewRollbarLogger(zl.Named("api"), conf)
	logger.Enable(!conf.Debug)
	dbLogger := logsvc.NewRollbarLogger(zl.Named("db"), conf)

	// set up storage
	repos, err := storage.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer func() {
		if err = repos.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	kv, err := storage.OpenKeyValueStore(context.Background(), conf.Redis)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up key-value store: %v", err), err)
	}
	defer func() { _ = kv.Close() }()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug || conf.SendgridApiKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(repos.Users, mailSvc, conf)
	enrSvc := enrollment.NewService(repos.Enrollments, mailSvc)
	subSvc := submission.NewService(repos.Submissions, repos.Enrollments, kv, conf.Redis.SubmitLockTTL)
	mtgSvc := meeting.NewService(repos.Meetings)
	asgSvc := assignment.NewService(repos.Assignments)
	ambSvc := ambassador.NewService(repos.Ambassadors, mailSvc, conf.DefaultFromAddress())

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	if err = core.ParseEmailTemplates(); err != nil {
		logger.Fatal(fmt.Sprintf("parsing email templates: %v", err), err)
	}

	user.LoadCommonPasswords(logger)

	// =========================================================================
	// Start Meeting Reminders

	if conf.Reminders.Enabled {
		reminder := remindersvc.NewMeetingReminder(mtgSvc, enrSvc, mailSvc, logger)
		if err = reminder.Start(conf.Reminders.Schedule); err != nil {
			logger.Fatal(fmt.Sprintf("starting meeting reminders: %v", err), err)
		}
		defer reminder.Stop()
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("storage").Set(conf.StorageDriver)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Validate:      validate,
			Translator:    translator,
			KV:            kv,
			UserSvc:       usrSvc,
			EnrollmentSvc: enrSvc,
			SubmissionSvc: subSvc,
			MeetingSvc:    mtgSvc,
			AssignmentSvc: asgSvc,
			AmbassadorSvc: ambSvc,
			Assistant:     chat.NewAssistant(nil),
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
