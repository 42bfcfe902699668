package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/ambassador"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/assignment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/chat"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/submission"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		KV             core.KeyValueStore
		DisableReqLogs bool

		UserSvc       *user.Service
		EnrollmentSvc *enrollment.Service
		SubmissionSvc *submission.Service
		MeetingSvc    *meeting.Service
		AssignmentSvc *assignment.Service
		AmbassadorSvc *ambassador.Service
		Assistant     *chat.Assistant
	}

	Server struct {
		app      *echo.Echo
		conf     *core.Config
		logger   core.Logger
		auth     *authenticator
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		app:      echo.New(),
		conf:     deps.Conf,
		logger:   deps.Logger,
		auth:     newAuthenticator(deps.Conf, deps.KV, deps.UserSvc),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup(deps)
	return s
}

func (s *Server) setup(deps ServerDeps) {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.conf.Debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.logger, deps.Translator, s.signalShutdown)
	s.app.Debug = s.conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	authed := []echo.MiddlewareFunc{middleware.JWTWithConfig(s.auth.jwtConf), s.auth.checkRevoked}

	registerAuthAPI(v1, authed, s.auth, deps.UserSvc, deps.Validate, s.logger)
	registerCatalogAPI(v1, deps.Assistant, deps.Validate)
	registerEnrollmentAPI(v1, authed, s.auth, deps.EnrollmentSvc, deps.SubmissionSvc, deps.Validate)
	registerMeetingAPI(v1, authed, s.auth, deps.MeetingSvc, deps.Validate)
	registerAssignmentAPI(v1, authed, s.auth, deps.AssignmentSvc, deps.Validate)
	registerStaffAPI(v1, authed, deps.EnrollmentSvc, deps.SubmissionSvc)
	registerAmbassadorAPI(v1, authed, deps.AmbassadorSvc, deps.Validate)
}

// Start listens on conf.Server.Host. Failures are reported on Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" API!")
}
