package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/attendance"
	"github.com/duotask/duotask/core/event"
	"github.com/duotask/duotask/core/group"
	"github.com/duotask/duotask/core/student"
	"github.com/duotask/duotask/core/task"
	"github.com/duotask/duotask/core/user"
)

type (
	ServerDeps struct {
		Conf   *core.Config
		Logger core.Logger

		GroupSvc      *group.Service
		StudentSvc    *student.Service
		TaskSvc       *task.Service
		AttendanceSvc *attendance.Service
		EventSvc      *event.Service
		UserSvc       *user.Service

		DisableReqLogs bool
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf
	initJWTConfig(conf)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if conf.Server.SimulatedLatency > 0 {
		s.app.Use(simulatedLatencyMiddleware(conf.Server.SimulatedLatency))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerGroupAPI(api, jwt, s.deps.GroupSvc)
	registerStudentAPI(api, jwt, s.deps.StudentSvc, s.deps.TaskSvc)
	registerTaskAPI(api, jwt, s.deps.TaskSvc)
	registerAttendanceAPI(api, jwt, s.deps.AttendanceSvc)
	registerEventAPI(api, jwt, s.deps.EventSvc)
	registerUserAPI(api, jwt, s.deps.UserSvc, s.deps.Conf)
}

func (s *Server) Start() {
	s.errors <- s.app.Start(s.deps.Conf.Server.Address)
}

// Errors reports a failed listener; the server is down when it fires.
func (s *Server) Errors() <-chan error {
	return s.errors
}

// ShutdownSignal fires on SIGINT/SIGTERM, or when a handler caught an
// unrecoverable error.
func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to DuoTask API!")
}
