package echoapi

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/dashboard"
	"github.com/trezcool/kazi/core/reminder"
	"github.com/trezcool/kazi/core/submission"
	appfs "github.com/trezcool/kazi/fs"
)

type (
	Options struct {
		Address        string
		AppName        string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		Location       *time.Location // used to compute "today"
		Logger         core.Logger
		Translator     ut.Translator
		SignalShutdown func() // called when a core.IsShutdown error reaches the error handler

		AssignmentSvc *assignment.Service
		SubmissionSvc *submission.Service
		Reminders     *reminder.Scheduler
	}

	Server interface {
		http.Handler
		Start() error
		Shutdown(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.opts.SignalShutdown)
	s.app.Renderer = newTemplateRenderer(s.opts.Location)
	s.app.Debug = s.opts.Debug

	registerPages(s.app, s.opts)
	registerAssignmentAPI(s.app.Group("/v1"), s.opts)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

type templateRenderer struct {
	tmpl *template.Template
}

var _ echo.Renderer = (*templateRenderer)(nil)

// newTemplateRenderer parses the web templates; dates are shown in loc.
func newTemplateRenderer(loc *time.Location) *templateRenderer {
	funcs := template.FuncMap{
		"statusClass": statusClass,
		"date":        func(t time.Time) string { return core.FormatDate(t.In(loc)) },
		"isTeacher":   func(v dashboard.View) bool { return v == dashboard.ViewTeacher },
	}
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(appfs.FS, "templates/web/*.gohtml"))
	return &templateRenderer{tmpl: tmpl}
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

func statusClass(st assignment.Status) string {
	switch st {
	case assignment.StatusUrgent:
		return "status-red"
	case assignment.StatusWarning:
		return "status-yellow"
	case assignment.StatusNormal:
		return "status-green"
	default:
		return "status-unknown"
	}
}
