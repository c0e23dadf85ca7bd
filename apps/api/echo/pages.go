package echoapi

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/dashboard"
	"github.com/trezcool/kazi/core/reminder"
	"github.com/trezcool/kazi/core/submission"
)

const (
	viewParam      = "view"
	publishedParam = "published"
)

type pages struct {
	appName       string
	loc           *time.Location
	logger        core.Logger
	translator    ut.Translator
	assignmentSvc *assignment.Service
	submissionSvc *submission.Service
	reminders     *reminder.Scheduler
}

// pageData is what the "index" template renders.
type pageData struct {
	dashboard.Page
	AppName    string
	Today      string
	Published  bool
	Form       assignment.NewAssignment
	FormErrors map[string]string
}

func registerPages(e *echo.Echo, opts *Options) {
	p := pages{
		appName:       opts.AppName,
		loc:           opts.Location,
		logger:        opts.Logger,
		translator:    opts.Translator,
		assignmentSvc: opts.AssignmentSvc,
		submissionSvc: opts.SubmissionSvc,
		reminders:     opts.Reminders,
	}

	e.GET("/", p.home)
	e.POST("/assignments", p.publish)
	e.POST("/assignments/:id/done", p.markDone)
}

// Handlers

// home renders the selected view; loading it is what triggers the daily reminder.
func (p *pages) home(ctx echo.Context) error {
	data := pageData{Published: ctx.QueryParam(publishedParam) == "1"}
	return p.render(ctx, http.StatusOK, dashboard.ParseView(ctx.QueryParam(viewParam)), data)
}

func (p *pages) publish(ctx echo.Context) error {
	var form assignment.NewAssignment
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}

	if _, err := p.assignmentSvc.Publish(form); err != nil {
		if fldErrs, ok := core.FieldErrors(err, p.translator); ok {
			data := pageData{Form: form, FormErrors: fldErrs}
			return p.render(ctx, http.StatusBadRequest, dashboard.ViewTeacher, data)
		}
		return errors.Wrap(err, "publishing assignment")
	}

	// back to the default view, with an empty form
	return ctx.Redirect(http.StatusSeeOther, viewURL(dashboard.DefaultView, url.Values{publishedParam: {"1"}}))
}

func (p *pages) markDone(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return errHttpNotFound
	}
	if _, err = p.assignmentSvc.GetByID(id); err != nil {
		return errors.Wrap(err, "finding assignment by ID")
	}
	if _, err = p.submissionSvc.Record(id); err != nil {
		return errors.Wrap(err, "recording submission")
	}
	return ctx.Redirect(http.StatusSeeOther, viewURL(dashboard.ViewStudent, nil))
}

func (p *pages) render(ctx echo.Context, code int, view dashboard.View, data pageData) error {
	today := core.Today(p.loc)

	as, err := p.assignmentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	subs, err := p.submissionSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}

	data.Page = dashboard.Build(view, as, subs, today)
	data.AppName = p.appName
	data.Today = core.FormatDate(today)

	// a failing reminder must not take the dashboard down
	if due, err := p.reminders.Check(today); err != nil {
		p.logger.Error("checking reminders", err)
	} else {
		data.Reminders = due
	}

	return ctx.Render(code, "index", data)
}

func viewURL(view dashboard.View, q url.Values) string {
	if q == nil {
		q = make(url.Values)
	}
	q.Set(viewParam, string(view))
	return "/?" + q.Encode()
}
