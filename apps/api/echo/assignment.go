package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/reminder"
	"github.com/trezcool/kazi/core/stats"
	"github.com/trezcool/kazi/core/submission"
)

type (
	// AssignmentResponse is an Assignment with its derived due-date state.
	AssignmentResponse struct {
		assignment.Assignment
		DaysLeft  *int              `json:"days_left"` // nil when the due date cannot be parsed
		Status    assignment.Status `json:"status"`
		Submitted bool              `json:"submitted"`
	}

	assignmentApi struct {
		loc           *time.Location
		assignmentSvc *assignment.Service
		submissionSvc *submission.Service
		reminders     *reminder.Scheduler
	}
)

func registerAssignmentAPI(g *echo.Group, opts *Options) {
	api := assignmentApi{
		loc:           opts.Location,
		assignmentSvc: opts.AssignmentSvc,
		submissionSvc: opts.SubmissionSvc,
		reminders:     opts.Reminders,
	}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.GET("/:id", api.retrieve)
	ag.POST("/:id/submissions", api.submit)

	g.GET("/submissions", api.querySubmissions)
	g.GET("/stats", api.stats)
	g.GET("/reminders", api.dueSoon)
}

func newAssignmentResponse(a assignment.Assignment, subs []submission.Submission, today time.Time) AssignmentResponse {
	st := a.DueStatus(today)
	resp := AssignmentResponse{
		Assignment: a,
		Status:     st.Status,
		Submitted:  submission.IsSubmitted(subs, a.ID),
	}
	if st.Status != assignment.StatusUnknown {
		days := st.DaysLeft
		resp.DaysLeft = &days
	}
	return resp
}

// Handlers

func (api *assignmentApi) query(ctx echo.Context) error {
	as, err := api.assignmentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	subs, err := api.submissionSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}

	today := core.Today(api.loc)
	resp := make([]AssignmentResponse, 0, len(as))
	for _, a := range as {
		resp = append(resp, newAssignmentResponse(a, subs, today))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}

	a, err := api.assignmentSvc.Publish(data)
	if err != nil {
		return errors.Wrap(err, "publishing assignment")
	}
	return ctx.JSON(http.StatusCreated, newAssignmentResponse(a, nil, core.Today(api.loc)))
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	a, err := api.getAssignment(ctx)
	if err != nil {
		return err
	}
	subs, err := api.submissionSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	return ctx.JSON(http.StatusOK, newAssignmentResponse(a, subs, core.Today(api.loc)))
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	a, err := api.getAssignment(ctx)
	if err != nil {
		return err
	}
	sub, err := api.submissionSvc.Record(a.ID)
	if err != nil {
		return errors.Wrap(err, "recording submission")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *assignmentApi) querySubmissions(ctx echo.Context) error {
	subs, err := api.submissionSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	if subs == nil {
		subs = []submission.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *assignmentApi) stats(ctx echo.Context) error {
	as, err := api.assignmentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	subs, err := api.submissionSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	return ctx.JSON(http.StatusOK, stats.Compute(as, subs))
}

// dueSoon lists what a reminder would show today, without moving the reminder cursor.
func (api *assignmentApi) dueSoon(ctx echo.Context) error {
	due, err := api.reminders.DueSoon(core.Today(api.loc))
	if err != nil {
		return errors.Wrap(err, "listing due assignments")
	}
	if due == nil {
		due = []reminder.Due{}
	}
	return ctx.JSON(http.StatusOK, due)
}

// Helpers

func (api *assignmentApi) getAssignment(ctx echo.Context) (assignment.Assignment, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return assignment.Assignment{}, errHttpNotFound
	}
	a, err := api.assignmentSvc.GetByID(id)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return a, nil
}
