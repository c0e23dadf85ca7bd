// Package dashboard projects the stored collections into the two dashboard panels.
// Everything here is derived: no function mutates its inputs.
package dashboard

import (
	"time"

	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/reminder"
	"github.com/trezcool/kazi/core/stats"
	"github.com/trezcool/kazi/core/submission"
)

// UnknownAssignmentTitle labels submissions whose assignment does not exist.
const UnknownAssignmentTitle = "Unknown Assignment"

// View is one of the two mutually exclusive panels.
type View string

const (
	ViewStudent View = "student"
	ViewTeacher View = "teacher"

	DefaultView = ViewStudent
)

// ParseView maps unknown names to DefaultView.
func ParseView(name string) View {
	switch View(name) {
	case ViewStudent, ViewTeacher:
		return View(name)
	default:
		return DefaultView
	}
}

// Other returns the panel a switch leads to.
func (v View) Other() View {
	if v == ViewTeacher {
		return ViewStudent
	}
	return ViewTeacher
}

type (
	// Card is an Assignment as shown on the student panel.
	Card struct {
		assignment.Assignment
		assignment.DueStatus
		Submitted bool
	}

	// SubmissionRow is a Submission as shown on the teacher panel.
	SubmissionRow struct {
		AssignmentTitle string
		StudentName     string
		SubmittedAt     time.Time
	}

	// Page holds everything a dashboard render needs.
	Page struct {
		View        View
		Cards       []Card          // student panel
		Submissions []SubmissionRow // teacher panel
		Stats       stats.Stats
		Reminders   []reminder.Due
	}
)

// StudentCards derives one Card per assignment, in publishing order.
func StudentCards(as []assignment.Assignment, subs []submission.Submission, today time.Time) []Card {
	cards := make([]Card, 0, len(as))
	for _, a := range as {
		cards = append(cards, Card{
			Assignment: a,
			DueStatus:  a.DueStatus(today),
			Submitted:  submission.IsSubmitted(subs, a.ID),
		})
	}
	return cards
}

// SubmissionRows derives the submission feed, newest first.
func SubmissionRows(as []assignment.Assignment, subs []submission.Submission) []SubmissionRow {
	titles := make(map[int64]string, len(as))
	for _, a := range as {
		titles[a.ID] = a.Title
	}

	rows := make([]SubmissionRow, 0, len(subs))
	for i := len(subs) - 1; i >= 0; i-- {
		sub := subs[i]
		title, ok := titles[sub.AssignmentID]
		if !ok {
			title = UnknownAssignmentTitle
		}
		rows = append(rows, SubmissionRow{
			AssignmentTitle: title,
			StudentName:     sub.StudentName,
			SubmittedAt:     sub.SubmittedAt,
		})
	}
	return rows
}

// Build derives the Page for view; only the selected panel's content is computed.
func Build(view View, as []assignment.Assignment, subs []submission.Submission, today time.Time) Page {
	page := Page{
		View:  view,
		Stats: stats.Compute(as, subs),
	}
	switch view {
	case ViewTeacher:
		page.Submissions = SubmissionRows(as, subs)
	default:
		page.Cards = StudentCards(as, subs, today)
	}
	return page
}
