package reminder

import (
	"net/mail"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/submission"
)

const DefaultWindowDays = 3

type (
	// CursorRepository stores the calendar date reminders were last shown.
	CursorRepository interface {
		LastReminded() (string, error)
		SetLastReminded(date string) error
	}

	// Due is an unsubmitted Assignment due within the reminder window.
	Due struct {
		Assignment assignment.Assignment `json:"assignment"`
		DaysLeft   int                   `json:"days_left"`
	}

	Options struct {
		WindowDays int               // reminder window in days, from today
		MailSvc    core.EmailService // optional digest delivery
		Recipient  string            // digest recipient; empty disables the digest
	}

	Scheduler struct {
		mutex       sync.Mutex // serializes Check: read cursor, compute, move cursor
		assignments assignment.Repository
		submissions submission.Repository
		cursor      CursorRepository
		opts        Options
	}
)

func NewScheduler(
	assignments assignment.Repository,
	submissions submission.Repository,
	cursor CursorRepository,
	opts Options,
) *Scheduler {
	return &Scheduler{
		assignments: assignments,
		submissions: submissions,
		cursor:      cursor,
		opts:        opts,
	}
}

// Check returns the assignments to remind about, at most once per calendar day.
// The cursor only moves when there is something to show.
func (s *Scheduler) Check(today time.Time) ([]Due, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	todayStr := core.FormatDate(today)
	last, err := s.cursor.LastReminded()
	if err != nil {
		return nil, errors.Wrap(err, "reading reminder cursor")
	}
	if last == todayStr {
		return nil, nil
	}

	due, err := s.DueSoon(today)
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return nil, nil
	}

	if err := s.cursor.SetLastReminded(todayStr); err != nil {
		return nil, errors.Wrap(err, "saving reminder cursor")
	}
	s.sendDigest(due)
	return due, nil
}

// DueSoon lists unsubmitted assignments due within the window without touching the cursor.
func (s *Scheduler) DueSoon(today time.Time) ([]Due, error) {
	as, err := s.assignments.QueryAllAssignments()
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	subs, err := s.submissions.QueryAllSubmissions()
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	return DueSoon(as, subs, today, s.opts.WindowDays), nil
}

func (s *Scheduler) sendDigest(due []Due) {
	if s.opts.MailSvc == nil || s.opts.Recipient == "" {
		return
	}
	s.opts.MailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: s.opts.Recipient}},
		Subject:      "Assignments due soon",
		TemplateName: "reminder",
		TemplateData: due,
	})
}

// DueSoon selects assignments due in [0, windowDays] days that have no submission.
func DueSoon(as []assignment.Assignment, subs []submission.Submission, today time.Time, windowDays int) []Due {
	var due []Due
	for _, a := range as {
		st := a.DueStatus(today)
		if st.Status == assignment.StatusUnknown {
			continue
		}
		if st.DaysLeft >= 0 && st.DaysLeft <= windowDays && !submission.IsSubmitted(subs, a.ID) {
			due = append(due, Due{Assignment: a, DaysLeft: st.DaysLeft})
		}
	}
	return due
}
