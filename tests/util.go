package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/submission"
	"github.com/trezcool/kazi/storage/kv/memkv"
	"github.com/trezcool/kazi/storage/local"
)

// NewState returns an empty local.State backed by a fresh memkv.Store.
func NewState(t *testing.T) (*local.State, *memkv.Store) {
	store := memkv.Open()
	state, err := local.Load(store)
	if err != nil {
		t.Fatalf("NewState() failed: %v", err)
	}
	return state, store
}

// CreateAssignment stores an assignment due in dueIn days from today (local time).
func CreateAssignment(t *testing.T, repo assignment.Repository, title, subject string, dueIn int) assignment.Assignment {
	a := assignment.Assignment{
		ID:      core.NowFunc().UnixMilli(),
		Title:   title,
		Subject: subject,
		DueDate: core.FormatDate(core.Today(time.Local).AddDate(0, 0, dueIn)),
	}
	a, err := repo.CreateAssignment(a)
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

func CreateSubmission(
	t *testing.T,
	repo submission.Repository,
	assignmentID int64,
	studentName string,
	submittedAt ...time.Time,
) submission.Submission {
	tstamp := core.NowFunc().UTC()
	if len(submittedAt) > 0 {
		tstamp = submittedAt[0].UTC()
	}
	sub, err := repo.CreateSubmission(submission.Submission{
		AssignmentID: assignmentID,
		StudentName:  studentName,
		SubmittedAt:  tstamp,
	})
	if err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return sub
}

// MockNow freezes core.NowFunc at now until the test ends.
func MockNow(t *testing.T, now time.Time) {
	orig := core.NowFunc
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = orig })
}

// Diff returns a unified diff of want and got, empty when they match.
func Diff(want, got string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.TrimSpace(want)),
		B:        difflib.SplitLines(strings.TrimSpace(got)),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	return diff
}
