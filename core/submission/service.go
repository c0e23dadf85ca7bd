package submission

import (
	"github.com/trezcool/kazi/core"
)

type (
	Repository interface {
		CreateSubmission(sub Submission) (Submission, error)
		QueryAllSubmissions() ([]Submission, error)
	}

	Service struct {
		repo        Repository
		studentName string
	}
)

// NewService returns a Service recording submissions on behalf of studentName.
func NewService(repo Repository, studentName string) *Service {
	return &Service{repo: repo, studentName: studentName}
}

// Record stores a new Submission for assignmentID.
// It does not check for an existing submission: calling it twice stores two records.
func (svc *Service) Record(assignmentID int64) (Submission, error) {
	sub := Submission{
		AssignmentID: assignmentID,
		StudentName:  svc.studentName,
		SubmittedAt:  core.NowFunc().UTC(),
	}
	return svc.repo.CreateSubmission(sub)
}

// IsSubmitted reports whether any submission references assignmentID.
func (svc *Service) IsSubmitted(assignmentID int64) (bool, error) {
	subs, err := svc.repo.QueryAllSubmissions()
	if err != nil {
		return false, err
	}
	return IsSubmitted(subs, assignmentID), nil
}

func (svc *Service) QueryAll() ([]Submission, error) {
	return svc.repo.QueryAllSubmissions()
}

// IsSubmitted reports whether any of subs references assignmentID.
func IsSubmitted(subs []Submission, assignmentID int64) bool {
	for _, sub := range subs {
		if sub.AssignmentID == assignmentID {
			return true
		}
	}
	return false
}
