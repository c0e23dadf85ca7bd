package stats

import (
	"math"

	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/submission"
)

type Stats struct {
	TotalAssignments int `json:"total_assignments"`
	TotalSubmissions int `json:"total_submissions"`
	CompletionRate   int `json:"completion_rate"` // percent
	Pending          int `json:"pending"`         // negative when submissions outnumber assignments
}

// Compute aggregates the dashboard stats.
// Every submission counts towards completion, duplicates included.
func Compute(assignments []assignment.Assignment, submissions []submission.Submission) Stats {
	st := Stats{
		TotalAssignments: len(assignments),
		TotalSubmissions: len(submissions),
	}
	st.CompletionRate = CompletionRate(st.TotalAssignments, st.TotalSubmissions)
	st.Pending = st.TotalAssignments - st.TotalSubmissions
	return st
}

// CompletionRate returns round(100 * submissions / assignments), 0 when there are no assignments.
func CompletionRate(assignments, submissions int) int {
	if assignments == 0 {
		return 0
	}
	return int(math.Round(float64(submissions) / float64(assignments) * 100))
}
