package submission

import "time"

// Submission records that a student completed an Assignment.
// AssignmentID is not checked against existing assignments.
type Submission struct {
	AssignmentID int64     `json:"assignmentId"`
	StudentName  string    `json:"studentName"`
	SubmittedAt  time.Time `json:"date"`
}
