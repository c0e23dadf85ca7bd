package dashboard

import (
	"testing"
	"time"

	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/stats"
	"github.com/trezcool/kazi/core/submission"
)

var today = time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local)

func TestParseView(t *testing.T) {
	tests := []struct {
		name string
		want View
	}{
		{name: "student", want: ViewStudent},
		{name: "teacher", want: ViewTeacher},
		{name: "", want: DefaultView},
		{name: "admin", want: DefaultView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseView(tt.name); got != tt.want {
				t.Errorf("ParseView() = %v, want %v", got, tt.want)
			}
			if ParseView(tt.name).Other() == ParseView(tt.name) {
				t.Errorf("Other() must switch panels")
			}
		})
	}
}

func TestStudentCards(t *testing.T) {
	as := []assignment.Assignment{
		{ID: 1, Title: "Essay", Subject: "English", DueDate: "2024-03-11"},
		{ID: 2, Title: "Lab report", Subject: "Physics", DueDate: "2024-03-20"},
		{ID: 3, Title: "Broken", Subject: "Math", DueDate: "tbd"},
	}
	subs := []submission.Submission{{AssignmentID: 2}}

	want := []Card{
		{Assignment: as[0], DueStatus: assignment.DueStatus{DaysLeft: 1, Status: assignment.StatusUrgent}},
		{Assignment: as[1], DueStatus: assignment.DueStatus{DaysLeft: 10, Status: assignment.StatusNormal}, Submitted: true},
		{Assignment: as[2], DueStatus: assignment.DueStatus{Status: assignment.StatusUnknown}},
	}
	got := StudentCards(as, subs, today)
	if len(got) != len(want) {
		t.Fatalf("StudentCards() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("StudentCards()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSubmissionRows(t *testing.T) {
	t1 := time.Date(2024, time.March, 8, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	as := []assignment.Assignment{{ID: 1, Title: "Essay"}}
	subs := []submission.Submission{
		{AssignmentID: 1, StudentName: "Current Student", SubmittedAt: t1},
		{AssignmentID: 99, StudentName: "Current Student", SubmittedAt: t2},
		{AssignmentID: 1, StudentName: "Current Student", SubmittedAt: t3},
	}

	want := []SubmissionRow{
		{AssignmentTitle: "Essay", StudentName: "Current Student", SubmittedAt: t3},
		{AssignmentTitle: UnknownAssignmentTitle, StudentName: "Current Student", SubmittedAt: t2},
		{AssignmentTitle: "Essay", StudentName: "Current Student", SubmittedAt: t1},
	}
	got := SubmissionRows(as, subs)
	if len(got) != len(want) {
		t.Fatalf("SubmissionRows() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SubmissionRows()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuild(t *testing.T) {
	as := []assignment.Assignment{{ID: 1, Title: "Essay", Subject: "English", DueDate: "2024-03-11"}}
	subs := []submission.Submission{{AssignmentID: 1, StudentName: "Current Student"}}
	wantStats := stats.Stats{TotalAssignments: 1, TotalSubmissions: 1, CompletionRate: 100, Pending: 0}

	t.Run("student", func(t *testing.T) {
		page := Build(ViewStudent, as, subs, today)
		if page.View != ViewStudent || len(page.Cards) != 1 || page.Submissions != nil {
			t.Errorf("Build() = %+v", page)
		}
		if page.Stats != wantStats {
			t.Errorf("Build().Stats = %+v, want %+v", page.Stats, wantStats)
		}
	})
	t.Run("teacher", func(t *testing.T) {
		page := Build(ViewTeacher, as, subs, today)
		if page.View != ViewTeacher || page.Cards != nil || len(page.Submissions) != 1 {
			t.Errorf("Build() = %+v", page)
		}
		if page.Stats != wantStats {
			t.Errorf("Build().Stats = %+v, want %+v", page.Stats, wantStats)
		}
	})
}
