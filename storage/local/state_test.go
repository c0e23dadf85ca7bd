package local

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/submission"
	"github.com/trezcool/kazi/storage/kv"
	"github.com/trezcool/kazi/storage/kv/boltkv"
	"github.com/trezcool/kazi/storage/kv/memkv"
)

func load(t *testing.T, store kv.Store) *State {
	s, err := Load(store)
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	return s
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]string
		wantErr  bool
		wantAs   int
		wantSubs int
		wantLast string
	}{
		{name: "empty store"},
		{
			name: "persisted layout",
			data: map[string]string{
				kv.KeyAssignments:      `[{"id":1710000000000,"title":"Essay","subject":"English","desc":"","link":"","date":"2024-03-11"}]`,
				kv.KeySubmissions:      `[{"assignmentId":1710000000000,"studentName":"Current Student","date":"2024-03-10T09:30:00Z"}]`,
				kv.KeyLastReminderDate: "2024-03-10",
			},
			wantAs: 1, wantSubs: 1, wantLast: "2024-03-10",
		},
		{
			name:   "missing fields",
			data:   map[string]string{kv.KeyAssignments: `[{"id":1,"title":"Essay"}]`},
			wantAs: 1,
		},
		{name: "malformed assignments", data: map[string]string{kv.KeyAssignments: `{"id":1}`}, wantErr: true},
		{name: "malformed submissions", data: map[string]string{kv.KeySubmissions: `not json`}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memkv.Open()
			for k, v := range tt.data {
				_ = store.Set(k, []byte(v))
			}

			s, err := Load(store)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			as, _ := s.QueryAllAssignments()
			subs, _ := s.QueryAllSubmissions()
			last, _ := s.LastReminded()
			if len(as) != tt.wantAs || len(subs) != tt.wantSubs || last != tt.wantLast {
				t.Errorf("Load() = %d assignments, %d submissions, cursor %q; want %d, %d, %q",
					len(as), len(subs), last, tt.wantAs, tt.wantSubs, tt.wantLast)
			}
		})
	}
}

func TestState_roundTrip(t *testing.T) {
	store, err := boltkv.Open(filepath.Join(t.TempDir(), "kazi.db"))
	if err != nil {
		t.Fatalf("boltkv.Open() unexpected error = %v", err)
	}
	defer store.Close()

	submittedAt := time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)
	a := assignment.Assignment{
		ID: 1710000000000, Title: "Essay", Subject: "English",
		Description: "500 words", Link: "https://example.com", DueDate: "2024-03-11",
	}
	sub := submission.Submission{AssignmentID: a.ID, StudentName: "Current Student", SubmittedAt: submittedAt}

	s := load(t, store)
	if _, err = s.CreateAssignment(a); err != nil {
		t.Fatalf("CreateAssignment() unexpected error = %v", err)
	}
	if _, err = s.CreateSubmission(sub); err != nil {
		t.Fatalf("CreateSubmission() unexpected error = %v", err)
	}
	if err = s.SetLastReminded("2024-03-10"); err != nil {
		t.Fatalf("SetLastReminded() unexpected error = %v", err)
	}

	// a reload sees exactly what was written
	reloaded := load(t, store)
	got, err := reloaded.GetAssignmentByID(a.ID)
	if err != nil {
		t.Fatalf("GetAssignmentByID() unexpected error = %v", err)
	}
	if got != a {
		t.Errorf("GetAssignmentByID() = %+v, want %+v", got, a)
	}
	subs, _ := reloaded.QueryAllSubmissions()
	if len(subs) != 1 {
		t.Fatalf("QueryAllSubmissions() = %+v, want [%+v]", subs, sub)
	}
	gotSub := subs[0]
	if !gotSub.SubmittedAt.Equal(sub.SubmittedAt) {
		t.Errorf("SubmittedAt = %v, want %v", gotSub.SubmittedAt, sub.SubmittedAt)
	}
	gotSub.SubmittedAt = sub.SubmittedAt
	if gotSub != sub {
		t.Errorf("QueryAllSubmissions()[0] = %+v, want %+v", gotSub, sub)
	}
	if last, _ := reloaded.LastReminded(); last != "2024-03-10" {
		t.Errorf("LastReminded() = %q, want %q", last, "2024-03-10")
	}

	// the cursor is stored as a raw date string
	raw, err := store.Get(kv.KeyLastReminderDate)
	if err != nil || string(raw) != "2024-03-10" {
		t.Errorf("raw cursor = %q (err %v), want %q", raw, err, "2024-03-10")
	}
}

func TestState_CreateAssignment_bumpsID(t *testing.T) {
	s := load(t, memkv.Open())

	tests := []struct {
		name   string
		id     int64
		wantID int64
	}{
		{name: "first", id: 100, wantID: 100},
		{name: "same millisecond", id: 100, wantID: 101},
		{name: "clock went back", id: 50, wantID: 102},
		{name: "later", id: 200, wantID: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := s.CreateAssignment(assignment.Assignment{ID: tt.id, Title: tt.name})
			if err != nil {
				t.Fatalf("CreateAssignment() unexpected error = %v", err)
			}
			if a.ID != tt.wantID {
				t.Errorf("CreateAssignment() ID = %d, want %d", a.ID, tt.wantID)
			}
		})
	}
}

func TestState_writeFailure(t *testing.T) {
	store := memkv.Open()
	s := load(t, store)
	if _, err := s.CreateAssignment(assignment.Assignment{ID: 1, Title: "Essay"}); err != nil {
		t.Fatalf("CreateAssignment() unexpected error = %v", err)
	}

	store.FailWrites = errors.New("disk full")

	if _, err := s.CreateAssignment(assignment.Assignment{ID: 2, Title: "Lab"}); err == nil {
		t.Error("CreateAssignment() expected an error")
	}
	if _, err := s.CreateSubmission(submission.Submission{AssignmentID: 1}); err == nil {
		t.Error("CreateSubmission() expected an error")
	}
	if err := s.SetLastReminded("2024-03-10"); err == nil {
		t.Error("SetLastReminded() expected an error")
	}

	// nothing was committed in memory
	as, _ := s.QueryAllAssignments()
	subs, _ := s.QueryAllSubmissions()
	last, _ := s.LastReminded()
	if len(as) != 1 || len(subs) != 0 || last != "" {
		t.Errorf("state = %d assignments, %d submissions, cursor %q; want 1, 0, \"\"", len(as), len(subs), last)
	}
	if _, err := s.GetAssignmentByID(2); err != assignment.ErrNotFound {
		t.Errorf("GetAssignmentByID() error = %v, want %v", err, assignment.ErrNotFound)
	}
}

func TestState_queriesReturnCopies(t *testing.T) {
	s := load(t, memkv.Open())
	if _, err := s.CreateAssignment(assignment.Assignment{ID: 1, Title: "Essay"}); err != nil {
		t.Fatalf("CreateAssignment() unexpected error = %v", err)
	}

	as, _ := s.QueryAllAssignments()
	as[0].Title = "changed"

	got, _ := s.GetAssignmentByID(1)
	if got.Title != "Essay" {
		t.Errorf("GetAssignmentByID() Title = %q, want %q", got.Title, "Essay")
	}
}
