// Package local holds the application state: both collections and the reminder cursor,
// loaded once from a kv.Store and rewritten in full on every mutation.
package local

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/reminder"
	"github.com/trezcool/kazi/core/submission"
	"github.com/trezcool/kazi/storage/kv"
)

type State struct {
	mutex sync.RWMutex
	store kv.Store

	assignments  []assignment.Assignment
	submissions  []submission.Submission
	lastReminded string
}

var (
	// interface compliance checks
	_ assignment.Repository     = (*State)(nil)
	_ submission.Repository     = (*State)(nil)
	_ reminder.CursorRepository = (*State)(nil)
)

// Load reads the collections and the reminder cursor from store. Missing keys start empty.
func Load(store kv.Store) (*State, error) {
	s := &State{store: store}
	if err := s.load(kv.KeyAssignments, &s.assignments); err != nil {
		return nil, errors.Wrap(err, "loading assignments")
	}
	if err := s.load(kv.KeySubmissions, &s.submissions); err != nil {
		return nil, errors.Wrap(err, "loading submissions")
	}

	cursor, err := store.Get(kv.KeyLastReminderDate)
	switch {
	case err == nil:
		s.lastReminded = string(cursor)
	case err != kv.ErrNotFound:
		return nil, errors.Wrap(err, "loading reminder cursor")
	}
	return s, nil
}

func (s *State) load(key string, dst interface{}) error {
	data, err := s.store.Get(key)
	if err == kv.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (s *State) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	return errors.Wrapf(s.store.Set(key, data), "saving %s", key)
}

// CreateAssignment appends a and persists the whole collection.
// An ID that is not greater than every existing ID is bumped to max+1.
func (s *State) CreateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var maxID int64
	for _, existing := range s.assignments {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	if a.ID <= maxID {
		a.ID = maxID + 1
	}

	updated := append(s.assignments[:len(s.assignments):len(s.assignments)], a)
	if err := s.save(kv.KeyAssignments, updated); err != nil {
		return assignment.Assignment{}, err
	}
	s.assignments = updated
	return a, nil
}

func (s *State) QueryAllAssignments() ([]assignment.Assignment, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]assignment.Assignment(nil), s.assignments...), nil
}

func (s *State) GetAssignmentByID(id int64) (assignment.Assignment, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, a := range s.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

// CreateSubmission appends sub and persists the whole collection.
func (s *State) CreateSubmission(sub submission.Submission) (submission.Submission, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	updated := append(s.submissions[:len(s.submissions):len(s.submissions)], sub)
	if err := s.save(kv.KeySubmissions, updated); err != nil {
		return submission.Submission{}, err
	}
	s.submissions = updated
	return sub, nil
}

func (s *State) QueryAllSubmissions() ([]submission.Submission, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]submission.Submission(nil), s.submissions...), nil
}

func (s *State) LastReminded() (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastReminded, nil
}

func (s *State) SetLastReminded(date string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.store.Set(kv.KeyLastReminderDate, []byte(date)); err != nil {
		return errors.Wrap(err, "saving lastReminderDate")
	}
	s.lastReminded = date
	return nil
}
