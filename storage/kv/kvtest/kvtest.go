// Package kvtest checks kv.Store implementations against the same expectations.
package kvtest

import (
	"bytes"
	"testing"

	"github.com/trezcool/kazi/storage/kv"
)

// Run exercises store, which must be empty.
func Run(t *testing.T, store kv.Store) {
	t.Helper()

	if _, err := store.Get(kv.KeyAssignments); err != kv.ErrNotFound {
		t.Fatalf("Get() on a missing key: error = %v, want %v", err, kv.ErrNotFound)
	}

	tests := []struct {
		name  string
		key   string
		value []byte
	}{
		{name: "set", key: kv.KeyAssignments, value: []byte(`[{"id":1,"title":"Essay"}]`)},
		{name: "overwrite", key: kv.KeyAssignments, value: []byte(`[]`)},
		{name: "raw string", key: kv.KeyLastReminderDate, value: []byte("2024-03-10")},
		{name: "other key", key: kv.KeySubmissions, value: []byte(`[{"assignmentId":1}]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set() unexpected error = %v", err)
			}
			got, err := store.Get(tt.key)
			if err != nil {
				t.Fatalf("Get() unexpected error = %v", err)
			}
			if !bytes.Equal(got, tt.value) {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}

	t.Run("returned value is a copy", func(t *testing.T) {
		got, err := store.Get(kv.KeyLastReminderDate)
		if err != nil {
			t.Fatalf("Get() unexpected error = %v", err)
		}
		got[0] = 'X'
		again, _ := store.Get(kv.KeyLastReminderDate)
		if string(again) != "2024-03-10" {
			t.Errorf("Get() = %q after mutating a previous result", again)
		}
	})
}
