package core

import (
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "")

		conf, err := NewConfig()
		if err != nil {
			t.Fatalf("NewConfig() unexpected error = %v", err)
		}
		if conf.Env != "DEV" || conf.AppName != "Kazi" || conf.StudentName != "Current Student" {
			t.Errorf("NewConfig() = %+v", conf)
		}
		if conf.Storage.Driver != StorageBolt || conf.Reminder.WindowDays != 3 {
			t.Errorf("NewConfig() storage = %+v, reminder = %+v", conf.Storage, conf.Reminder)
		}
		if conf.Server.ShutdownTimeout != 5*time.Second {
			t.Errorf("NewConfig() shutdownTimeout = %v, want 5s", conf.Server.ShutdownTimeout)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("TEST_SERVER_ADDRESS", ":9999")
		t.Setenv("TEST_STORAGE_DRIVER", StorageMemory)
		t.Setenv("TEST_REMINDER_WINDOWDAYS", "7")
		t.Setenv("TEST_STUDENTNAME", "Amani")

		conf, err := NewConfig()
		if err != nil {
			t.Fatalf("NewConfig() unexpected error = %v", err)
		}
		if !conf.TestMode || conf.Env != "TEST" {
			t.Errorf("NewConfig() env = %q, testMode = %v", conf.Env, conf.TestMode)
		}
		if conf.Server.Address != ":9999" || conf.Storage.Driver != StorageMemory ||
			conf.Reminder.WindowDays != 7 || conf.StudentName != "Amani" {
			t.Errorf("NewConfig() = %+v", conf)
		}
	})

	t.Run("negative window", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("TEST_REMINDER_WINDOWDAYS", "-1")

		_, err := NewConfig()
		if _, ok := err.(*ValidationError); !ok {
			t.Errorf("NewConfig() error = %v, want *ValidationError", err)
		}
	})
}

func TestConfig_Location(t *testing.T) {
	tests := []struct {
		tz      string
		want    string
		wantErr bool
	}{
		{tz: "", want: time.Local.String()},
		{tz: "Local", want: time.Local.String()},
		{tz: "UTC", want: "UTC"},
		{tz: "Not/AZone", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			loc, err := (&Config{Timezone: tt.tz}).Location()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Location() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && loc.String() != tt.want {
				t.Errorf("Location() = %v, want %v", loc, tt.want)
			}
		})
	}
}
