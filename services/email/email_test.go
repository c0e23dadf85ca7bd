package emailsvc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"

	"github.com/trezcool/kazi/core"
	logsvc "github.com/trezcool/kazi/services/logger"
)

func testConfig(apiKey string) *core.Config {
	conf := &core.Config{AppName: "Kazi"}
	conf.Mail.DefaultFromEmail = "noreply@kazi.test"
	conf.Mail.SendgridAPIKey = apiKey
	return conf
}

func TestNew(t *testing.T) {
	logger := logsvc.NewZerologLogger(io.Discard, "", "json", "Kazi")

	if _, ok := New(testConfig(""), logger).(*consoleService); !ok {
		t.Error("New() without an API key must return the console service")
	}
	if _, ok := New(testConfig("SG.key"), logger).(*sendgridService); !ok {
		t.Error("New() with an API key must return the sendgrid service")
	}
}

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	var logs bytes.Buffer
	svc := NewConsoleServiceMock(testConfig(""), logsvc.NewZerologLogger(&logs, "info", "json", "Kazi"))

	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{{Address: "student@kazi.test"}}, Subject: "Hi", BodyStr: "hello"},
		&core.EmailMessage{Subject: "no recipient", BodyStr: "hello"},
		&core.EmailMessage{To: []mail.Address{{Address: "student@kazi.test"}}, Subject: "no content"},
	)

	if len(svc.SentMessages) != 1 {
		t.Fatalf("sent %d message(s), want 1", len(svc.SentMessages))
	}
	if !strings.Contains(logs.String(), "Subject: [Kazi] Hi") {
		t.Errorf("logged %q, want the formatted email", logs.String())
	}
}

func TestSendgridService_send(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	origHost := host
	host = srv.URL
	defer func() { host = origHost }()

	var logs bytes.Buffer
	svc := NewSendgridService(testConfig("SG.key"), logsvc.NewZerologLogger(&logs, "error", "json", "Kazi")).(*sendgridService)
	svc.send(core.EmailMessage{
		To:          []mail.Address{{Name: "Student", Address: "student@kazi.test"}},
		Subject:     "Assignments due soon",
		TextContent: "Essay is due in 1 days!",
	})

	if gotAuth != "Bearer SG.key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer SG.key")
	}
	if from, _ := gotBody["from"].(map[string]interface{}); from["email"] != "noreply@kazi.test" {
		t.Errorf("from = %v", gotBody["from"])
	}
	personalizations, _ := gotBody["personalizations"].([]interface{})
	if len(personalizations) != 1 {
		t.Fatalf("personalizations = %v", gotBody["personalizations"])
	}
	if subj := personalizations[0].(map[string]interface{})["subject"]; subj != "[Kazi] Assignments due soon" {
		t.Errorf("subject = %v", subj)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected error logs: %s", logs.String())
	}
}
