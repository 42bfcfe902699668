package emailsvc

import (
	"encoding/json"
	"errors"
	"net/mail"
	"strings"
	"testing"

	"github.com/sendgrid/rest"
	"go.uber.org/zap"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	logsvc "github.com/MDharunPrasad/giglabs-intern-venture/services/logger"
)

func testConfig() *core.Config {
	return &core.Config{
		AppName:          "GigLabs",
		DefaultFromEmail: "GigLabs <noreply@giglabs.test>",
		FrontendBaseURL:  "http://front.test",
		SendgridApiKey:   "sg-key",
	}
}

func TestConsoleServiceMock(t *testing.T) {
	ResetSentMessages()
	svc := NewConsoleServiceMock(testConfig(), logsvc.NewZapLogger(zap.NewNop()))

	svc.SendMessages(
		&core.EmailMessage{
			To:           []mail.Address{{Name: "Ada", Address: "ada@test.test"}},
			Subject:      "Password Reset",
			TemplateName: "password_reset",
			TemplateData: struct {
				Name      string
				ResetPath string
			}{Name: "Ada", ResetPath: "/password-reset/uid/token"},
		},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "dropped"},
		&core.EmailMessage{To: []mail.Address{{Address: "x@test.test"}}, TemplateName: "does_not_exist"},
	)

	if len(SentMessages) != 1 {
		t.Fatalf("got %d sent messages, want 1", len(SentMessages))
	}
	msg, _ := LastSentMessage()
	wantLink := "http://front.test/password-reset/uid/token"
	if !strings.Contains(msg.TextContent, wantLink) {
		t.Errorf("text content missing %q:\n%s", wantLink, msg.TextContent)
	}
	if !strings.Contains(msg.HTMLContent, wantLink) {
		t.Errorf("html content missing %q:\n%s", wantLink, msg.HTMLContent)
	}
	if !strings.Contains(msg.TextContent, "Hi Ada,") {
		t.Errorf("text content not rendered with data:\n%s", msg.TextContent)
	}
}

func TestSendgridService(t *testing.T) {
	svc := NewSendgridService(testConfig(), logsvc.NewZapLogger(zap.NewNop())).(*sendgridService)

	var got rest.Request
	origAPIFunc := sendgridAPIFunc
	sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
		got = req
		return &rest.Response{StatusCode: 202}, nil
	}
	defer func() { sendgridAPIFunc = origAPIFunc }()

	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: "Ada", Address: "ada@test.test"}},
		Bcc:     []mail.Address{{Address: "staff@test.test"}},
		Subject: "Hello",
		BodyStr: "plain body",
	}
	if err := msg.Render(svc.frontendBaseURL); err != nil {
		t.Fatalf("Render(): %v", err)
	}
	svc.send(*msg)

	if got.Headers["Authorization"] != "Bearer sg-key" {
		t.Errorf("Authorization = %q", got.Headers["Authorization"])
	}
	var body struct {
		From             struct{ Email string }
		Personalizations []struct {
			Subject string
			To      []struct{ Email string }
			Bcc     []struct{ Email string }
		}
		Content []struct{ Type, Value string }
	}
	if err := json.Unmarshal(got.Body, &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.From.Email != "noreply@giglabs.test" {
		t.Errorf("from = %q", body.From.Email)
	}
	if len(body.Personalizations) != 1 || body.Personalizations[0].Subject != "[GigLabs] Hello" {
		t.Fatalf("unexpected personalizations: %+v", body.Personalizations)
	}
	if p := body.Personalizations[0]; len(p.To) != 1 || len(p.Bcc) != 1 {
		t.Errorf("unexpected recipients: %+v", p)
	}
	if len(body.Content) != 1 || body.Content[0].Value != "plain body" {
		t.Errorf("unexpected content: %+v", body.Content)
	}
}

func TestSendgridServiceBccOnly(t *testing.T) {
	svc := NewSendgridService(testConfig(), logsvc.NewZapLogger(zap.NewNop())).(*sendgridService)

	req := svc.request(core.EmailMessage{
		Bcc:         []mail.Address{{Name: "Ada", Address: "ada@test.test"}, {Address: "bob@test.test"}},
		Subject:     "Tomorrow: Session",
		TextContent: "see you",
	})
	var body struct {
		Personalizations []struct {
			To  []struct{ Email string }
			Bcc []struct{ Email string }
		}
	}
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body.Personalizations) != 1 {
		t.Fatalf("got %d personalizations, want 1", len(body.Personalizations))
	}
	p := body.Personalizations[0]
	if len(p.To) != 1 || p.To[0].Email != "noreply@giglabs.test" {
		t.Errorf("to = %+v, want the sender address", p.To)
	}
	if len(p.Bcc) != 2 {
		t.Errorf("bcc = %+v, want both learners", p.Bcc)
	}
}

func TestSendgridServiceError(t *testing.T) {
	svc := NewSendgridService(testConfig(), logsvc.NewZapLogger(zap.NewNop())).(*sendgridService)

	var calls int
	origAPIFunc := sendgridAPIFunc
	sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
		calls++
		return nil, errors.New("network down")
	}
	defer func() { sendgridAPIFunc = origAPIFunc }()

	svc.send(core.EmailMessage{To: []mail.Address{{Address: "a@test.test"}}, TextContent: "x"})
	if calls != 1 {
		t.Errorf("got %d calls, want 1", calls)
	}
}
