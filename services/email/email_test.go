package emailsvc

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/services/logger"
)

func testConfig() *core.Config {
	return &core.Config{
		AppName: "StudyFlow",
		Email: core.EmailConfig{
			Backend:        core.EmailConsole,
			SendgridAPIKey: "SG.key",
			FromName:       "StudyFlow",
			FromAddress:    "noreply@studyflow.test",
		},
	}
}

func testMessage(t *testing.T) *core.EmailMessage {
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: "Ada", Address: "ada@studyflow.test"}},
		Subject: "Reminder",
		BodyStr: "2 assignments are due soon",
	}
	require.NoError(t, msg.Attach(strings.NewReader("BEGIN:VCALENDAR"), "studyflow.ics", "text/calendar"))
	return msg
}

func TestNew(t *testing.T) {
	conf := testConfig()
	lgr := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0), conf)

	svc, err := New(conf, io.Discard, lgr)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleService{}, svc)

	conf.Email.Backend = core.EmailSendgrid
	svc, err = New(conf, io.Discard, lgr)
	require.NoError(t, err)
	assert.IsType(t, &SendgridService{}, svc)

	conf.Email.SendgridAPIKey = ""
	_, err = New(conf, io.Discard, lgr)
	assert.True(t, core.IsValidationError(err))

	conf.Email.Backend = "pigeon"
	_, err = New(conf, io.Discard, lgr)
	assert.True(t, core.IsValidationError(err))
}

func TestConsoleService_SendMessages(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	out := new(bytes.Buffer)
	svc := NewConsoleService(out, testConfig())

	noRecipient := &core.EmailMessage{Subject: "lost", BodyStr: "nobody reads this"}
	require.NoError(t, svc.SendMessages(testMessage(t), noRecipient))

	got := out.String()
	assert.Contains(t, got, "From: \"StudyFlow\" <noreply@studyflow.test>\r\n")
	assert.Contains(t, got, "Date: Sun, 10 Mar 2024 12:00:00 +0000\r\n")
	assert.Contains(t, got, "Subject: [StudyFlow] Reminder\r\n")
	assert.Contains(t, got, "To: \"Ada\" <ada@studyflow.test>\r\n")
	assert.Contains(t, got, "Content-Type: multipart/mixed")
	assert.Contains(t, got, "2 assignments are due soon")
	assert.Contains(t, got, "attachment; filename=studyflow.ics")
	assert.Contains(t, got, "QkVHSU46VkNBTEVOREFS") // base64 content
	assert.NotContains(t, got, "nobody reads this")

	sent := svc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Reminder", sent[0].Subject)
}

func TestConsoleService_SendMessages_unknownTemplate(t *testing.T) {
	svc := NewConsoleService(io.Discard, testConfig())
	err := svc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: "ada@studyflow.test"}},
		TemplateName: "lol",
	})
	assert.Error(t, err)
	assert.Empty(t, svc.SentMessages())
}

func TestSendgridService_SendMessages(t *testing.T) {
	defer func() { sendgridAPIFunc = sendgridAPIOrig }()

	conf := testConfig()
	lgr := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0), conf)
	svc := NewSendgridService(conf, lgr)

	var reqs []rest.Request
	sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
		reqs = append(reqs, req)
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	}
	require.NoError(t, svc.SendMessages(testMessage(t)))
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, string(reqs[0].Method))
	assert.Equal(t, "Bearer SG.key", reqs[0].Headers["Authorization"])

	var body struct {
		From struct {
			Email string `json:"email"`
		} `json:"from"`
		Personalizations []struct {
			Subject string `json:"subject"`
			To      []struct {
				Email string `json:"email"`
			} `json:"to"`
		} `json:"personalizations"`
		Content []struct {
			Type string `json:"type"`
		} `json:"content"`
		Attachments []struct {
			Filename string `json:"filename"`
		} `json:"attachments"`
	}
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	assert.Equal(t, "noreply@studyflow.test", body.From.Email)
	require.Len(t, body.Personalizations, 1)
	assert.Equal(t, "[StudyFlow] Reminder", body.Personalizations[0].Subject)
	assert.Equal(t, "ada@studyflow.test", body.Personalizations[0].To[0].Email)
	require.Len(t, body.Content, 1, "no html part without html content")
	assert.Equal(t, "studyflow.ics", body.Attachments[0].Filename)

	sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
		return &rest.Response{StatusCode: http.StatusUnauthorized, Body: "bad key"}, nil
	}
	assert.EqualError(t, svc.SendMessages(testMessage(t)), "sending email: sendgrid responded 401")
}

var sendgridAPIOrig = sendgridAPIFunc
