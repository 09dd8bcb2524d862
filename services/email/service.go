// Package emailsvc sends the application emails, either to a console writer or through Sendgrid.
package emailsvc

import (
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core"
)

var nowFunc = time.Now // mockable

// New returns the email service of the configured backend.
func New(conf *core.Config, out io.Writer, logger core.Logger) (core.EmailService, error) {
	switch conf.Email.Backend {
	case core.EmailConsole, "":
		return NewConsoleService(out, conf), nil
	case core.EmailSendgrid:
		if conf.Email.SendgridAPIKey == "" {
			return nil, core.NewValidationError(nil, core.FieldError{
				Field: "email.sendgridApiKey",
				Error: "is required by the sendgrid backend",
			})
		}
		return NewSendgridService(conf, logger), nil
	default:
		return nil, core.NewValidationError(nil, core.FieldError{
			Field: "email.backend",
			Error: "unknown email backend: " + conf.Email.Backend,
		})
	}
}

// deliver renders then sends every deliverable message concurrently and returns the first error.
func deliver(appName string, messages []*core.EmailMessage, send func(msg core.EmailMessage) error) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, msg := range messages {
		msg := msg
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := msg.Render(appName); err != nil {
				setErr(errors.Wrap(err, "rendering email"))
				return
			}
			if msg.HasRecipients() && (msg.HasContent() || msg.HasAttachments()) {
				if err := send(*msg); err != nil {
					setErr(err)
				}
			}
		}()
	}
	wg.Wait()
	return firstErr
}
