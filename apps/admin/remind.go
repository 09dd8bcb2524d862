package main

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/report"
)

// remind emails the overdue & due soon assignments to every address of to, with their calendar attached.
func (cli *commandLine) remind(to string) error {
	addrs, err := mail.ParseAddressList(to)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "to", Error: "invalid address list"})
	}

	now := nowFunc().In(cli.loc)
	rem, err := cli.dashSvc.Reminders(context.Background(), now)
	if err != nil {
		return errors.Wrap(err, "collecting reminders")
	}
	if rem.IsEmpty() {
		fmt.Fprintln(cli.out, "nothing to remind")
		return nil
	}

	courses, _, err := cli.dashSvc.Snapshot(context.Background())
	if err != nil {
		return errors.Wrap(err, "loading snapshot")
	}

	msg := &core.EmailMessage{
		Subject:      fmt.Sprintf("%d overdue, %d due soon", len(rem.Overdue), len(rem.DueSoon)),
		TemplateName: "reminder",
		TemplateData: rem,
	}
	for _, addr := range addrs {
		msg.To = append(msg.To, *addr)
	}
	feed := report.Calendar(courses, rem.Assignments(), now)
	if err := msg.Attach(strings.NewReader(feed), "studyflow.ics", report.CalendarMIME); err != nil {
		return err
	}

	if err := cli.mailer.SendMessages(msg); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "reminder sent to %d recipient(s)\n", len(msg.To))
	return nil
}
