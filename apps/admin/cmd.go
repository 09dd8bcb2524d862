package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/dashboard"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf       *core.Config
	out        io.Writer
	color      bool
	db         *sql.DB // postgres driver only
	courseRepo course.Repository
	asgRepo    assignment.Repository
	dashSvc    *dashboard.Service
	mailer     core.EmailService
	loc        *time.Location
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose migration command (postgres storage only)")
	fmt.Fprintln(cli.out, "  import -courses FILE -assignments FILE - import the JSON exports of the browser app")
	fmt.Fprintln(cli.out, "  report - print course standings & GPA")
	fmt.Fprintln(cli.out, "  export -o FILE - write the grade report as an xlsx workbook")
	fmt.Fprintln(cli.out, "  calendar -o FILE - write the assignment calendar as an iCalendar file")
	fmt.Fprintln(cli.out, "  remind -to ADDRESSES - email the overdue & due soon assignments")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importCourses := importCmd.String("courses", "", "Path of the legacy courses JSON file.")
	importAsgs := importCmd.String("assignments", "", "Path of the legacy assignments JSON file (optional).")

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportOut := exportCmd.String("o", "grades.xlsx", "Output file.")

	calendarCmd := flag.NewFlagSet("calendar", flag.ContinueOnError)
	calendarOut := calendarCmd.String("o", "studyflow.ics", "Output file.")

	remindCmd := flag.NewFlagSet("remind", flag.ContinueOnError)
	remindTo := remindCmd.String("to", "", "Comma separated recipients.")

	for _, fs := range []*flag.FlagSet{importCmd, exportCmd, calendarCmd, remindCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importCourses == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importLegacy(*importCourses, *importAsgs)
	case "report":
		return cli.report()
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.export(*exportOut)
	case "calendar":
		if err := calendarCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.calendar(*calendarOut)
	case "remind":
		if err := remindCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *remindTo == "" {
			remindCmd.Usage()
			return errHelp
		}
		return cli.remind(*remindTo)
	default:
		cli.printUsage()
		return errHelp
	}
}
