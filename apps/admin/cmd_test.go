package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trezcool/goose"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/dashboard"
	"github.com/trezcool/studyflow/core/report"
	"github.com/trezcool/studyflow/services/email"
	"github.com/trezcool/studyflow/tests"
)

var now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*commandLine, testutil.Repos, *bytes.Buffer) {
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = time.Now })

	// set up repos
	repos := testutil.PrepareRepos(t)
	engine, classifier := testutil.Engines()

	// start CLI
	out := new(bytes.Buffer)
	conf := &core.Config{
		AppName: "StudyFlow",
		Storage: core.StorageConfig{Driver: core.StorageMemory},
		Email:   core.EmailConfig{Backend: core.EmailConsole, FromAddress: "noreply@studyflow.test"},
	}
	return &commandLine{
		conf:       conf,
		out:        out,
		mailer:     emailsvc.NewConsoleService(out, conf),
		courseRepo: repos.Course,
		asgRepo:    repos.Assignment,
		dashSvc:    dashboard.NewService(repos.Course, repos.Assignment, engine, classifier),
		loc:        time.UTC,
	}, repos, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			} else if tt.wantErr != nil || tt.wantErrStr != "" {
				t.Errorf("cli.run() error = nil, wantErr %v%s", tt.wantErr, tt.wantErrStr)
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, _, _ := setup(t)
	runCLITests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "import without courses", args: []string{"import"}, wantErr: errHelp},
		{name: "import unknown flag", args: []string{"import", "-lol"}, wantErr: errHelp},
	})
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _, _ := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "memory storage", args: []string{"migrate", "up"}, wantErr: errNotPostgres},
	})

	cli.conf.Storage.Driver = core.StoragePostgres
	t.Cleanup(func() { gooseRunFunc = goose.RunFS })
	gooseRunFunc = func(command string, db *sql.DB, fsys iofs.FS, dir string, args ...string) error {
		if _, err := iofs.Stat(fsys, path.Join(dir, "00001_create_courses.sql")); err != nil {
			return err
		}
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runCLITests(t, cli, []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "add_notes", "sql"}},
	})
}

func Test_commandLine_import(t *testing.T) {
	cli, repos, out := setup(t)
	dir := t.TempDir()

	coursesPath := filepath.Join(dir, "courses.json")
	asgsPath := filepath.Join(dir, "assignments.json")
	require.NoError(t, os.WriteFile(coursesPath, []byte(`[{"Id": 1, "name": "Physics", "credits": 4}]`), 0o600))
	require.NoError(t, os.WriteFile(asgsPath, []byte(`[
		{"Id": 1, "courseId": "1", "title": "Lab", "grade": 90},
		{"Id": 2, "courseId": "7", "title": "Lost"}
	]`), 0o600))

	runCLITests(t, cli, []cliTest{
		{name: "missing file", args: []string{"import", "-courses", filepath.Join(dir, "lol.json")}, wantErrStr: "opening import file: open " + filepath.Join(dir, "lol.json") + ": no such file or directory"},
		{name: "import", args: []string{"import", "-courses", coursesPath, "-assignments", asgsPath}},
	})

	assert.Contains(t, out.String(), "imported 1 course(s) and 1 assignment(s)\n")
	assert.Contains(t, out.String(), "skipped 1 assignment(s) of unknown courses: [2]\n")

	asgs, err := repos.Assignment.QueryAllAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, asgs, 1)
	assert.Equal(t, "Lab", asgs[0].Title)
}

func Test_commandLine_report(t *testing.T) {
	cli, repos, out := setup(t)
	physics := testutil.CreateCourse(t, repos.Course, "Physics", 4)
	testutil.CreateCourse(t, repos.Course, "Art", 2)
	testutil.CreateAssignment(t, repos.Assignment, physics.ID, "Lab", testutil.Graded(91), testutil.Completed())

	runCLITests(t, cli, []cliTest{{name: "report", args: []string{"report"}}})

	got := out.String()
	assert.Contains(t, got, "Course standings")
	assert.Contains(t, got, "91.0%")
	assert.Contains(t, got, "A-")
	assert.Contains(t, got, "GPA: 3.30 (4 graded credits)")
	assert.Contains(t, got, "Completion: 100%")
	assert.NotContains(t, got, "\x1b[", "no colours off a terminal")

	out.Reset()
	cli.color = true
	runCLITests(t, cli, []cliTest{{name: "report in colour", args: []string{"report"}}})
	assert.Contains(t, out.String(), "\x1b[")
}

func Test_commandLine_exports(t *testing.T) {
	cli, repos, _ := setup(t)
	dir := t.TempDir()
	physics := testutil.CreateCourse(t, repos.Course, "Physics", 4)
	testutil.CreateAssignment(t, repos.Assignment, physics.ID, "Lab", testutil.Graded(91), testutil.DueAt(now.AddDate(0, 0, 1)))

	xlsxPath := filepath.Join(dir, "grades.xlsx")
	icsPath := filepath.Join(dir, "studyflow.ics")
	runCLITests(t, cli, []cliTest{
		{name: "export", args: []string{"export", "-o", xlsxPath}},
		{name: "calendar", args: []string{"calendar", "-o", icsPath}},
	})

	wb, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows(report.GradesSheet)
	require.NoError(t, err)
	assert.Equal(t, "Physics", rows[1][0])

	f, err := os.Open(icsPath)
	require.NoError(t, err)
	defer f.Close()
	cal, err := ics.ParseCalendar(f)
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)
	assert.Equal(t, "Physics: Lab", cal.Events()[0].GetProperty(ics.ComponentPropertySummary).Value)
}

func Test_commandLine_remind(t *testing.T) {
	cli, repos, out := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no recipients", args: []string{"remind"}, wantErr: errHelp},
		{name: "nothing due", args: []string{"remind", "-to", "ada@studyflow.test"}},
	})
	assert.Contains(t, out.String(), "nothing to remind\n")

	err := cli.run([]string{"admin", "remind", "-to", "not an address"})
	assert.True(t, core.IsValidationError(err), "error = %v", err)

	physics := testutil.CreateCourse(t, repos.Course, "Physics", 4)
	testutil.CreateAssignment(t, repos.Assignment, physics.ID, "Lab", testutil.DueAt(now.AddDate(0, 0, -1)))
	testutil.CreateAssignment(t, repos.Assignment, physics.ID, "Quiz", testutil.DueAt(now.AddDate(0, 0, 2)))
	testutil.CreateAssignment(t, repos.Assignment, physics.ID, "Essay", testutil.DueAt(now.AddDate(0, 1, 0)))

	out.Reset()
	runCLITests(t, cli, []cliTest{
		{name: "remind", args: []string{"remind", "-to", "Ada <ada@studyflow.test>, bob@studyflow.test"}},
	})

	got := out.String()
	assert.Contains(t, got, "Subject: [StudyFlow] 1 overdue, 1 due soon\r\n")
	assert.Contains(t, got, "Physics: Lab (1 day overdue)")
	assert.Contains(t, got, "Physics: Quiz (Due in 2 days)")
	assert.NotContains(t, got, "Essay")
	assert.Contains(t, got, "filename=studyflow.ics")
	assert.Contains(t, got, "reminder sent to 2 recipient(s)\n")

	sent := cli.mailer.(*emailsvc.ConsoleService).SentMessages()
	require.Len(t, sent, 1)
	assert.Len(t, sent[0].To, 2)
}
