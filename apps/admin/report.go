package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core/dashboard"
	"github.com/trezcool/studyflow/core/grade"
	"github.com/trezcool/studyflow/core/report"
)

var tierColors = map[grade.Tier]color.Attribute{
	grade.TierHigh:    color.FgGreen,
	grade.TierMidHigh: color.FgBlue,
	grade.TierMidLow:  color.FgYellow,
	grade.TierLow:     color.FgRed,
}

func (cli *commandLine) paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	if cli.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func (cli *commandLine) gradeReport() (dashboard.GradeReport, error) {
	rep, err := cli.dashSvc.GradeReport(context.Background())
	return rep, errors.Wrap(err, "computing grade report")
}

// report prints one row per course then the GPA.
func (cli *commandLine) report() error {
	rep, err := cli.gradeReport()
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out, cli.paint(color.FgCyan, "Course standings"))
	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"Course", "Credits", "Grade", "Letter", "Points", "Graded"})
	for _, st := range rep.Courses {
		row := []string{st.CourseName, fmt.Sprint(st.Credits), "-", "-", "-", fmt.Sprintf("%d/%d", st.Graded, st.Total)}
		if st.HasGrade() {
			row[2] = cli.paint(tierColors[st.Tier], fmt.Sprintf("%.1f%%", *st.Grade))
			row[3] = st.Letter
			row[4] = fmt.Sprintf("%.1f", *st.Points)
		}
		table.Append(row)
	}
	table.Render()

	fmt.Fprintf(cli.out, "GPA: %s (%d graded credits)\n", cli.paint(color.Bold, fmt.Sprintf("%.2f", rep.GPA)), rep.GradedCredits())
	fmt.Fprintf(cli.out, "Completion: %.0f%%\n", rep.CompletionRate)
	return nil
}

func (cli *commandLine) export(path string) error {
	rep, err := cli.gradeReport()
	if err != nil {
		return err
	}
	buf, err := report.GradeWorkbook(rep)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	fmt.Fprintf(cli.out, "grade report written to %s\n", path)
	return nil
}

func (cli *commandLine) calendar(path string) error {
	courses, asgs, err := cli.dashSvc.Snapshot(context.Background())
	if err != nil {
		return errors.Wrap(err, "loading snapshot")
	}
	feed := report.Calendar(courses, asgs, nowFunc())
	if err = os.WriteFile(path, []byte(feed), 0o644); err != nil {
		return errors.Wrap(err, "writing calendar")
	}
	fmt.Fprintf(cli.out, "calendar written to %s\n", path)
	return nil
}
