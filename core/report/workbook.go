// Package report renders grade reports & assignment calendars into files other tools can open.
package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/studyflow/core/dashboard"
)

const (
	GradesSheet     = "Grades"
	WorkbookMIME    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	WorkbookFileExt = ".xlsx"
)

var gradeHeader = []string{"Course", "Credits", "Grade (%)", "Letter", "Points", "Graded", "Total"}

// GradeWorkbook renders report as an xlsx workbook: a header row, one row per course and a GPA footer.
// Courses without a grade show "-" in their grade columns.
func GradeWorkbook(report dashboard.GradeReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(GradesSheet)
	if err != nil {
		return nil, errors.Wrap(err, "creating sheet")
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	w := sheetWriter{f: f, sheet: GradesSheet}
	w.row(1, toCells(gradeHeader)...)

	row := 2
	for _, st := range report.Courses {
		gradeCell, letter, points := interface{}("-"), "-", interface{}("-")
		if st.HasGrade() {
			gradeCell = round2(*st.Grade)
			letter = st.Letter
			points = round2(*st.Points)
		}
		w.row(row, st.CourseName, st.Credits, gradeCell, letter, points, st.Graded, st.Total)
		row++
	}

	footer := row + 1
	w.row(footer, "GPA", round2(report.GPA))
	w.row(footer+1, "Graded credits", report.GradedCredits())
	w.row(footer+2, "Completion (%)", round2(report.CompletionRate))
	if w.err != nil {
		return nil, w.err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "creating header style")
	}
	last, _ := excelize.ColumnNumberToName(len(gradeHeader))
	if err = f.SetCellStyle(GradesSheet, "A1", last+"1", bold); err != nil {
		return nil, errors.Wrap(err, "styling header")
	}
	if err = f.SetCellStyle(GradesSheet, cell(1, footer), cell(1, footer+2), bold); err != nil {
		return nil, errors.Wrap(err, "styling footer")
	}
	f.SetColWidth(GradesSheet, "A", "A", 28)

	buf := new(bytes.Buffer)
	if err = f.Write(buf); err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf, nil
}

// sheetWriter keeps the first error of a sequence of writes.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) row(row int, values ...interface{}) {
	for i, v := range values {
		if w.err != nil {
			return
		}
		if err := w.f.SetCellValue(w.sheet, cell(i+1, row), v); err != nil {
			w.err = errors.Wrapf(err, "writing cell %s", cell(i+1, row))
		}
	}
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("A%d", row)
	}
	return name
}

func toCells(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
