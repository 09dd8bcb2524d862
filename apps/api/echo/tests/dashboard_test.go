package tests

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/studyflow/core/report"
	"github.com/trezcool/studyflow/tests"
)

func Test_dashboardApi(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	physics := testutil.CreateCourse(t, e.repos.Course, "Physics", 4)
	art := testutil.CreateCourse(t, e.repos.Course, "Art", 2)

	testutil.CreateAssignment(t, e.repos.Assignment, physics.ID, "Lab", testutil.DueAt(now.AddDate(0, 0, 2)), testutil.Graded(91))
	testutil.CreateAssignment(t, e.repos.Assignment, physics.ID, "Exam", testutil.DueAt(now.AddDate(0, 0, -3)), testutil.Completed(), testutil.Graded(83))
	testutil.CreateAssignment(t, e.repos.Assignment, art.ID, "Sketch", testutil.DueAt(now.Add(2*time.Hour)))

	sum, err := e.dashSvc.Summary(ctx, now)
	require.NoError(t, err)
	agenda, err := e.dashSvc.Agenda(ctx, now, 1)
	require.NoError(t, err)
	grades, err := e.dashSvc.GradeReport(ctx)
	require.NoError(t, err)
	reminders, err := e.dashSvc.Reminders(ctx, now)
	require.NoError(t, err)

	runHTTPTests(t, e.app, []httpTest{
		{name: "dashboard", path: "/v1/dashboard", wantCode: http.StatusOK, wantData: marchallObj(t, sum)},
		{name: "agenda", path: "/v1/agenda?limit=1", wantCode: http.StatusOK, wantData: marchallObj(t, agenda)},
		{name: "grades", path: "/v1/grades", wantCode: http.StatusOK, wantData: marchallObj(t, grades)},
		{name: "reminders", path: "/v1/reminders", wantCode: http.StatusOK, wantData: marchallObj(t, reminders)},
	})

	assert.Equal(t, 1, sum.Stats.DueToday)
	assert.Equal(t, "Sketch", agenda[0].Title)
	assert.Equal(t, []string{"Art", "Physics"}, []string{grades.Courses[0].CourseName, grades.Courses[1].CourseName})
}

func Test_dashboardApi_invalidData(t *testing.T) {
	e := setup(t)
	crs := testutil.CreateCourse(t, e.repos.Course, "Physics", 4)
	testutil.CreateAssignment(t, e.repos.Assignment, crs.ID, "broken", testutil.Graded(140))

	runHTTPTests(t, e.app, []httpTest{
		{name: "dashboard", path: "/v1/dashboard", wantCode: http.StatusBadRequest},
		{name: "grades", path: "/v1/grades", wantCode: http.StatusBadRequest},
	})
}

func Test_dashboardApi_exportGrades(t *testing.T) {
	e := setup(t)
	crs := testutil.CreateCourse(t, e.repos.Course, "Physics", 4)
	testutil.CreateAssignment(t, e.repos.Assignment, crs.ID, "Lab", testutil.Graded(91))

	req, rec := newRequest(http.MethodGet, "/v1/grades/export")
	e.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, report.WorkbookMIME, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="grades_2024-03-10.xlsx"`, rec.Header().Get("Content-Disposition"))

	wb, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows(report.GradesSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Physics", "4", "91", "A-", "3.3", "1", "1"}, rows[1])
}

func Test_dashboardApi_calendar(t *testing.T) {
	e := setup(t)
	crs := testutil.CreateCourse(t, e.repos.Course, "Physics", 4)
	lab := testutil.CreateAssignment(t, e.repos.Assignment, crs.ID, "Lab", testutil.DueAt(now.AddDate(0, 0, 2)))
	testutil.CreateAssignment(t, e.repos.Assignment, crs.ID, "Reading")

	req, rec := newRequest(http.MethodGet, "/v1/calendar.ics")
	e.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, report.CalendarMIME, rec.Header().Get("Content-Type"))

	cal, err := ics.ParseCalendar(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	assert.Equal(t, report.EventUID(lab), events[0].Id())
	assert.Equal(t, "Physics: Lab", events[0].GetProperty(ics.ComponentPropertySummary).Value)
}
