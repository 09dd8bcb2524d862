package tests

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/grade"
	"github.com/trezcool/studyflow/tests"
)

func Test_home(t *testing.T) {
	e := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	e.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to StudyFlow API!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func Test_courseApi_query(t *testing.T) {
	e := setup(t)
	path := func(search, semester string) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		if semester != "" {
			v.Add("semester", semester)
		}
		return "/v1/courses?" + v.Encode()
	}

	algebra := testutil.CreateCourse(t, e.repos.Course, "Linear Algebra", 3)
	physics := testutil.CreateCourse(t, e.repos.Course, "Physics", 4)

	runHTTPTests(t, e.app, []httpTest{
		{name: "all", path: "/v1/courses", wantCode: http.StatusOK, wantData: marchallList(t, algebra, physics)},
		{name: "trailing slash", path: "/v1/courses/", wantCode: http.StatusOK, wantData: marchallList(t, algebra, physics)},
		{name: "search", path: path("PHYS", ""), wantCode: http.StatusOK, wantData: marchallList(t, physics)},
		{name: "semester", path: path("", course.DefaultSemester), wantCode: http.StatusOK, wantData: marchallList(t, algebra, physics)},
		{name: "no match", path: path("lol", ""), wantCode: http.StatusOK, wantData: marchallList(t)},
	})
}

func Test_courseApi_create(t *testing.T) {
	e := setup(t)

	runHTTPTests(t, e.app, []httpTest{
		{
			name: "name required", method: http.MethodPost, path: "/v1/courses",
			body:     []byte(`{"name": "  "}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "too many credits", method: http.MethodPost, path: "/v1/courses",
			body: []byte(`{"name": "Physics", "credits": 13}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "bad schedule", method: http.MethodPost, path: "/v1/courses",
			body:     []byte(`{"name": "Physics", "schedule": [{"day": "Monday", "start_time": "10:00", "end_time": "09:00"}]}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/v1/courses",
			body: []byte(`{"name": `), wantCode: http.StatusBadRequest,
		},
	})

	req, rec := newRequest(http.MethodPost, "/v1/courses", []byte(`{"name": " Physics ", "credits": 0, "color": "#F43F5E"}`))
	e.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	crs, err := e.repos.Course.GetCourseByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Physics", crs.Name)
	assert.Equal(t, 0, crs.Credits)
	assert.Equal(t, "#f43f5e", crs.Color)
	checkCodeAndData(t, httpTest{wantCode: http.StatusCreated, wantData: marchallObj(t, crs)}, rec)
}

func Test_courseApi_detail(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	physics := testutil.CreateCourse(t, e.repos.Course, "Physics", 4)
	other := testutil.CreateCourse(t, e.repos.Course, "Other", 3)
	lab := testutil.CreateAssignment(t, e.repos.Assignment, physics.ID, "Lab", testutil.Graded(90), testutil.Weighted(2))
	quiz := testutil.CreateAssignment(t, e.repos.Assignment, physics.ID, "Quiz", testutil.Graded(75))
	testutil.CreateAssignment(t, e.repos.Assignment, other.ID, "noise")

	engine, _ := testutil.Engines()
	standing := engine.CourseStanding(physics, []assignment.Assignment{lab, quiz})
	errNotFound := marchallObj(t, httpErr{Error: "not found"})

	runHTTPTests(t, e.app, []httpTest{
		{name: "retrieve", path: fmt.Sprintf("/v1/courses/%d", physics.ID), wantCode: http.StatusOK, wantData: marchallObj(t, physics)},
		{name: "unknown", path: "/v1/courses/404", wantCode: http.StatusNotFound, wantData: errNotFound},
		{name: "malformed id", path: "/v1/courses/lol", wantCode: http.StatusNotFound, wantData: errNotFound},
		{
			name: "assignments", path: fmt.Sprintf("/v1/courses/%d/assignments?ordering=title", physics.ID),
			wantCode: http.StatusOK, wantData: marchallObj(t, e.views(t, lab, quiz)),
		},
		{
			name: "assignments desc", path: fmt.Sprintf("/v1/courses/%d/assignments?ordering=-title", physics.ID),
			wantCode: http.StatusOK, wantData: marchallObj(t, e.views(t, quiz, lab)),
		},
		{name: "grade", path: fmt.Sprintf("/v1/courses/%d/grade", physics.ID), wantCode: http.StatusOK, wantData: marchallObj(t, standing)},
		{name: "grade unknown", path: "/v1/courses/404/grade", wantCode: http.StatusNotFound, wantData: errNotFound},
	})

	assert.InDelta(t, 85.0, *standing.Grade, 1e-9)
	assert.Equal(t, grade.TierMidHigh, standing.Tier)

	// update
	req, rec := newRequest(http.MethodPut, fmt.Sprintf("/v1/courses/%d", physics.ID), []byte(`{"name": "Physics II", "credits": 5}`))
	e.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated, err := e.repos.Course.GetCourseByID(ctx, physics.ID)
	require.NoError(t, err)
	assert.Equal(t, "Physics II", updated.Name)
	assert.Equal(t, 5, updated.Credits)
	assert.Equal(t, physics.Color, updated.Color)
	assert.Equal(t, now, updated.UpdatedAt)

	// delete cascades to the course assignments
	req, rec = newRequest(http.MethodDelete, fmt.Sprintf("/v1/courses/%d", physics.ID))
	e.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	_, err = e.repos.Course.GetCourseByID(ctx, physics.ID)
	assert.Equal(t, course.ErrNotFound, err)
	left, err := e.repos.Assignment.QueryAllAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "noise", left[0].Title)
}
