package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/studyflow/apps/api/echo"
	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/dashboard"
	"github.com/trezcool/studyflow/core/student"
	"github.com/trezcool/studyflow/services/logger"
	"github.com/trezcool/studyflow/tests"
)

// now is the frozen instant of every API test.
var now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

type env struct {
	app     Server
	repos   testutil.Repos
	dashSvc *dashboard.Service
}

func setup(t *testing.T) env {
	clock := func() time.Time { return now }
	NowFunc, course.NowFunc, assignment.NowFunc, student.NowFunc = clock, clock, clock, clock
	t.Cleanup(func() {
		NowFunc, course.NowFunc, assignment.NowFunc, student.NowFunc = time.Now, time.Now, time.Now, time.Now
	})

	// set up repos
	repos := testutil.PrepareRepos(t)

	// set up services
	engine, classifier := testutil.Engines()
	dashSvc := dashboard.NewService(repos.Course, repos.Assignment, engine, classifier)
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0), &core.Config{})

	// set up server
	app := NewServer(
		&Options{
			TestMode:       true,
			DisableReqLogs: true,
			Location:       time.UTC,
			Logger:         logger,
			CourseSvc:      course.NewService(repos.Course),
			AssignmentSvc:  assignment.NewService(repos.Assignment, repos.Course, classifier),
			DashboardSvc:   dashSvc,
			StudentSvc:     student.NewService(repos.Student),
		},
	)
	return env{app: app, repos: repos, dashSvc: dashSvc}
}

// views decorates asgs the way the API does.
func (e env) views(t *testing.T, asgs ...assignment.Assignment) []dashboard.AssignmentView {
	t.Helper()
	views, err := e.dashSvc.Views(context.Background(), asgs, now)
	if err != nil {
		t.Fatalf("views() failed: %v", err)
	}
	return views
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "status code")
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app Server, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
