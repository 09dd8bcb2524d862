package legacy

import (
	"context"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/tests"
)

var now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

const coursesJSON = `[
  {"Id": 7, "name": " Physics ", "instructor": "Dr. Curie", "color": "#10b981", "credits": "4",
   "semester": "", "schedule": [{"day": "Monday", "startTime": "09:00", "endTime": "10:00"}, {"day": "Friday"}],
   "createdAt": "2024-01-08T10:00:00.000Z"},
  {"Id": "9", "name": "Art", "color": "#badbad", "credits": null}
]`

const assignmentsJSON = `[
  {"Id": 1, "courseId": "7", "title": "Lab", "dueDate": "2024-03-15T23:59", "priority": "HIGH",
   "weight": "2", "grade": 91, "completed": true},
  {"Id": 2, "courseId": 9, "title": "Sketch", "dueDate": "", "weight": 0, "grade": ""},
  {"Id": 3, "courseId": 42, "title": "Orphan", "dueDate": "2024-03-20"}
]`

func decode(t *testing.T) ([]Course, []Assignment) {
	t.Helper()
	lcourses, err := DecodeCourses(strings.NewReader(coursesJSON))
	require.NoError(t, err)
	lasgs, err := DecodeAssignments(strings.NewReader(assignmentsJSON))
	require.NoError(t, err)
	return lcourses, lasgs
}

func TestCourse_ToCourse(t *testing.T) {
	lcourses, _ := decode(t)
	require.Len(t, lcourses, 2)

	crs, err := lcourses[0].ToCourse(time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, 7, crs.ID)
	assert.Equal(t, "Physics", crs.Name)
	assert.Equal(t, 4, crs.Credits)
	assert.Equal(t, course.DefaultSemester, crs.Semester)
	assert.Equal(t, "#10b981", crs.Color)
	assert.Equal(t, []course.ScheduleSlot{{Day: "Monday", StartTime: "09:00", EndTime: "10:00"}}, crs.Schedule)
	assert.Equal(t, time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC), crs.CreatedAt)

	crs, err = lcourses[1].ToCourse(time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, 9, crs.ID)
	assert.Equal(t, course.DefaultCredits, crs.Credits)
	assert.Equal(t, course.Colors[0].Value, crs.Color)
	assert.Equal(t, now, crs.CreatedAt)

	_, err = Course{Name: "Half", Credits: flexFloat{Value: 1.5, Set: true}}.ToCourse(time.UTC, now)
	assert.True(t, core.IsValidationError(err))
}

func TestAssignment_ToAssignment(t *testing.T) {
	_, lasgs := decode(t)
	require.Len(t, lasgs, 3)
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)

	asg, err := lasgs[0].ToAssignment(nairobi, now)
	require.NoError(t, err)
	assert.Equal(t, 7, asg.CourseID)
	assert.Equal(t, assignment.PriorityHigh, asg.Priority)
	assert.Equal(t, assignment.DefaultType, asg.Type)
	assert.Equal(t, 2.0, *asg.Weight)
	assert.Equal(t, 91.0, *asg.Grade)
	assert.True(t, asg.Completed)
	assert.Equal(t, time.Date(2024, time.March, 15, 20, 59, 0, 0, time.UTC), *asg.DueDate)

	asg, err = lasgs[1].ToAssignment(nairobi, now)
	require.NoError(t, err)
	assert.Equal(t, 9, asg.CourseID)
	assert.Nil(t, asg.DueDate)
	assert.Nil(t, asg.Weight, "a 0 weight counts as the default weight")
	assert.Nil(t, asg.Grade)
	assert.Equal(t, assignment.PriorityMedium, asg.Priority)

	_, err = Assignment{Title: "bad", DueDate: "next friday"}.ToAssignment(time.UTC, now)
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "error type = %T", err)
	assert.Equal(t, "dueDate", vErr.Fields[0].Field)
}

func TestDecode_invalid(t *testing.T) {
	_, err := DecodeAssignments(strings.NewReader(`[{"Id": "one"}]`))
	assert.Error(t, err)

	_, err = DecodeCourses(strings.NewReader(`{"Id": 1}`))
	assert.Error(t, err)
}

func TestImporter_Import(t *testing.T) {
	repos := testutil.PrepareRepos(t)
	ctx := context.Background()
	testutil.CreateCourse(t, repos.Course, "Existing", 3)

	im := NewImporter(repos.Course, repos.Assignment, nil)
	im.now = func() time.Time { return now }

	lcourses, lasgs := decode(t)
	res, err := im.Import(ctx, lcourses, lasgs)
	require.NoError(t, err)
	assert.Equal(t, Result{Courses: 2, Assignments: 2, Orphans: []int{3}}, res)

	courses, err := repos.Course.QueryAllCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	physics, art := courses[1], courses[2]
	assert.Equal(t, "Physics", physics.Name)
	assert.Equal(t, "Art", art.Name)

	asgs, err := repos.Assignment.QueryAssignmentsByCourseID(ctx, physics.ID)
	require.NoError(t, err)
	require.Len(t, asgs, 1)
	assert.Equal(t, "Lab", asgs[0].Title)

	asgs, err = repos.Assignment.QueryAssignmentsByCourseID(ctx, art.ID)
	require.NoError(t, err)
	require.Len(t, asgs, 1)
	assert.Equal(t, "Sketch", asgs[0].Title)
}

func TestImporter_Import_rejects(t *testing.T) {
	tests := []struct {
		name     string
		lcourses []Course
		lasgs    []Assignment
	}{
		{
			name:     "grade out of range",
			lcourses: []Course{{ID: 1, Name: "Physics"}},
			lasgs:    []Assignment{{ID: 1, CourseID: 1, Title: "Lab", Grade: flexFloat{Value: 140, Set: true}}},
		},
		{
			name:     "negative credits",
			lcourses: []Course{{ID: 1, Name: "Physics", Credits: flexFloat{Value: -3, Set: true}}},
		},
		{
			name:     "duplicate ids",
			lcourses: []Course{{ID: 1, Name: "Physics"}, {ID: 1, Name: "Art"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := testutil.PrepareRepos(t)
			im := NewImporter(repos.Course, repos.Assignment, time.UTC)

			_, err := im.Import(context.Background(), tt.lcourses, tt.lasgs)
			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))
		})
	}
}
