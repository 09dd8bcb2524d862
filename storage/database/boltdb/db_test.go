package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/student"
)

func openTestDB(t *testing.T) (string, *DB) {
	path := filepath.Join(t.TempDir(), "data", "studyflow.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return path, db
}

func TestCourseRepository(t *testing.T) {
	_, db := openTestDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	created := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	physics, err := repo.CreateCourse(ctx, course.Course{
		Name:      "Physics",
		Credits:   4,
		Schedule:  []course.ScheduleSlot{{Day: "Monday", StartTime: "09:00", EndTime: "10:00"}},
		CreatedAt: created,
		UpdatedAt: created,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, physics.ID)

	art, err := repo.CreateCourse(ctx, course.Course{Name: "Art", ID: 42})
	require.NoError(t, err)
	assert.Equal(t, 2, art.ID)

	got, err := repo.GetCourseByID(ctx, physics.ID)
	require.NoError(t, err)
	assert.Equal(t, physics, got)

	physics.Credits = 5
	updated, err := repo.UpdateCourse(ctx, physics)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Credits)

	_, err = repo.UpdateCourse(ctx, course.Course{ID: 404})
	assert.Equal(t, course.ErrNotFound, err)

	require.NoError(t, repo.DeleteCoursesByID(ctx, art.ID))
	courses, err := repo.QueryAllCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []course.Course{updated}, courses)

	_, err = repo.GetCourseByID(ctx, art.ID)
	assert.Equal(t, course.ErrNotFound, err)
}

func TestAssignmentRepository(t *testing.T) {
	_, db := openTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	due := time.Date(2024, time.March, 15, 17, 0, 0, 0, time.UTC)
	grade, weight := 88.5, 0.0
	a1, err := repo.CreateAssignment(ctx, assignment.Assignment{CourseID: 1, Title: "Lab", DueDate: &due, Grade: &grade, Weight: &weight})
	require.NoError(t, err)
	a2, err := repo.CreateAssignment(ctx, assignment.Assignment{CourseID: 2, Title: "Essay"})
	require.NoError(t, err)
	a3, err := repo.CreateAssignment(ctx, assignment.Assignment{CourseID: 2, Title: "Quiz"})
	require.NoError(t, err)

	got, err := repo.GetAssignmentByID(ctx, a1.ID)
	require.NoError(t, err)
	assert.Equal(t, a1, got)
	assert.Equal(t, 0.0, *got.Weight, "an explicit zero weight is kept")
	assert.Nil(t, a2.Grade)

	byCourse, err := repo.QueryAssignmentsByCourseID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []assignment.Assignment{a2, a3}, byCourse)

	stamp := due.Add(time.Hour)
	done, err := repo.SetAssignmentCompleted(ctx, a2.ID, true, stamp)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, stamp, done.UpdatedAt)

	_, err = repo.SetAssignmentCompleted(ctx, 404, true, stamp)
	assert.Equal(t, assignment.ErrNotFound, err)

	a3.Title = "Pop quiz"
	a3, err = repo.UpdateAssignment(ctx, a3)
	require.NoError(t, err)
	assert.Equal(t, "Pop quiz", a3.Title)

	require.NoError(t, repo.DeleteAssignmentsByCourseID(ctx, 2))
	all, err := repo.QueryAllAssignments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []assignment.Assignment{a1}, all)

	require.NoError(t, repo.DeleteAssignmentsByID(ctx, a1.ID))
	all, err = repo.QueryAllAssignments(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStudentRepository(t *testing.T) {
	_, db := openTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	enrolled := time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)
	ada, err := repo.CreateStudent(ctx, student.Student{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		StudentID:      "STU001",
		Major:          "Mathematics",
		Year:           2,
		GPA:            3.9,
		Status:         student.StatusActive,
		EnrollmentDate: enrolled,
		CreatedAt:      enrolled,
		UpdatedAt:      enrolled,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ada.ID)

	alan, err := repo.CreateStudent(ctx, student.Student{Email: "alan@example.com", StudentID: "STU002", ID: 42})
	require.NoError(t, err)
	assert.Equal(t, 2, alan.ID)

	got, err := repo.GetStudentByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada, got)

	tests := []struct {
		name      string
		email     string
		studentID string
		excluded  []student.Student
		wantErr   error
	}{
		{name: "unique", email: "grace@example.com", studentID: "STU003"},
		{name: "email taken", email: "ada@example.com", studentID: "STU003", wantErr: student.ErrEmailExists},
		{name: "student ID taken", email: "grace@example.com", studentID: "STU002", wantErr: student.ErrStudentIDExists},
		{name: "own values", email: "ada@example.com", studentID: "STU001", excluded: []student.Student{ada}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.CheckStudentUniqueness(ctx, tt.email, tt.studentID, tt.excluded...)
			assert.Equal(t, tt.wantErr, err)
		})
	}

	ada.Status = student.StatusGraduated
	updated, err := repo.UpdateStudent(ctx, ada)
	require.NoError(t, err)
	assert.Equal(t, student.StatusGraduated, updated.Status)

	_, err = repo.UpdateStudent(ctx, student.Student{ID: 404})
	assert.Equal(t, student.ErrNotFound, err)

	require.NoError(t, repo.DeleteStudentsByID(ctx, alan.ID))
	students, err := repo.QueryAllStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []student.Student{updated}, students)

	_, err = repo.GetStudentByID(ctx, alan.ID)
	assert.Equal(t, student.ErrNotFound, err)
}

func TestOpen_persists(t *testing.T) {
	path, db := openTestDB(t)
	_, err := NewCourseRepository(db).CreateCourse(context.Background(), course.Course{Name: "Physics"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	courses, err := NewCourseRepository(db).QueryAllCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Physics", courses[0].Name)
}

func TestClosedDB_isShutdown(t *testing.T) {
	_, db := openTestDB(t)
	require.NoError(t, db.Close())

	_, err := NewCourseRepository(db).QueryAllCourses(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsShutdown(err), "error = %v", err)

	_, err = NewAssignmentRepository(db).CreateAssignment(context.Background(), assignment.Assignment{Title: "Lab"})
	assert.True(t, core.IsShutdown(err), "error = %v", err)
}
