package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/duedate"
	"github.com/trezcool/studyflow/core/grade"
	"github.com/trezcool/studyflow/core/student"
	"github.com/trezcool/studyflow/storage/database/inmem"
)

type Repos struct {
	DB         *inmemdb.DB
	Course     course.Repository
	Assignment assignment.Repository
	Student    student.Repository
}

// PrepareRepos returns fresh in-memory repositories.
func PrepareRepos(t *testing.T) Repos {
	t.Helper()
	db := inmemdb.Open()
	return Repos{
		DB:         db,
		Course:     inmemdb.NewCourseRepository(db),
		Assignment: inmemdb.NewAssignmentRepository(db),
		Student:    inmemdb.NewStudentRepository(db),
	}
}

func Engines() (*grade.Engine, *duedate.Classifier) {
	return grade.NewEngine(grade.DefaultWeight), duedate.NewClassifier(duedate.DefaultConfig())
}

func CreateCourse(t *testing.T, repo course.Repository, name string, credits int, createdAt ...time.Time) course.Course {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	crs := course.Course{
		Name:      name,
		Color:     course.Colors[0].Value,
		Credits:   credits,
		Semester:  course.DefaultSemester,
		Schedule:  []course.ScheduleSlot{},
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	crs, err := repo.CreateCourse(context.Background(), crs)
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return crs
}

// AssignmentOption customises an assignment created with CreateAssignment.
type AssignmentOption func(asg *assignment.Assignment)

func DueAt(due time.Time) AssignmentOption {
	return func(asg *assignment.Assignment) {
		due = due.UTC()
		asg.DueDate = &due
	}
}

func Graded(g float64) AssignmentOption {
	return func(asg *assignment.Assignment) { asg.Grade = &g }
}

func Weighted(w float64) AssignmentOption {
	return func(asg *assignment.Assignment) { asg.Weight = &w }
}

func Priority(p string) AssignmentOption {
	return func(asg *assignment.Assignment) { asg.Priority = p }
}

func Completed() AssignmentOption {
	return func(asg *assignment.Assignment) { asg.Completed = true }
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	courseID int,
	title string,
	opts ...AssignmentOption,
) assignment.Assignment {
	t.Helper()
	tstamp := time.Now().UTC()
	asg := assignment.Assignment{
		CourseID:  courseID,
		Title:     title,
		Priority:  assignment.PriorityMedium,
		Type:      assignment.DefaultType,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	for _, opt := range opts {
		opt(&asg)
	}
	asg, err := repo.CreateAssignment(context.Background(), asg)
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return asg
}

// StudentOption customises a student created with CreateStudent.
type StudentOption func(std *student.Student)

func Major(major string) StudentOption {
	return func(std *student.Student) { std.Major = major }
}

func Year(year int) StudentOption {
	return func(std *student.Student) { std.Year = year }
}

func Status(status string) StudentOption {
	return func(std *student.Student) { std.Status = status }
}

// CreateStudent creates an active freshman; email & student ID derive from the names.
func CreateStudent(
	t *testing.T,
	repo student.Repository,
	firstName, lastName, studentID string,
	opts ...StudentOption,
) student.Student {
	t.Helper()
	tstamp := time.Now().UTC()
	y, m, d := tstamp.Date()
	std := student.Student{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          strings.ToLower(firstName + "." + lastName + "@example.com"),
		StudentID:      studentID,
		Year:           student.DefaultYear,
		Status:         student.StatusActive,
		EnrollmentDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		CreatedAt:      tstamp,
		UpdatedAt:      tstamp,
	}
	for _, opt := range opts {
		opt(&std)
	}
	std, err := repo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}
