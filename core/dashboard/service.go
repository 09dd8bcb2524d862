package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/duedate"
	"github.com/trezcool/studyflow/core/grade"
)

type Service struct {
	courseRepo course.Repository
	asgRepo    assignment.Repository
	engine     *grade.Engine
	classifier *duedate.Classifier
}

func NewService(
	courseRepo course.Repository,
	asgRepo assignment.Repository,
	engine *grade.Engine,
	classifier *duedate.Classifier,
) *Service {
	return &Service{
		courseRepo: courseRepo,
		asgRepo:    asgRepo,
		engine:     engine,
		classifier: classifier,
	}
}

func (svc *Service) Engine() *grade.Engine { return svc.engine }

func (svc *Service) Classifier() *duedate.Classifier { return svc.classifier }

// Snapshot loads every course & assignment and validates them for the engines.
func (svc *Service) Snapshot(ctx context.Context) ([]course.Course, []assignment.Assignment, error) {
	courses, err := svc.courseRepo.QueryAllCourses(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying courses")
	}
	asgs, err := svc.asgRepo.QueryAllAssignments(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying assignments")
	}
	if err := grade.Validate(courses, asgs); err != nil {
		return nil, nil, err
	}
	return courses, asgs, nil
}

func (svc *Service) Summary(ctx context.Context, now time.Time) (Summary, error) {
	courses, asgs, err := svc.Snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(courses, asgs, svc.engine, svc.classifier, now), nil
}

func (svc *Service) Agenda(ctx context.Context, now time.Time, limit int) ([]AssignmentView, error) {
	courses, asgs, err := svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Agenda(courses, asgs, svc.classifier, now, limit), nil
}

func (svc *Service) Reminders(ctx context.Context, now time.Time) (Reminder, error) {
	courses, asgs, err := svc.Snapshot(ctx)
	if err != nil {
		return Reminder{}, err
	}
	return Reminders(courses, asgs, svc.classifier, now), nil
}

func (svc *Service) GradeReport(ctx context.Context) (GradeReport, error) {
	courses, asgs, err := svc.Snapshot(ctx)
	if err != nil {
		return GradeReport{}, err
	}
	return Report(courses, asgs, svc.engine), nil
}

// CourseStanding returns the grade standing of one course.
func (svc *Service) CourseStanding(ctx context.Context, courseID int) (grade.Standing, error) {
	crs, err := svc.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return grade.Standing{}, err
	}
	asgs, err := svc.asgRepo.QueryAssignmentsByCourseID(ctx, courseID)
	if err != nil {
		return grade.Standing{}, errors.Wrap(err, "querying course assignments")
	}
	if err := grade.Validate([]course.Course{crs}, asgs); err != nil {
		return grade.Standing{}, err
	}
	return svc.engine.CourseStanding(crs, asgs), nil
}

// Views decorates asgs for presentation as of now.
func (svc *Service) Views(ctx context.Context, asgs []assignment.Assignment, now time.Time) ([]AssignmentView, error) {
	courses, err := svc.courseRepo.QueryAllCourses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return Views(asgs, courses, svc.classifier, now), nil
}
