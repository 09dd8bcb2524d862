package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/duedate"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("assignment not found")
)

type (
	Repository interface {
		CreateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		QueryAssignmentsByCourseID(ctx context.Context, courseID int) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		UpdateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
		SetAssignmentCompleted(ctx context.Context, id int, completed bool, updatedAt time.Time) (Assignment, error)
		DeleteAssignmentsByID(ctx context.Context, ids ...int) error
		DeleteAssignmentsByCourseID(ctx context.Context, courseID int) error
	}

	Service struct {
		repo       Repository
		courseRepo course.Repository
		classifier *duedate.Classifier
	}
)

func NewService(repo Repository, courseRepo course.Repository, classifier *duedate.Classifier) *Service {
	return &Service{
		repo:       repo,
		courseRepo: courseRepo,
		classifier: classifier,
	}
}

// checkCourse enforces that courseID references an existing course.
func (svc *Service) checkCourse(ctx context.Context, courseID int) error {
	if _, err := svc.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		if err == course.ErrNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "course_id", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	if err := svc.checkCourse(ctx, na.CourseID); err != nil {
		return Assignment{}, err
	}

	now := NowFunc().UTC()
	asg := Assignment{
		CourseID:    na.CourseID,
		Title:       na.Title,
		Description: na.Description,
		Priority:    na.Priority,
		Type:        na.Type,
		Completed:   na.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if na.DueDate != nil {
		due := na.DueDate.UTC()
		asg.DueDate = &due
	}
	if na.Weight != nil {
		asg.Weight = core.Float64Ptr(*na.Weight)
	}
	if na.Grade != nil {
		asg.Grade = core.Float64Ptr(*na.Grade)
	}
	if asg.Priority == "" {
		asg.Priority = PriorityMedium
	}
	if asg.Type == "" {
		asg.Type = DefaultType
	}
	return svc.repo.CreateAssignment(ctx, asg)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAllAssignments(ctx)
}

func (svc *Service) QueryByCourseID(ctx context.Context, courseID int) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByCourseID(ctx, courseID)
}

// Filter applies AND operation on available QueryFilter fields, then sorts by QueryFilter.Orderings.
// now is the instant the overdue & due-today statuses are evaluated at.
func (svc *Service) Filter(ctx context.Context, filter QueryFilter, now time.Time) ([]Assignment, error) {
	asgs, err := svc.repo.QueryAllAssignments(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := svc.courseRepo.QueryAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(asgs, courses, filter, svc.classifier, now), nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	orig, err := svc.repo.GetAssignmentByID(ctx, id)
	if err != nil {
		return Assignment{}, err
	}
	if ua.CourseID != 0 && ua.CourseID != orig.CourseID {
		if err := svc.checkCourse(ctx, ua.CourseID); err != nil {
			return Assignment{}, err
		}
	}
	asg := ua.apply(orig)
	asg.UpdatedAt = NowFunc().UTC()
	return svc.repo.UpdateAssignment(ctx, asg)
}

func (svc *Service) ToggleComplete(ctx context.Context, id int, completed bool) (Assignment, error) {
	return svc.repo.SetAssignmentCompleted(ctx, id, completed, NowFunc().UTC())
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteAssignmentsByID(ctx, ids...)
}

func (svc *Service) DeleteByCourseID(ctx context.Context, courseID int) error {
	return svc.repo.DeleteAssignmentsByCourseID(ctx, courseID)
}
