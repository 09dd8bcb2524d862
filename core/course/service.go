package course

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("course not found")
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		DeleteCoursesByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	now := NowFunc().UTC()
	crs := Course{
		Name:       nc.Name,
		Instructor: nc.Instructor,
		Color:      nc.Color,
		Credits:    DefaultCredits,
		Semester:   nc.Semester,
		Schedule:   nc.Schedule,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if nc.Credits != nil {
		crs.Credits = *nc.Credits
	}
	if crs.Color == "" {
		crs.Color = RandomColor().Value
	}
	if crs.Semester == "" {
		crs.Semester = DefaultSemester
	}
	if crs.Schedule == nil {
		crs.Schedule = []ScheduleSlot{}
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

// Filter applies AND operation on available QueryFilter fields.
// QueryFilter.Search does a case-insensitive match on one of Course.Name or Course.Instructor.
func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	filter.Clean()
	if filter.IsEmpty() {
		return courses, nil
	}

	search := strings.ToLower(filter.Search)
	result := make([]Course, 0, len(courses))
	for _, crs := range courses {
		if search != "" &&
			!strings.Contains(strings.ToLower(crs.Name), search) &&
			!strings.Contains(strings.ToLower(crs.Instructor), search) {
			continue
		}
		if filter.Semester != "" && !strings.EqualFold(crs.Semester, filter.Semester) {
			continue
		}
		result = append(result, crs)
	}
	return result, nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

// Update expects uc to have been validated against the original Course (see UpdateCourse.Validate).
func (svc *Service) Update(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	orig, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	crs := Course{
		ID:         id,
		Name:       uc.Name,
		Instructor: uc.Instructor,
		Color:      uc.Color,
		Credits:    orig.Credits,
		Semester:   uc.Semester,
		Schedule:   uc.Schedule,
		CreatedAt:  orig.CreatedAt,
		UpdatedAt:  NowFunc().UTC(),
	}
	if uc.Credits != nil {
		crs.Credits = *uc.Credits
	}
	return svc.repo.UpdateCourse(ctx, crs)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteCoursesByID(ctx, ids...)
}
