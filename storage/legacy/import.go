package legacy

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/grade"
)

type (
	Importer struct {
		courseRepo course.Repository
		asgRepo    assignment.Repository
		loc        *time.Location
		now        func() time.Time
	}

	// Result sums up an import. Orphans are the legacy ids of the assignments whose course is unknown.
	Result struct {
		Courses     int
		Assignments int
		Orphans     []int
	}
)

// NewImporter returns an Importer reading zone-less dates in loc (UTC when nil).
func NewImporter(courseRepo course.Repository, asgRepo assignment.Repository, loc *time.Location) *Importer {
	if loc == nil {
		loc = time.UTC
	}
	return &Importer{
		courseRepo: courseRepo,
		asgRepo:    asgRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// Convert turns legacy records into canonical ones, keeping the legacy ids, and validates them for grading.
func (im *Importer) Convert(lcourses []Course, lasgs []Assignment) ([]course.Course, []assignment.Assignment, error) {
	now := im.now()
	courses := make([]course.Course, 0, len(lcourses))
	seen := make(map[int]bool, len(lcourses))
	for i, lc := range lcourses {
		crs, err := lc.ToCourse(im.loc, now)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "course #%d", i)
		}
		if seen[crs.ID] {
			err := fmt.Errorf("duplicate course Id %d", crs.ID)
			return nil, nil, core.NewValidationError(err, core.FieldError{Field: fmt.Sprintf("courses[%d].Id", i), Error: err.Error()})
		}
		seen[crs.ID] = true
		courses = append(courses, crs)
	}
	asgs := make([]assignment.Assignment, 0, len(lasgs))
	for i, la := range lasgs {
		asg, err := la.ToAssignment(im.loc, now)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "assignment #%d", i)
		}
		asgs = append(asgs, asg)
	}
	if err := grade.Validate(courses, asgs); err != nil {
		return nil, nil, err
	}
	return courses, asgs, nil
}

// Import converts then stores the legacy records. Course ids are reassigned by the repository,
// assignments follow their course.
func (im *Importer) Import(ctx context.Context, lcourses []Course, lasgs []Assignment) (Result, error) {
	var res Result
	courses, asgs, err := im.Convert(lcourses, lasgs)
	if err != nil {
		return res, err
	}

	ids := make(map[int]int, len(courses))
	for _, crs := range courses {
		legacyID := crs.ID
		crs.ID = 0
		created, err := im.courseRepo.CreateCourse(ctx, crs)
		if err != nil {
			return res, errors.Wrapf(err, "creating course %q", crs.Name)
		}
		ids[legacyID] = created.ID
		res.Courses++
	}

	for _, asg := range asgs {
		courseID, ok := ids[asg.CourseID]
		if !ok {
			res.Orphans = append(res.Orphans, asg.ID)
			continue
		}
		asg.ID = 0
		asg.CourseID = courseID
		if _, err := im.asgRepo.CreateAssignment(ctx, asg); err != nil {
			return res, errors.Wrapf(err, "creating assignment %q", asg.Title)
		}
		res.Assignments++
	}
	return res, nil
}
