package legacy

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
)

func DecodeCourses(r io.Reader) ([]Course, error) {
	var courses []Course
	if err := json.NewDecoder(r).Decode(&courses); err != nil {
		return nil, errors.Wrap(err, "decoding legacy courses")
	}
	return courses, nil
}

func DecodeAssignments(r io.Reader) ([]Assignment, error) {
	var asgs []Assignment
	if err := json.NewDecoder(r).Decode(&asgs); err != nil {
		return nil, errors.Wrap(err, "decoding legacy assignments")
	}
	return asgs, nil
}

// ToCourse converts a legacy course. Missing values get the defaults of the course form.
func (lc Course) ToCourse(loc *time.Location, now time.Time) (course.Course, error) {
	created, err := lc.CreatedAt.parse(loc)
	if err != nil {
		return course.Course{}, core.NewValidationError(err, core.FieldError{Field: "createdAt", Error: err.Error()})
	}
	crs := course.Course{
		ID:         int(lc.ID),
		Name:       core.CleanString(lc.Name),
		Instructor: core.CleanString(lc.Instructor),
		Color:      course.ColorByValue(lc.Color).Value,
		Credits:    course.DefaultCredits,
		Semester:   core.CleanString(lc.Semester),
		Schedule:   make([]course.ScheduleSlot, 0, len(lc.Schedule)),
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}
	if lc.Credits.Set {
		if lc.Credits.Value != math.Trunc(lc.Credits.Value) {
			err := fmt.Errorf("credits must be a whole number (got %v)", lc.Credits.Value)
			return course.Course{}, core.NewValidationError(err, core.FieldError{Field: "credits", Error: err.Error()})
		}
		crs.Credits = int(lc.Credits.Value)
	}
	if crs.Semester == "" {
		crs.Semester = course.DefaultSemester
	}
	if created != nil {
		crs.CreatedAt = *created
	}
	for _, s := range lc.Schedule {
		if s.Day == "" || s.StartTime == "" || s.EndTime == "" {
			continue
		}
		crs.Schedule = append(crs.Schedule, course.ScheduleSlot{
			Day:       s.Day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Location:  s.Location,
		})
	}
	return crs, nil
}

// ToAssignment converts a legacy assignment. Zone-less dates are read in loc.
func (la Assignment) ToAssignment(loc *time.Location, now time.Time) (assignment.Assignment, error) {
	var flds []core.FieldError
	due, err := la.DueDate.parse(loc)
	if err != nil {
		flds = append(flds, core.FieldError{Field: "dueDate", Error: err.Error()})
	}
	created, err := la.CreatedAt.parse(loc)
	if err != nil {
		flds = append(flds, core.FieldError{Field: "createdAt", Error: err.Error()})
	}
	if len(flds) > 0 {
		return assignment.Assignment{}, core.NewValidationError(nil, flds...)
	}

	asg := assignment.Assignment{
		ID:          int(la.ID),
		CourseID:    int(la.CourseID),
		Title:       core.CleanString(la.Title),
		Description: core.CleanString(la.Description),
		DueDate:     due,
		Priority:    core.CleanString(la.Priority, true /* lower */),
		Type:        core.CleanString(la.Type),
		Weight:      la.Weight.ptr(),
		Grade:       la.Grade.ptr(),
		Completed:   la.Completed,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	// the browser app treated a 0 weight as unset
	if asg.Weight != nil && *asg.Weight == 0 {
		asg.Weight = nil
	}
	if assignment.PriorityRank(asg.Priority) == 0 {
		asg.Priority = assignment.PriorityMedium
	}
	if asg.Type == "" {
		asg.Type = assignment.DefaultType
	}
	if created != nil {
		asg.CreatedAt = *created
	}
	return asg, nil
}
