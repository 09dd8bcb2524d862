package grade

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
)

var errInvalidSnapshot = errors.New("invalid grading data")

// Validate checks the type contract of a snapshot before it reaches the Engine.
// It returns a *core.ValidationError listing every offending field, or nil.
func Validate(courses []course.Course, asgs []assignment.Assignment) error {
	var flds []core.FieldError
	for i, crs := range courses {
		if crs.Credits < 0 {
			flds = append(flds, core.FieldError{
				Field: fmt.Sprintf("courses[%d].credits", i),
				Error: fmt.Sprintf("course %d has negative credits (%d)", crs.ID, crs.Credits),
			})
		}
	}
	for i, asg := range asgs {
		if asg.Grade != nil {
			if g := *asg.Grade; !isFinite(g) || g < 0 || g > 100 {
				flds = append(flds, core.FieldError{
					Field: fmt.Sprintf("assignments[%d].grade", i),
					Error: fmt.Sprintf("assignment %d has a grade outside [0, 100] (%v)", asg.ID, g),
				})
			}
		}
		if asg.Weight != nil {
			if w := *asg.Weight; !isFinite(w) || w < 0 {
				flds = append(flds, core.FieldError{
					Field: fmt.Sprintf("assignments[%d].weight", i),
					Error: fmt.Sprintf("assignment %d has an invalid weight (%v)", asg.ID, w),
				})
			}
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(errInvalidSnapshot, flds...)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
