// Package grade derives course grades, letter grades and GPA from course & assignment snapshots.
//
// The functions of this package never fail: missing data yields neutral results (no grade, 0 GPA).
// Snapshots coming from outside the process should go through Validate first.
package grade

import (
	"math"

	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
)

const DefaultWeight = 1.0

type Engine struct {
	defaultWeight float64
}

// NewEngine returns an Engine weighting assignments without an explicit weight by defaultWeight.
// A non-positive or non-finite defaultWeight falls back to DefaultWeight.
func NewEngine(defaultWeight float64) *Engine {
	if !(defaultWeight > 0) || math.IsInf(defaultWeight, 0) {
		defaultWeight = DefaultWeight
	}
	return &Engine{defaultWeight: defaultWeight}
}

func (e *Engine) DefaultWeight() float64 { return e.defaultWeight }

// weight resolves an assignment's weight. An explicit 0 is kept: the assignment then has no influence.
func (e *Engine) weight(asg assignment.Assignment) float64 {
	if asg.Weight == nil {
		return e.defaultWeight
	}
	return *asg.Weight
}

// CourseGrade is the weighted average of the graded assignments of one course.
// Ungraded assignments are ignored; ok is false when nothing carries weight yet.
func (e *Engine) CourseGrade(asgs []assignment.Assignment) (pct float64, ok bool) {
	var score, total float64
	for _, asg := range asgs {
		if asg.Grade == nil {
			continue
		}
		w := e.weight(asg)
		if w <= 0 {
			continue
		}
		score += *asg.Grade * w
		total += w
	}
	if total <= 0 {
		return 0, false
	}
	return score / total, true
}

// GPA is the credit-weighted mean of course grade points.
// Courses without a course grade are skipped entirely: they add neither points nor credits.
func (e *Engine) GPA(courses []course.Course, asgs []assignment.Assignment) float64 {
	byCourse := GroupByCourse(asgs)

	var points, credits float64
	for _, crs := range courses {
		pct, ok := e.CourseGrade(byCourse[crs.ID])
		if !ok || crs.Credits <= 0 {
			continue
		}
		points += Points(pct) * float64(crs.Credits)
		credits += float64(crs.Credits)
	}
	if credits == 0 {
		return 0
	}
	return points / credits
}

// CompletionRate is the percentage of completed assignments, 0 when there are none.
func CompletionRate(asgs []assignment.Assignment) float64 {
	if len(asgs) == 0 {
		return 0
	}
	var completed int
	for _, asg := range asgs {
		if asg.Completed {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(asgs))
}

// GroupByCourse indexes assignments by course ID, keeping their order.
func GroupByCourse(asgs []assignment.Assignment) map[int][]assignment.Assignment {
	byCourse := make(map[int][]assignment.Assignment)
	for _, asg := range asgs {
		byCourse[asg.CourseID] = append(byCourse[asg.CourseID], asg)
	}
	return byCourse
}

// Standing is the derived grade view of one course.
type Standing struct {
	CourseID   int      `json:"course_id"`
	CourseName string   `json:"course_name"`
	Credits    int      `json:"credits"`
	Grade      *float64 `json:"grade"` // nil: no grade yet
	Letter     string   `json:"letter"`
	Points     *float64 `json:"points"`
	Tier       Tier     `json:"tier"`
	Graded     int      `json:"graded"`
	Total      int      `json:"total"`
}

func (s Standing) HasGrade() bool { return s.Grade != nil }

// CourseStanding derives crs's Standing from its own assignments (others are ignored).
func (e *Engine) CourseStanding(crs course.Course, asgs []assignment.Assignment) Standing {
	st := Standing{
		CourseID:   crs.ID,
		CourseName: crs.Name,
		Credits:    crs.Credits,
	}
	own := make([]assignment.Assignment, 0, len(asgs))
	for _, asg := range asgs {
		if asg.CourseID != crs.ID {
			continue
		}
		own = append(own, asg)
		if asg.IsGraded() {
			st.Graded++
		}
	}
	st.Total = len(own)

	if pct, ok := e.CourseGrade(own); ok {
		points := Points(pct)
		st.Grade = &pct
		st.Points = &points
		st.Letter = Letter(pct)
		st.Tier = TierOf(pct)
	}
	return st
}
