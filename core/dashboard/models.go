package dashboard

import (
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/duedate"
	"github.com/trezcool/studyflow/core/grade"
)

const (
	UpcomingLimit = 5
	AgendaLimit   = 10
)

type (
	Stats struct {
		TotalCourses     int     `json:"total_courses"`
		TotalAssignments int     `json:"total_assignments"`
		TotalCredits     int     `json:"total_credits"`
		Completed        int     `json:"completed"`
		Pending          int     `json:"pending"`
		Overdue          int     `json:"overdue"`
		DueToday         int     `json:"due_today"`
		DueSoon          int     `json:"due_soon"`
		GPA              float64 `json:"gpa"`
		CompletionRate   float64 `json:"completion_rate"`
	}

	// AssignmentView is an Assignment decorated for presentation.
	AssignmentView struct {
		assignment.Assignment
		CourseName  string         `json:"course_name"`
		CourseColor string         `json:"course_color"`
		Due         duedate.Status `json:"due"`
	}

	Summary struct {
		Stats    Stats            `json:"stats"`
		Upcoming []AssignmentView `json:"upcoming"`
		Today    []AssignmentView `json:"today"`
	}

	// Reminder is the pending work a student should be nudged about.
	Reminder struct {
		Overdue []AssignmentView `json:"overdue"`
		DueSoon []AssignmentView `json:"due_soon"`
	}

	GradeReport struct {
		GPA            float64          `json:"gpa"`
		TotalCredits   int              `json:"total_credits"`
		CompletionRate float64          `json:"completion_rate"`
		Courses        []grade.Standing `json:"courses"`
	}
)

// GradedCredits sums the credits of the courses that count towards the GPA.
func (r GradeReport) GradedCredits() int {
	var credits int
	for _, st := range r.Courses {
		if st.HasGrade() && st.Credits > 0 {
			credits += st.Credits
		}
	}
	return credits
}

func (r Reminder) IsEmpty() bool { return len(r.Overdue) == 0 && len(r.DueSoon) == 0 }

// Assignments lists the reminded assignments, overdue first.
func (r Reminder) Assignments() []assignment.Assignment {
	asgs := make([]assignment.Assignment, 0, len(r.Overdue)+len(r.DueSoon))
	for _, views := range [][]AssignmentView{r.Overdue, r.DueSoon} {
		for _, v := range views {
			asgs = append(asgs, v.Assignment)
		}
	}
	return asgs
}
