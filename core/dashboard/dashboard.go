// Package dashboard assembles the derived views of the application (statistics, upcoming work,
// grade report) from course & assignment snapshots.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/duedate"
	"github.com/trezcool/studyflow/core/grade"
)

var byDueDate = []core.DBOrdering{{Field: assignment.OrderByDueDate, Ascending: true}}

// Summarize computes the dashboard of the given snapshots as of now.
func Summarize(
	courses []course.Course,
	asgs []assignment.Assignment,
	engine *grade.Engine,
	classifier *duedate.Classifier,
	now time.Time,
) Summary {
	stats := Stats{
		TotalCourses:     len(courses),
		TotalAssignments: len(asgs),
		GPA:              engine.GPA(courses, asgs),
		CompletionRate:   grade.CompletionRate(asgs),
	}
	for _, crs := range courses {
		stats.TotalCredits += crs.Credits
	}

	upcoming := make([]assignment.Assignment, 0)
	today := make([]assignment.Assignment, 0)
	for _, asg := range asgs {
		if asg.Completed {
			stats.Completed++
		} else {
			stats.Pending++
			if classifier.IsOverdue(asg.DueDate, now) {
				stats.Overdue++
			}
			if classifier.IsDueToday(asg.DueDate, now) {
				stats.DueToday++
			}
			if classifier.IsDueSoon(asg.DueDate, now) {
				stats.DueSoon++
				upcoming = append(upcoming, asg)
			}
		}
		if classifier.IsDueToday(asg.DueDate, now) {
			today = append(today, asg)
		}
	}

	names := courseNames(courses)
	assignment.Sort(upcoming, byDueDate, names)
	assignment.Sort(today, byDueDate, names)
	if len(upcoming) > UpcomingLimit {
		upcoming = upcoming[:UpcomingLimit]
	}

	return Summary{
		Stats:    stats,
		Upcoming: Views(upcoming, courses, classifier, now),
		Today:    Views(today, courses, classifier, now),
	}
}

// Agenda lists the next assignments due after now, at most limit of them (no limit when <= 0).
func Agenda(
	courses []course.Course,
	asgs []assignment.Assignment,
	classifier *duedate.Classifier,
	now time.Time,
	limit int,
) []AssignmentView {
	next := make([]assignment.Assignment, 0)
	for _, asg := range asgs {
		if asg.DueDate != nil && asg.DueDate.After(now) {
			next = append(next, asg)
		}
	}
	assignment.Sort(next, byDueDate, courseNames(courses))
	if limit > 0 && len(next) > limit {
		next = next[:limit]
	}
	return Views(next, courses, classifier, now)
}

// Reminders collects the pending assignments that are overdue or due soon, by due date.
func Reminders(
	courses []course.Course,
	asgs []assignment.Assignment,
	classifier *duedate.Classifier,
	now time.Time,
) Reminder {
	overdue := make([]assignment.Assignment, 0)
	soon := make([]assignment.Assignment, 0)
	for _, asg := range asgs {
		switch {
		case asg.Completed:
		case classifier.IsOverdue(asg.DueDate, now):
			overdue = append(overdue, asg)
		case classifier.IsDueSoon(asg.DueDate, now):
			soon = append(soon, asg)
		}
	}

	names := courseNames(courses)
	assignment.Sort(overdue, byDueDate, names)
	assignment.Sort(soon, byDueDate, names)
	return Reminder{
		Overdue: Views(overdue, courses, classifier, now),
		DueSoon: Views(soon, courses, classifier, now),
	}
}

// Report computes the GPA and per-course standings, ordered by course name.
func Report(courses []course.Course, asgs []assignment.Assignment, engine *grade.Engine) GradeReport {
	byCourse := grade.GroupByCourse(asgs)

	report := GradeReport{
		GPA:            engine.GPA(courses, asgs),
		CompletionRate: grade.CompletionRate(asgs),
		Courses:        make([]grade.Standing, 0, len(courses)),
	}
	for _, crs := range courses {
		report.TotalCredits += crs.Credits
		report.Courses = append(report.Courses, engine.CourseStanding(crs, byCourse[crs.ID]))
	}
	sort.SliceStable(report.Courses, func(i, j int) bool {
		return strings.ToLower(report.Courses[i].CourseName) < strings.ToLower(report.Courses[j].CourseName)
	})
	return report
}

// Views decorates asgs with their course and due date status, keeping their order.
func Views(asgs []assignment.Assignment, courses []course.Course, classifier *duedate.Classifier, now time.Time) []AssignmentView {
	byID := make(map[int]course.Course, len(courses))
	for _, crs := range courses {
		byID[crs.ID] = crs
	}

	views := make([]AssignmentView, 0, len(asgs))
	for _, asg := range asgs {
		view := AssignmentView{
			Assignment: asg,
			Due:        classifier.Status(asg.DueDate, now),
		}
		if crs, ok := byID[asg.CourseID]; ok {
			view.CourseName = crs.Name
			view.CourseColor = crs.Color
		}
		views = append(views, view)
	}
	return views
}

func courseNames(courses []course.Course) map[int]string {
	names := make(map[int]string, len(courses))
	for _, crs := range courses {
		names[crs.ID] = crs.Name
	}
	return names
}
