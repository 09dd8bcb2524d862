package assignment

import (
	"sort"
	"strings"
	"time"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/duedate"
)

var defaultOrderings = []core.DBOrdering{{Field: OrderByDueDate, Ascending: true}}

// Filter returns the assignments matching filter, sorted by filter.Orderings (due date by default).
// courses resolve course names for search & ordering; unknown courses have an empty name.
func Filter(asgs []Assignment, courses []course.Course, filter QueryFilter, classifier *duedate.Classifier, now time.Time) []Assignment {
	filter.Clean()
	names := make(map[int]string, len(courses))
	for _, crs := range courses {
		names[crs.ID] = crs.Name
	}

	search := strings.ToLower(filter.Search)
	result := make([]Assignment, 0, len(asgs))
	for _, asg := range asgs {
		if search != "" &&
			!strings.Contains(strings.ToLower(asg.Title), search) &&
			!strings.Contains(strings.ToLower(asg.Description), search) &&
			!strings.Contains(strings.ToLower(names[asg.CourseID]), search) {
			continue
		}
		if filter.CourseID != 0 && asg.CourseID != filter.CourseID {
			continue
		}
		if filter.Priority != "" && asg.Priority != filter.Priority {
			continue
		}
		if filter.Status != "" && !matchesStatus(asg, filter.Status, classifier, now) {
			continue
		}
		result = append(result, asg)
	}

	orderings := filter.Orderings
	if len(orderings) == 0 {
		orderings = defaultOrderings
	}
	Sort(result, orderings, names)
	return result
}

func matchesStatus(asg Assignment, status string, classifier *duedate.Classifier, now time.Time) bool {
	switch status {
	case StatusCompleted:
		return asg.Completed
	case StatusPending:
		return !asg.Completed
	case StatusOverdue:
		return !asg.Completed && classifier.IsOverdue(asg.DueDate, now)
	case StatusDueToday:
		return classifier.IsDueToday(asg.DueDate, now)
	default:
		return true
	}
}

// Sort stable-sorts asgs in place. Unknown ordering fields are ignored.
// Assignments without a due date always sort last on due_date.
func Sort(asgs []Assignment, orderings []core.DBOrdering, courseNames map[int]string) {
	sort.SliceStable(asgs, func(i, j int) bool {
		for _, ord := range orderings {
			a, b := asgs[i], asgs[j]
			if ord.Field == OrderByDueDate && (a.DueDate == nil || b.DueDate == nil) {
				if (a.DueDate == nil) == (b.DueDate == nil) {
					continue
				}
				return b.DueDate == nil
			}
			c := compare(a, b, ord.Field, courseNames)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compare(a, b Assignment, field string, courseNames map[int]string) int {
	switch field {
	case OrderByDueDate:
		switch {
		case a.DueDate.Before(*b.DueDate):
			return -1
		case a.DueDate.After(*b.DueDate):
			return 1
		}
	case OrderByPriority:
		// ascending priority means most urgent first
		return PriorityRank(b.Priority) - PriorityRank(a.Priority)
	case OrderByCourse:
		return strings.Compare(strings.ToLower(courseNames[a.CourseID]), strings.ToLower(courseNames[b.CourseID]))
	case OrderByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}
	return 0
}

type Groups struct {
	Overdue   []Assignment `json:"overdue"`
	DueToday  []Assignment `json:"due_today"`
	Upcoming  []Assignment `json:"upcoming"`
	Completed []Assignment `json:"completed"`
}

// Group buckets assignments by status; order within each bucket is preserved.
func Group(asgs []Assignment, classifier *duedate.Classifier, now time.Time) Groups {
	groups := Groups{
		Overdue:   []Assignment{},
		DueToday:  []Assignment{},
		Upcoming:  []Assignment{},
		Completed: []Assignment{},
	}
	for _, asg := range asgs {
		switch {
		case asg.Completed:
			groups.Completed = append(groups.Completed, asg)
		case classifier.IsOverdue(asg.DueDate, now):
			groups.Overdue = append(groups.Overdue, asg)
		case classifier.IsDueToday(asg.DueDate, now):
			groups.DueToday = append(groups.DueToday, asg)
		default:
			groups.Upcoming = append(groups.Upcoming, asg)
		}
	}
	return groups
}
