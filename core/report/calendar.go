package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
)

const (
	CalendarMIME = "text/calendar; charset=utf-8"
	ProductID    = "-//StudyFlow//Assignments//EN"
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://studyflow.app/assignments"))

// EventUID is stable across exports, so calendar clients update events instead of duplicating them.
func EventUID(asg assignment.Assignment) string {
	return uuid.NewSHA1(uidNamespace, []byte(fmt.Sprint(asg.ID))).String()
}

// Calendar renders the assignments that have a due date as an iCalendar feed, ordered by due date.
func Calendar(courses []course.Course, asgs []assignment.Assignment, now time.Time) string {
	names := make(map[int]string, len(courses))
	for _, crs := range courses {
		names[crs.ID] = crs.Name
	}

	dated := make([]assignment.Assignment, 0, len(asgs))
	for _, asg := range asgs {
		if asg.DueDate != nil {
			dated = append(dated, asg)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].DueDate.Before(*dated[j].DueDate)
	})

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)

	for _, asg := range dated {
		due := asg.DueDate.UTC()
		event := cal.AddEvent(EventUID(asg))
		event.SetDtStampTime(now.UTC())
		event.SetCreatedTime(asg.CreatedAt.UTC())
		event.SetModifiedAt(asg.UpdatedAt.UTC())
		event.SetStartAt(due)
		event.SetEndAt(due)
		event.SetSummary(summary(names[asg.CourseID], asg.Title))
		if asg.Description != "" {
			event.SetDescription(asg.Description)
		}
		event.SetProperty(ics.ComponentPropertyCategories, strings.ToUpper(asg.Priority))
		if asg.Completed {
			event.SetProperty(ics.ComponentPropertyStatus, string(ics.ObjectStatusCompleted))
		} else {
			event.SetProperty(ics.ComponentPropertyStatus, string(ics.ObjectStatusConfirmed))
		}
	}
	return cal.Serialize()
}

func summary(courseName, title string) string {
	if courseName == "" {
		return title
	}
	return courseName + ": " + title
}
