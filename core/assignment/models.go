package assignment

import (
	"time"

	"github.com/trezcool/studyflow/core"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const DefaultType = "Assignment"

var priorityRanks = map[string]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

func PriorityRank(priority string) int {
	return priorityRanks[priority]
}

type Assignment struct {
	ID          int        `json:"id"`
	CourseID    int        `json:"course_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Type        string     `json:"type"`
	Weight      *float64   `json:"weight"` // nil: default weight
	Grade       *float64   `json:"grade"`  // nil: ungraded
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"` // UTC
	UpdatedAt   time.Time  `json:"updated_at"` // UTC
}

func (a Assignment) IsGraded() bool {
	return a.Grade != nil
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	CourseID    int        `json:"course_id" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Type        string     `json:"type"`
	Weight      *float64   `json:"weight" validate:"omitempty,finite,gte=0"`
	Grade       *float64   `json:"grade" validate:"omitempty,finite,gte=0,lte=100"`
	Completed   bool       `json:"completed"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Priority = core.CleanString(na.Priority, true /* lower */)
	na.Type = core.CleanString(na.Type)
	return core.Validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
// Blank fields keep the original value; ClearGrade/ClearDueDate/ClearWeight unset the optional ones.
type UpdateAssignment struct {
	CourseID     int        `json:"course_id" validate:"omitempty,gt=0"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Type         string     `json:"type"`
	Weight       *float64   `json:"weight" validate:"omitempty,finite,gte=0"`
	ClearWeight  bool       `json:"clear_weight"`
	Grade        *float64   `json:"grade" validate:"omitempty,finite,gte=0,lte=100"`
	ClearGrade   bool       `json:"clear_grade"`
	Completed    *bool      `json:"completed"`
}

func (ua *UpdateAssignment) Validate() error {
	ua.Title = core.CleanString(ua.Title)
	ua.Priority = core.CleanString(ua.Priority, true /* lower */)
	ua.Type = core.CleanString(ua.Type)
	if ua.Description != nil {
		desc := core.CleanString(*ua.Description)
		ua.Description = &desc
	}
	return core.Validate.Struct(ua)
}

// apply merges ua into a copy of orig.
func (ua UpdateAssignment) apply(orig Assignment) Assignment {
	asg := orig
	if ua.CourseID != 0 {
		asg.CourseID = ua.CourseID
	}
	if ua.Title != "" {
		asg.Title = ua.Title
	}
	if ua.Description != nil {
		asg.Description = *ua.Description
	}
	if ua.ClearDueDate {
		asg.DueDate = nil
	} else if ua.DueDate != nil {
		due := ua.DueDate.UTC()
		asg.DueDate = &due
	}
	if ua.Priority != "" {
		asg.Priority = ua.Priority
	}
	if ua.Type != "" {
		asg.Type = ua.Type
	}
	if ua.ClearWeight {
		asg.Weight = nil
	} else if ua.Weight != nil {
		asg.Weight = core.Float64Ptr(*ua.Weight)
	}
	if ua.ClearGrade {
		asg.Grade = nil
	} else if ua.Grade != nil {
		asg.Grade = core.Float64Ptr(*ua.Grade)
	}
	if ua.Completed != nil {
		asg.Completed = *ua.Completed
	}
	return asg
}

// Statuses
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusOverdue   = "overdue"
	StatusDueToday  = "due-today"
)

// Ordering fields
const (
	OrderByDueDate  = "due_date"
	OrderByPriority = "priority"
	OrderByCourse   = "course"
	OrderByTitle    = "title"
)

type QueryFilter struct {
	Search    string `query:"search"`
	CourseID  int    `query:"course_id"`
	Status    string `query:"status" validate:"omitempty,oneof=completed pending overdue due-today"`
	Priority  string `query:"priority" validate:"omitempty,oneof=low medium high"`
	Orderings []core.DBOrdering
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.CourseID == 0 && qf.Status == "" && qf.Priority == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
	qf.Priority = core.CleanString(qf.Priority, true /* lower */)
}

func (qf *QueryFilter) Validate() error {
	qf.Clean()
	return core.Validate.Struct(qf)
}
