package student

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trezcool/studyflow/core"
)

// Statuses
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusGraduated = "graduated"
	StatusSuspended = "suspended"

	// StatusAll disables the status filter.
	StatusAll = "all"
)

const (
	DateLayout  = "2006-01-02"
	DefaultYear = 1
)

var (
	Statuses = []string{StatusActive, StatusInactive, StatusGraduated, StatusSuspended}

	yearLabels = map[int]string{1: "Freshman", 2: "Sophomore", 3: "Junior", 4: "Senior"}
)

type Student struct {
	ID               int       `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	StudentID        string    `json:"student_id"`
	Major            string    `json:"major"`
	Year             int       `json:"year"`
	GPA              float64   `json:"gpa"`
	Status           string    `json:"status"`
	EnrollmentDate   time.Time `json:"enrollment_date"` // UTC midnight
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergency_contact"`
	EmergencyPhone   string    `json:"emergency_phone"`
	CreatedAt        time.Time `json:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at"` // UTC
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// YearLabel names the year of study, eg. "Sophomore", "Year 5".
func YearLabel(year int) string {
	if label, ok := yearLabels[year]; ok {
		return label
	}
	return fmt.Sprintf("Year %d", year)
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	FirstName        string   `json:"first_name" validate:"required"`
	LastName         string   `json:"last_name" validate:"required"`
	Email            string   `json:"email" validate:"required,email"`
	Phone            string   `json:"phone"`
	StudentID        string   `json:"student_id" validate:"required"`
	Major            string   `json:"major"`
	Year             *int     `json:"year" validate:"omitempty,gte=1,lte=8"`
	GPA              *float64 `json:"gpa" validate:"omitempty,finite,gte=0,lte=4"`
	Status           string   `json:"status" validate:"omitempty,oneof=active inactive graduated suspended"`
	EnrollmentDate   string   `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
	Address          string   `json:"address"`
	EmergencyContact string   `json:"emergency_contact"`
	EmergencyPhone   string   `json:"emergency_phone"`
}

func (ns *NewStudent) Validate(ctx context.Context, svc *Service) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.Major = core.CleanString(ns.Major)
	ns.Status = core.CleanString(ns.Status, true /* lower */)
	ns.EnrollmentDate = core.CleanString(ns.EnrollmentDate)
	ns.Address = core.CleanString(ns.Address)
	ns.EmergencyContact = core.CleanString(ns.EmergencyContact)
	ns.EmergencyPhone = core.CleanString(ns.EmergencyPhone)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, ns.Email, ns.StudentID)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Blank fields keep the original value.
type UpdateStudent struct {
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Email            string   `json:"email" validate:"omitempty,email"`
	Phone            *string  `json:"phone"`
	StudentID        string   `json:"student_id"`
	Major            *string  `json:"major"`
	Year             *int     `json:"year" validate:"omitempty,gte=1,lte=8"`
	GPA              *float64 `json:"gpa" validate:"omitempty,finite,gte=0,lte=4"`
	Status           string   `json:"status" validate:"omitempty,oneof=active inactive graduated suspended"`
	EnrollmentDate   string   `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
	Address          *string  `json:"address"`
	EmergencyContact *string  `json:"emergency_contact"`
	EmergencyPhone   *string  `json:"emergency_phone"`
}

func (us *UpdateStudent) Validate(ctx context.Context, orig Student, svc *Service) error {
	keep := func(val *string, origVal string, lower ...bool) {
		if v := core.CleanString(*val, lower...); v != "" {
			*val = v
		} else {
			*val = origVal
		}
	}
	keep(&us.FirstName, orig.FirstName)
	keep(&us.LastName, orig.LastName)
	keep(&us.Email, orig.Email, true /* lower */)
	keep(&us.StudentID, orig.StudentID)
	keep(&us.Status, orig.Status, true /* lower */)
	keep(&us.EnrollmentDate, orig.EnrollmentDate.Format(DateLayout))

	for _, s := range []*string{us.Phone, us.Major, us.Address, us.EmergencyContact, us.EmergencyPhone} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}

	if err := core.Validate.Struct(us); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, us.Email, us.StudentID, orig)
}

type QueryFilter struct {
	Search string `query:"search"`
	Status string `query:"status" validate:"omitempty,oneof=all active inactive graduated suspended"`
	Major  string `query:"major"`
	Year   int    `query:"year" validate:"omitempty,gte=1,lte=8"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && (qf.Status == "" || qf.Status == StatusAll) && qf.Major == "" && qf.Year == 0
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
	qf.Major = core.CleanString(qf.Major)
}

func (qf *QueryFilter) Validate() error {
	qf.Clean()
	return core.Validate.Struct(qf)
}

// parseDate parses a "2006-01-02" date as UTC midnight. Blank dates fall back to def's day.
func parseDate(s string, def time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := def.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(DateLayout, s)
}
