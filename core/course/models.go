package course

import (
	"time"

	"github.com/trezcool/studyflow/core"
)

const (
	DefaultCredits  = 3
	DefaultSemester = "Fall 2024"
)

type ScheduleSlot struct {
	Day       string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
	Location  string `json:"location"`
}

type Course struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Instructor string         `json:"instructor"`
	Color      string         `json:"color"`
	Credits    int            `json:"credits"`
	Semester   string         `json:"semester"`
	Schedule   []ScheduleSlot `json:"schedule"`
	CreatedAt  time.Time      `json:"created_at"` // UTC
	UpdatedAt  time.Time      `json:"updated_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name       string         `json:"name" validate:"required"`
	Instructor string         `json:"instructor"`
	Color      string         `json:"color" validate:"omitempty,hexcolor"`
	Credits    *int           `json:"credits" validate:"omitempty,gte=0,lte=12"`
	Semester   string         `json:"semester"`
	Schedule   []ScheduleSlot `json:"schedule" validate:"omitempty,dive"`
}

func (nc *NewCourse) Validate() error {
	nc.clean()
	return core.Validate.Struct(nc)
}

func (nc *NewCourse) clean() {
	nc.Name = core.CleanString(nc.Name)
	nc.Instructor = core.CleanString(nc.Instructor)
	nc.Color = core.CleanString(nc.Color, true /* lower */)
	nc.Semester = core.CleanString(nc.Semester)
	nc.Schedule = cleanSchedule(nc.Schedule)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Blank fields keep the original value.
type UpdateCourse struct {
	Name       string         `json:"name"`
	Instructor string         `json:"instructor"`
	Color      string         `json:"color" validate:"omitempty,hexcolor"`
	Credits    *int           `json:"credits" validate:"omitempty,gte=0,lte=12"`
	Semester   string         `json:"semester"`
	Schedule   []ScheduleSlot `json:"schedule" validate:"omitempty,dive"`
}

func (uc *UpdateCourse) Validate(orig Course) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	if instructor := core.CleanString(uc.Instructor); instructor != "" {
		uc.Instructor = instructor
	} else {
		uc.Instructor = orig.Instructor
	}
	if color := core.CleanString(uc.Color, true /* lower */); color != "" {
		uc.Color = color
	} else {
		uc.Color = orig.Color
	}
	if semester := core.CleanString(uc.Semester); semester != "" {
		uc.Semester = semester
	} else {
		uc.Semester = orig.Semester
	}
	if uc.Credits == nil {
		credits := orig.Credits
		uc.Credits = &credits
	}
	if uc.Schedule == nil {
		uc.Schedule = orig.Schedule
	} else {
		uc.Schedule = cleanSchedule(uc.Schedule)
	}
	return core.Validate.Struct(uc)
}

// cleanSchedule drops incomplete slots, like the course form does.
func cleanSchedule(slots []ScheduleSlot) []ScheduleSlot {
	if slots == nil {
		return nil
	}
	cleaned := make([]ScheduleSlot, 0, len(slots))
	for _, s := range slots {
		s.Day = core.CleanString(s.Day)
		s.StartTime = core.CleanString(s.StartTime)
		s.EndTime = core.CleanString(s.EndTime)
		s.Location = core.CleanString(s.Location)
		if s.Day == "" || s.StartTime == "" || s.EndTime == "" {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}

type QueryFilter struct {
	Search   string `query:"search"`
	Semester string `query:"semester"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Semester == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Semester = core.CleanString(qf.Semester)
}
