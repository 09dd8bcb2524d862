package course

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyflow/core"
)

func intPtr(i int) *int { return &i }

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	vErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok, "error type = %T, want validator.ValidationErrors", err)
	flds := make(map[string]string, len(vErrs))
	for _, fe := range core.TranslateValidationErrors(vErrs) {
		flds[fe.Field] = fe.Error
	}
	return flds
}

func TestNewCourse_Validate(t *testing.T) {
	slot := func(day, start, end string) ScheduleSlot {
		return ScheduleSlot{Day: day, StartTime: start, EndTime: end}
	}

	tests := []struct {
		name       string
		nc         NewCourse
		wantFields []string
	}{
		{name: "valid", nc: NewCourse{Name: "Algebra", Color: "#4F46E5", Credits: intPtr(4)}},
		{name: "zero credits", nc: NewCourse{Name: "Seminar", Credits: intPtr(0)}},
		{name: "name required", nc: NewCourse{Name: "   "}, wantFields: []string{"name"}},
		{name: "bad color", nc: NewCourse{Name: "Algebra", Color: "indigo"}, wantFields: []string{"color"}},
		{name: "negative credits", nc: NewCourse{Name: "Algebra", Credits: intPtr(-1)}, wantFields: []string{"credits"}},
		{name: "too many credits", nc: NewCourse{Name: "Algebra", Credits: intPtr(13)}, wantFields: []string{"credits"}},
		{
			name: "valid schedule",
			nc:   NewCourse{Name: "Algebra", Schedule: []ScheduleSlot{slot("Monday", "09:00", "10:30")}},
		},
		{
			name: "incomplete slots are dropped",
			nc:   NewCourse{Name: "Algebra", Schedule: []ScheduleSlot{slot("Monday", "", "10:30"), slot("", "", "")}},
		},
		{
			name:       "bad day",
			nc:         NewCourse{Name: "Algebra", Schedule: []ScheduleSlot{slot("Funday", "09:00", "10:00")}},
			wantFields: []string{"day"},
		},
		{
			name:       "bad clock",
			nc:         NewCourse{Name: "Algebra", Schedule: []ScheduleSlot{slot("Friday", "9am", "24:00")}},
			wantFields: []string{"start_time", "end_time"},
		},
		{
			name:       "ends before start",
			nc:         NewCourse{Name: "Algebra", Schedule: []ScheduleSlot{slot("Friday", "14:00", "13:59")}},
			wantFields: []string{"end_time"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nc.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			flds := fieldErrors(t, err)
			for _, f := range tt.wantFields {
				assert.Contains(t, flds, f)
			}
			assert.Len(t, flds, len(tt.wantFields))
		})
	}
}

func TestNewCourse_Validate_cleans(t *testing.T) {
	nc := NewCourse{
		Name:     "  Organic Chemistry ",
		Color:    " #EC4899",
		Schedule: []ScheduleSlot{{Day: "Tuesday", StartTime: "08:00", EndTime: "09:00", Location: " Lab 2 "}, {}},
	}
	require.NoError(t, nc.Validate())
	assert.Equal(t, "Organic Chemistry", nc.Name)
	assert.Equal(t, "#ec4899", nc.Color)
	assert.Equal(t, []ScheduleSlot{{Day: "Tuesday", StartTime: "08:00", EndTime: "09:00", Location: "Lab 2"}}, nc.Schedule)
}

func TestUpdateCourse_Validate(t *testing.T) {
	orig := Course{
		ID:         1,
		Name:       "Physics",
		Instructor: "Dr. Curie",
		Color:      "#10b981",
		Credits:    4,
		Semester:   "Spring 2025",
		Schedule:   []ScheduleSlot{{Day: "Monday", StartTime: "10:00", EndTime: "11:00"}},
	}

	uc := UpdateCourse{Instructor: "Dr. Meitner"}
	require.NoError(t, uc.Validate(orig))
	assert.Equal(t, UpdateCourse{
		Name:       "Physics",
		Instructor: "Dr. Meitner",
		Color:      "#10b981",
		Credits:    intPtr(4),
		Semester:   "Spring 2025",
		Schedule:   orig.Schedule,
	}, uc)

	uc = UpdateCourse{Credits: intPtr(0), Schedule: []ScheduleSlot{}}
	require.NoError(t, uc.Validate(orig))
	assert.Equal(t, 0, *uc.Credits)
	assert.Empty(t, uc.Schedule)

	uc = UpdateCourse{Color: "blue"}
	flds := fieldErrors(t, uc.Validate(orig))
	assert.Contains(t, flds, "color")
}

func TestQueryFilter(t *testing.T) {
	qf := QueryFilter{Search: "  ", Semester: " "}
	qf.Clean()
	assert.True(t, qf.IsEmpty())

	qf = QueryFilter{Semester: " Fall 2024 "}
	qf.Clean()
	assert.False(t, qf.IsEmpty())
	assert.Equal(t, "Fall 2024", qf.Semester)
}
