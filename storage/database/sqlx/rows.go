package sqlxrepos

import (
	"encoding/json"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/student"
)

type (
	courseRow struct {
		ID         int       `db:"id"`
		Name       string    `db:"name"`
		Instructor string    `db:"instructor"`
		Color      string    `db:"color"`
		Credits    int       `db:"credits"`
		Semester   string    `db:"semester"`
		Schedule   null.JSON `db:"schedule"`
		CreatedAt  time.Time `db:"created_at"`
		UpdatedAt  time.Time `db:"updated_at"`
	}

	assignmentRow struct {
		ID          int          `db:"id"`
		CourseID    int          `db:"course_id"`
		Title       string       `db:"title"`
		Description string       `db:"description"`
		DueDate     null.Time    `db:"due_date"`
		Priority    string       `db:"priority"`
		Type        string       `db:"type"`
		Weight      null.Float64 `db:"weight"`
		Grade       null.Float64 `db:"grade"`
		Completed   bool         `db:"completed"`
		CreatedAt   time.Time    `db:"created_at"`
		UpdatedAt   time.Time    `db:"updated_at"`
	}

	studentRow struct {
		ID               int         `db:"id"`
		FirstName        string      `db:"first_name"`
		LastName         string      `db:"last_name"`
		Email            string      `db:"email"`
		Phone            null.String `db:"phone"`
		StudentID        string      `db:"student_id"`
		Major            string      `db:"major"`
		Year             int         `db:"year"`
		GPA              float64     `db:"gpa"`
		Status           string      `db:"status"`
		EnrollmentDate   time.Time   `db:"enrollment_date"`
		Address          null.String `db:"address"`
		EmergencyContact null.String `db:"emergency_contact"`
		EmergencyPhone   null.String `db:"emergency_phone"`
		CreatedAt        time.Time   `db:"created_at"`
		UpdatedAt        time.Time   `db:"updated_at"`
	}
)

func newCourseRow(crs course.Course) (courseRow, error) {
	row := courseRow{
		ID:         crs.ID,
		Name:       crs.Name,
		Instructor: crs.Instructor,
		Color:      crs.Color,
		Credits:    crs.Credits,
		Semester:   crs.Semester,
		CreatedAt:  crs.CreatedAt.UTC(),
		UpdatedAt:  crs.UpdatedAt.UTC(),
	}
	if crs.Schedule != nil {
		data, err := json.Marshal(crs.Schedule)
		if err != nil {
			return courseRow{}, err
		}
		row.Schedule = null.JSONFrom(data)
	}
	return row, nil
}

func (row courseRow) toCourse() (course.Course, error) {
	crs := course.Course{
		ID:         row.ID,
		Name:       row.Name,
		Instructor: row.Instructor,
		Color:      row.Color,
		Credits:    row.Credits,
		Semester:   row.Semester,
		CreatedAt:  row.CreatedAt.UTC(),
		UpdatedAt:  row.UpdatedAt.UTC(),
	}
	if row.Schedule.Valid {
		if err := row.Schedule.Unmarshal(&crs.Schedule); err != nil {
			return course.Course{}, err
		}
	}
	return crs, nil
}

func newAssignmentRow(asg assignment.Assignment) assignmentRow {
	row := assignmentRow{
		ID:          asg.ID,
		CourseID:    asg.CourseID,
		Title:       asg.Title,
		Description: asg.Description,
		DueDate:     null.TimeFromPtr(asg.DueDate),
		Priority:    asg.Priority,
		Type:        asg.Type,
		Weight:      null.Float64FromPtr(asg.Weight),
		Grade:       null.Float64FromPtr(asg.Grade),
		Completed:   asg.Completed,
		CreatedAt:   asg.CreatedAt.UTC(),
		UpdatedAt:   asg.UpdatedAt.UTC(),
	}
	if row.DueDate.Valid {
		row.DueDate.Time = row.DueDate.Time.UTC()
	}
	return row
}

func (row assignmentRow) toAssignment() assignment.Assignment {
	asg := assignment.Assignment{
		ID:          row.ID,
		CourseID:    row.CourseID,
		Title:       row.Title,
		Description: row.Description,
		DueDate:     row.DueDate.Ptr(),
		Priority:    row.Priority,
		Type:        row.Type,
		Weight:      row.Weight.Ptr(),
		Grade:       row.Grade.Ptr(),
		Completed:   row.Completed,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if asg.DueDate != nil {
		due := asg.DueDate.UTC()
		asg.DueDate = &due
	}
	return asg
}

// optString maps a blank string to NULL.
func optString(s string) null.String {
	return null.NewString(s, s != "")
}

func newStudentRow(std student.Student) studentRow {
	return studentRow{
		ID:               std.ID,
		FirstName:        std.FirstName,
		LastName:         std.LastName,
		Email:            std.Email,
		Phone:            optString(std.Phone),
		StudentID:        std.StudentID,
		Major:            std.Major,
		Year:             std.Year,
		GPA:              std.GPA,
		Status:           std.Status,
		EnrollmentDate:   dateOf(std.EnrollmentDate),
		Address:          optString(std.Address),
		EmergencyContact: optString(std.EmergencyContact),
		EmergencyPhone:   optString(std.EmergencyPhone),
		CreatedAt:        std.CreatedAt.UTC(),
		UpdatedAt:        std.UpdatedAt.UTC(),
	}
}

func (row studentRow) toStudent() student.Student {
	return student.Student{
		ID:               row.ID,
		FirstName:        row.FirstName,
		LastName:         row.LastName,
		Email:            row.Email,
		Phone:            row.Phone.String,
		StudentID:        row.StudentID,
		Major:            row.Major,
		Year:             row.Year,
		GPA:              row.GPA,
		Status:           row.Status,
		EnrollmentDate:   dateOf(row.EnrollmentDate),
		Address:          row.Address.String,
		EmergencyContact: row.EmergencyContact.String,
		EmergencyPhone:   row.EmergencyPhone.String,
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
}

// dateOf keeps the calendar day of t, as UTC midnight.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
