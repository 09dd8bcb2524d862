package student

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/trezcool/studyflow/core"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound        = errors.New("student not found")
	ErrEmailExists     = errors.New("a student with this email already exists")
	ErrStudentIDExists = errors.New("a student with this student ID already exists")
)

type (
	Repository interface {
		CheckStudentUniqueness(ctx context.Context, email, studentID string, excludedStudents ...Student) error
		CreateStudent(ctx context.Context, std Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, email, studentID string, exclStudents ...Student) error {
	if err := svc.repo.CheckStudentUniqueness(ctx, email, studentID, exclStudents...); err != nil {
		var field string
		switch err {
		case ErrEmailExists:
			field = "email"
		case ErrStudentIDExists:
			field = "student_id"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

// Create expects ns to have been validated (see NewStudent.Validate).
func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	now := NowFunc().UTC()
	enrolled, err := parseDate(ns.EnrollmentDate, now)
	if err != nil {
		return Student{}, err
	}
	std := Student{
		FirstName:        ns.FirstName,
		LastName:         ns.LastName,
		Email:            ns.Email,
		Phone:            ns.Phone,
		StudentID:        ns.StudentID,
		Major:            ns.Major,
		Year:             DefaultYear,
		Status:           ns.Status,
		EnrollmentDate:   enrolled,
		Address:          ns.Address,
		EmergencyContact: ns.EmergencyContact,
		EmergencyPhone:   ns.EmergencyPhone,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if ns.Year != nil {
		std.Year = *ns.Year
	}
	if ns.GPA != nil {
		std.GPA = *ns.GPA
	}
	if std.Status == "" {
		std.Status = StatusActive
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

// Filter applies AND operation on available QueryFilter fields.
// QueryFilter.Search does a case-insensitive match on one of Student.FirstName, Student.LastName,
// Student.Email, Student.StudentID or Student.Major.
func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	filter.Clean()
	if filter.IsEmpty() {
		return students, nil
	}

	search := strings.ToLower(filter.Search)
	result := make([]Student, 0, len(students))
	for _, std := range students {
		if search != "" && !matches(search, std.FirstName, std.LastName, std.Email, std.StudentID, std.Major) {
			continue
		}
		if filter.Status != "" && filter.Status != StatusAll && std.Status != filter.Status {
			continue
		}
		if filter.Major != "" && !strings.EqualFold(std.Major, filter.Major) {
			continue
		}
		if filter.Year != 0 && std.Year != filter.Year {
			continue
		}
		result = append(result, std)
	}
	return result, nil
}

func matches(search string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

// Update expects us to have been validated against the original Student (see UpdateStudent.Validate).
func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	orig, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	enrolled, err := parseDate(us.EnrollmentDate, orig.EnrollmentDate)
	if err != nil {
		return Student{}, err
	}
	std := orig
	std.FirstName = us.FirstName
	std.LastName = us.LastName
	std.Email = us.Email
	std.StudentID = us.StudentID
	std.Status = us.Status
	std.EnrollmentDate = enrolled
	std.UpdatedAt = NowFunc().UTC()
	if us.Phone != nil {
		std.Phone = *us.Phone
	}
	if us.Major != nil {
		std.Major = *us.Major
	}
	if us.Year != nil {
		std.Year = *us.Year
	}
	if us.GPA != nil {
		std.GPA = *us.GPA
	}
	if us.Address != nil {
		std.Address = *us.Address
	}
	if us.EmergencyContact != nil {
		std.EmergencyContact = *us.EmergencyContact
	}
	if us.EmergencyPhone != nil {
		std.EmergencyPhone = *us.EmergencyPhone
	}
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}
