package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core/student"
)

const studentColumns = `id, first_name, last_name, email, phone, student_id, major, year, gpa, status,
	enrollment_date, address, emergency_contact, emergency_phone, created_at, updated_at`

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckStudentUniqueness(
	ctx context.Context,
	email, studentID string,
	excludedStudents ...student.Student,
) error {
	exclIDs := []int{0} // serial IDs start at 1
	for _, std := range excludedStudents {
		exclIDs = append(exclIDs, std.ID)
	}
	q, args, err := sqlx.In(
		`SELECT email, student_id FROM students WHERE (email = ? OR student_id = ?) AND id NOT IN (?) LIMIT 1`,
		email, studentID, exclIDs,
	)
	if err != nil {
		return errors.Wrap(err, "building uniqueness query")
	}

	var taken struct {
		Email     string `db:"email"`
		StudentID string `db:"student_id"`
	}
	if err := repo.db.GetContext(ctx, &taken, repo.db.Rebind(q), args...); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return errors.Wrap(err, "checking student uniqueness")
	}
	if taken.Email == email {
		return student.ErrEmailExists
	}
	return student.ErrStudentIDExists
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	q := `INSERT INTO students (first_name, last_name, email, phone, student_id, major, year, gpa, status,
			enrollment_date, address, emergency_contact, emergency_phone, created_at, updated_at)
		VALUES (:first_name, :last_name, :email, :phone, :student_id, :major, :year, :gpa, :status,
			:enrollment_date, :address, :emergency_contact, :emergency_phone, :created_at, :updated_at)
		RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, repo.db, q, newStudentRow(std))
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err := rows.Scan(&std.ID); err != nil {
			return student.Student{}, errors.Wrap(err, "scanning student id")
		}
	}
	return std, errors.Wrap(rows.Err(), "inserting student")
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+studentColumns+` FROM students ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toStudent())
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "selecting student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	q := `UPDATE students SET first_name = :first_name, last_name = :last_name, email = :email, phone = :phone,
		student_id = :student_id, major = :major, year = :year, gpa = :gpa, status = :status,
		enrollment_date = :enrollment_date, address = :address, emergency_contact = :emergency_contact,
		emergency_phone = :emergency_phone, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, newStudentRow(std))
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM students WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...)
	return errors.Wrap(err, "deleting students")
}
