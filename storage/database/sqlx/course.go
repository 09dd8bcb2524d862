package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core/course"
)

const courseColumns = `id, name, instructor, color, credits, semester, schedule, created_at, updated_at`

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	row, err := newCourseRow(crs)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "encoding course")
	}
	q := `INSERT INTO courses (name, instructor, color, credits, semester, schedule, created_at, updated_at)
		VALUES (:name, :instructor, :color, :credits, :semester, :schedule, :created_at, :updated_at)
		RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, repo.db, q, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err := rows.Scan(&crs.ID); err != nil {
			return course.Course{}, errors.Wrap(err, "scanning course id")
		}
	}
	return crs, errors.Wrap(rows.Err(), "inserting course")
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+courseColumns+` FROM courses ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		crs, err := row.toCourse()
		if err != nil {
			return nil, errors.Wrapf(err, "decoding course %d", row.ID)
		}
		courses = append(courses, crs)
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "selecting course")
	}
	crs, err := row.toCourse()
	return crs, errors.Wrapf(err, "decoding course %d", id)
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	row, err := newCourseRow(crs)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "encoding course")
	}
	q := `UPDATE courses SET name = :name, instructor = :instructor, color = :color, credits = :credits,
		semester = :semester, schedule = :schedule, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (repo *courseRepository) DeleteCoursesByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM courses WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...)
	return errors.Wrap(err, "deleting courses")
}
