package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core/assignment"
)

const assignmentColumns = `id, course_id, title, description, due_date, priority, type, weight, grade, completed, created_at, updated_at`

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) selectAll(ctx context.Context, q string, args ...interface{}) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting assignments")
	}
	asgs := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		asgs = append(asgs, row.toAssignment())
	}
	return asgs, nil
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	q := `INSERT INTO assignments
		(course_id, title, description, due_date, priority, type, weight, grade, completed, created_at, updated_at)
		VALUES (:course_id, :title, :description, :due_date, :priority, :type, :weight, :grade, :completed, :created_at, :updated_at)
		RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, repo.db, q, newAssignmentRow(asg))
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err := rows.Scan(&asg.ID); err != nil {
			return assignment.Assignment{}, errors.Wrap(err, "scanning assignment id")
		}
	}
	return asg, errors.Wrap(rows.Err(), "inserting assignment")
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return repo.selectAll(ctx, `SELECT `+assignmentColumns+` FROM assignments ORDER BY id`)
}

func (repo *assignmentRepository) QueryAssignmentsByCourseID(ctx context.Context, courseID int) ([]assignment.Assignment, error) {
	return repo.selectAll(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE course_id = $1 ORDER BY id`, courseID)
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var row assignmentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "selecting assignment")
	}
	return row.toAssignment(), nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	q := `UPDATE assignments SET course_id = :course_id, title = :title, description = :description,
		due_date = :due_date, priority = :priority, type = :type, weight = :weight, grade = :grade,
		completed = :completed, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, newAssignmentRow(asg))
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return asg, nil
}

func (repo *assignmentRepository) SetAssignmentCompleted(
	ctx context.Context,
	id int,
	completed bool,
	updatedAt time.Time,
) (assignment.Assignment, error) {
	var row assignmentRow
	q := `UPDATE assignments SET completed = $1, updated_at = $2 WHERE id = $3 RETURNING ` + assignmentColumns
	if err := repo.db.GetContext(ctx, &row, q, completed, updatedAt.UTC(), id); err != nil {
		if err == sql.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	return row.toAssignment(), nil
}

func (repo *assignmentRepository) DeleteAssignmentsByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM assignments WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...)
	return errors.Wrap(err, "deleting assignments")
}

func (repo *assignmentRepository) DeleteAssignmentsByCourseID(ctx context.Context, courseID int) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM assignments WHERE course_id = $1`, courseID)
	return errors.Wrap(err, "deleting course assignments")
}
