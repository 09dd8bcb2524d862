package boltdb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/studyflow/core/assignment"
)

type assignmentRepository struct {
	db *DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func setAssignmentID(asg *assignment.Assignment, id int) { asg.ID = id }

func (repo *assignmentRepository) query(keep func(assignment.Assignment) bool) ([]assignment.Assignment, error) {
	var asgs []assignment.Assignment
	err := repo.db.view(func(tx *bbolt.Tx) (err error) {
		asgs, err = list(tx, assignmentBucket, keep)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return asgs, nil
}

// modify applies fn to the stored assignment id and saves it back.
func (repo *assignmentRepository) modify(id int, fn func(asg *assignment.Assignment)) (assignment.Assignment, error) {
	var (
		asg   assignment.Assignment
		found bool
	)
	err := repo.db.update(func(tx *bbolt.Tx) error {
		var err error
		if asg, found, err = get[assignment.Assignment](tx, assignmentBucket, id); err != nil || !found {
			return err
		}
		fn(&asg)
		return put(tx, assignmentBucket, id, &asg, setAssignmentID)
	})
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if !found {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return asg, nil
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	asg.ID = 0
	err := repo.db.update(func(tx *bbolt.Tx) error {
		return put(tx, assignmentBucket, 0, &asg, setAssignmentID)
	})
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return asg, nil
}

func (repo *assignmentRepository) QueryAllAssignments(_ context.Context) ([]assignment.Assignment, error) {
	return repo.query(nil)
}

func (repo *assignmentRepository) QueryAssignmentsByCourseID(_ context.Context, courseID int) ([]assignment.Assignment, error) {
	return repo.query(func(asg assignment.Assignment) bool { return asg.CourseID == courseID })
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id int) (assignment.Assignment, error) {
	var (
		asg   assignment.Assignment
		found bool
	)
	err := repo.db.view(func(tx *bbolt.Tx) (err error) {
		asg, found, err = get[assignment.Assignment](tx, assignmentBucket, id)
		return err
	})
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	if !found {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return asg, nil
}

func (repo *assignmentRepository) UpdateAssignment(_ context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	return repo.modify(asg.ID, func(stored *assignment.Assignment) { *stored = asg })
}

func (repo *assignmentRepository) SetAssignmentCompleted(
	_ context.Context,
	id int,
	completed bool,
	updatedAt time.Time,
) (assignment.Assignment, error) {
	return repo.modify(id, func(asg *assignment.Assignment) {
		asg.Completed = completed
		asg.UpdatedAt = updatedAt
	})
}

func (repo *assignmentRepository) DeleteAssignmentsByID(_ context.Context, ids ...int) error {
	err := repo.db.update(func(tx *bbolt.Tx) error {
		return remove(tx, assignmentBucket, ids...)
	})
	return errors.Wrap(err, "deleting assignments")
}

func (repo *assignmentRepository) DeleteAssignmentsByCourseID(_ context.Context, courseID int) error {
	err := repo.db.update(func(tx *bbolt.Tx) error {
		asgs, err := list(tx, assignmentBucket, func(asg assignment.Assignment) bool { return asg.CourseID == courseID })
		if err != nil {
			return err
		}
		ids := make([]int, 0, len(asgs))
		for _, asg := range asgs {
			ids = append(ids, asg.ID)
		}
		return remove(tx, assignmentBucket, ids...)
	})
	return errors.Wrap(err, "deleting course assignments")
}
