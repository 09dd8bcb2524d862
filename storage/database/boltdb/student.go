package boltdb

import (
	"context"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/studyflow/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func setStudentID(std *student.Student, id int) { std.ID = id }

func (repo *studentRepository) CheckStudentUniqueness(
	_ context.Context,
	email, studentID string,
	excludedStudents ...student.Student,
) error {
	excluded := make(map[int]bool, len(excludedStudents))
	for _, std := range excludedStudents {
		excluded[std.ID] = true
	}

	var uniqErr error
	err := repo.db.view(func(tx *bbolt.Tx) error {
		_, err := list(tx, studentBucket, func(std student.Student) bool {
			if uniqErr != nil || excluded[std.ID] {
				return false
			}
			switch {
			case std.Email == email:
				uniqErr = student.ErrEmailExists
			case std.StudentID == studentID:
				uniqErr = student.ErrStudentIDExists
			}
			return false
		})
		return err
	})
	if err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}
	return uniqErr
}

func (repo *studentRepository) CreateStudent(_ context.Context, std student.Student) (student.Student, error) {
	std.ID = 0
	err := repo.db.update(func(tx *bbolt.Tx) error {
		return put(tx, studentBucket, 0, &std, setStudentID)
	})
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	var students []student.Student
	err := repo.db.view(func(tx *bbolt.Tx) (err error) {
		students, err = list[student.Student](tx, studentBucket, nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id int) (student.Student, error) {
	var (
		std   student.Student
		found bool
	)
	err := repo.db.view(func(tx *bbolt.Tx) (err error) {
		std, found, err = get[student.Student](tx, studentBucket, id)
		return err
	})
	if err != nil {
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	if !found {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, std student.Student) (student.Student, error) {
	var found bool
	err := repo.db.update(func(tx *bbolt.Tx) error {
		var err error
		if _, found, err = get[student.Student](tx, studentBucket, std.ID); err != nil || !found {
			return err
		}
		return put(tx, studentBucket, std.ID, &std, setStudentID)
	})
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if !found {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudentsByID(_ context.Context, ids ...int) error {
	err := repo.db.update(func(tx *bbolt.Tx) error {
		return remove(tx, studentBucket, ids...)
	})
	return errors.Wrap(err, "deleting students")
}
