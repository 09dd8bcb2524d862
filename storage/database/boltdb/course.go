package boltdb

import (
	"context"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/studyflow/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func setCourseID(crs *course.Course, id int) { crs.ID = id }

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	crs.ID = 0
	err := repo.db.update(func(tx *bbolt.Tx) error {
		return put(tx, courseBucket, 0, &crs, setCourseID)
	})
	if err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(_ context.Context) ([]course.Course, error) {
	var courses []course.Course
	err := repo.db.view(func(tx *bbolt.Tx) (err error) {
		courses, err = list[course.Course](tx, courseBucket, nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id int) (course.Course, error) {
	var (
		crs   course.Course
		found bool
	)
	err := repo.db.view(func(tx *bbolt.Tx) (err error) {
		crs, found, err = get[course.Course](tx, courseBucket, id)
		return err
	})
	if err != nil {
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	if !found {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	var found bool
	err := repo.db.update(func(tx *bbolt.Tx) error {
		var err error
		if _, found, err = get[course.Course](tx, courseBucket, crs.ID); err != nil || !found {
			return err
		}
		return put(tx, courseBucket, crs.ID, &crs, setCourseID)
	})
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if !found {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (repo *courseRepository) DeleteCoursesByID(_ context.Context, ids ...int) error {
	err := repo.db.update(func(tx *bbolt.Tx) error {
		return remove(tx, courseBucket, ids...)
	})
	return errors.Wrap(err, "deleting courses")
}
