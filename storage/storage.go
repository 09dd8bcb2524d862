// Package storage opens the course, assignment & student repositories of the configured storage driver.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/student"
	"github.com/trezcool/studyflow/storage/database"
	"github.com/trezcool/studyflow/storage/database/boltdb"
	"github.com/trezcool/studyflow/storage/database/inmem"
	"github.com/trezcool/studyflow/storage/database/sqlx"
)

type Repos struct {
	Driver     string
	Course     course.Repository
	Assignment assignment.Repository
	Student    student.Repository
	SQL        *sql.DB // postgres driver only
	close      func() error
}

func (r *Repos) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open opens the repositories of conf.Storage.Driver.
// The postgres driver creates the database if needed and migrates it when migrate is true.
func Open(ctx context.Context, conf *core.Config, migrate bool) (*Repos, error) {
	switch conf.Storage.Driver {
	case core.StorageMemory, "":
		db := inmemdb.Open()
		return &Repos{
			Driver:     core.StorageMemory,
			Course:     inmemdb.NewCourseRepository(db),
			Assignment: inmemdb.NewAssignmentRepository(db),
			Student:    inmemdb.NewStudentRepository(db),
		}, nil

	case core.StorageBolt:
		db, err := boltdb.Open(conf.Storage.BoltPath)
		if err != nil {
			return nil, err
		}
		return &Repos{
			Driver:     core.StorageBolt,
			Course:     boltdb.NewCourseRepository(db),
			Assignment: boltdb.NewAssignmentRepository(db),
			Student:    boltdb.NewStudentRepository(db),
			close:      db.Close,
		}, nil

	case core.StoragePostgres:
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return nil, errors.Wrap(err, "creating database")
		}
		db, err := database.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err = database.Migrate(db.DB); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Repos{
			Driver:     core.StoragePostgres,
			Course:     sqlxrepos.NewCourseRepository(db),
			Assignment: sqlxrepos.NewAssignmentRepository(db),
			Student:    sqlxrepos.NewStudentRepository(db),
			SQL:        db.DB,
			close:      db.Close,
		}, nil

	default:
		err := fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
		return nil, core.NewValidationError(err, core.FieldError{Field: "storage.driver", Error: err.Error()})
	}
}
