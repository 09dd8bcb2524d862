package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/storage/legacy"
)

// importLegacy loads the JSON exports of the browser app. asgsPath is optional.
func (cli *commandLine) importLegacy(coursesPath, asgsPath string) error {
	lcourses, err := decodeFile(coursesPath, legacy.DecodeCourses)
	if err != nil {
		return err
	}
	var lasgs []legacy.Assignment
	if asgsPath != "" {
		if lasgs, err = decodeFile(asgsPath, legacy.DecodeAssignments); err != nil {
			return err
		}
	}

	im := legacy.NewImporter(cli.courseRepo, cli.asgRepo, cli.loc)
	res, err := im.Import(context.Background(), lcourses, lasgs)
	if err != nil {
		return errors.Wrap(err, "importing")
	}

	fmt.Fprintf(cli.out, "imported %d course(s) and %d assignment(s)\n", res.Courses, res.Assignments)
	if len(res.Orphans) > 0 {
		fmt.Fprintf(cli.out, "skipped %d assignment(s) of unknown courses: %v\n", len(res.Orphans), res.Orphans)
	}
	return nil
}

func decodeFile[T any](path string, decode func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening import file")
	}
	defer f.Close()
	return decode(f)
}
