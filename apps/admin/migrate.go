package main

import (
	"errors"

	"github.com/trezcool/goose"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/fs"
	"github.com/trezcool/studyflow/storage/database"
)

var (
	gooseRunFunc = goose.RunFS // mockable

	errNotPostgres = errors.New("migrations only apply to the postgres storage driver")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.conf.Storage.Driver != core.StoragePostgres {
		return errNotPostgres
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, appfs.FS, database.MigrationsDir, arguments...)
}
