package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/dashboard"
	"github.com/trezcool/studyflow/core/duedate"
	"github.com/trezcool/studyflow/core/grade"
	"github.com/trezcool/studyflow/services/email"
	"github.com/trezcool/studyflow/services/logger"
	"github.com/trezcool/studyflow/storage"
)

var (
	nowFunc        = time.Now        // mockable
	isTerminalFunc = term.IsTerminal // mockable

	logger *log.Logger
)

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up storage
	repos, err := storage.Open(context.Background(), conf, false /* migrate */)
	errAndDie(err)
	defer repos.Close()

	mailer, err := emailsvc.New(conf, os.Stdout, logsvc.New(logger, conf))
	errAndDie(err)

	// start CLI
	classifier := duedate.NewClassifier(duedate.Config{
		SoonWindowDays:    conf.Grading.SoonWindowDays,
		WarningWindowDays: conf.Grading.WarningWindowDays,
	})
	engine := grade.NewEngine(conf.Grading.DefaultAssignmentWeight)
	cli := commandLine{
		conf:       conf,
		out:        os.Stdout,
		color:      isTerminalFunc(int(os.Stdout.Fd())),
		db:         repos.SQL,
		courseRepo: repos.Course,
		asgRepo:    repos.Assignment,
		dashSvc:    dashboard.NewService(repos.Course, repos.Assignment, engine, classifier),
		mailer:     mailer,
		loc:        conf.Grading.Location(),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		_ = repos.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
