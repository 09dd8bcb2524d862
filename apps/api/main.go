package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/studyflow/apps/api/echo"
	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/dashboard"
	"github.com/trezcool/studyflow/core/duedate"
	"github.com/trezcool/studyflow/core/grade"
	"github.com/trezcool/studyflow/core/student"
	"github.com/trezcool/studyflow/services/logger"
	"github.com/trezcool/studyflow/storage"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.New(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger := logsvc.New(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up storage
	repos, err := storage.Open(context.Background(), conf, true /* migrate */)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer func() {
		if err = repos.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()
	dbLogger.Info(fmt.Sprintf("storage driver: %s", repos.Driver))

	// set up engines & services
	engine := grade.NewEngine(conf.Grading.DefaultAssignmentWeight)
	classifier := duedate.NewClassifier(duedate.Config{
		SoonWindowDays:    conf.Grading.SoonWindowDays,
		WarningWindowDays: conf.Grading.WarningWindowDays,
	})
	crsSvc := course.NewService(repos.Course)
	asgSvc := assignment.NewService(repos.Assignment, repos.Course, classifier)
	dashSvc := dashboard.NewService(repos.Course, repos.Assignment, engine, classifier)
	stdSvc := student.NewService(repos.Student)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:       conf.Server.Address,
			Debug:         conf.Debug,
			TestMode:      conf.TestMode,
			Location:      conf.Grading.Location(),
			Logger:        logger,
			CourseSvc:     crsSvc,
			AssignmentSvc: asgSvc,
			DashboardSvc:  dashSvc,
			StudentSvc:    stdSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
