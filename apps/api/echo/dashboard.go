package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core/dashboard"
	"github.com/trezcool/studyflow/core/report"
)

const (
	gradesFileName   = "grades"
	calendarFileName = "studyflow.ics"
)

type dashboardApi struct {
	opts *Options
	svc  *dashboard.Service
}

func registerDashboardAPI(g *echo.Group, opts *Options) {
	api := dashboardApi{opts: opts, svc: opts.DashboardSvc}

	g.GET("/dashboard", api.summary)
	g.GET("/agenda", api.agenda)
	g.GET("/reminders", api.reminders)
	g.GET("/grades", api.grades)
	g.GET("/grades/export", api.exportGrades)
	g.GET("/calendar.ics", api.calendar)
}

// Handlers

func (api *dashboardApi) summary(ctx echo.Context) error {
	sum, err := api.svc.Summary(ctx.Request().Context(), now(api.opts))
	if err != nil {
		return errors.Wrap(err, "summarizing dashboard")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *dashboardApi) agenda(ctx echo.Context) error {
	limit := limitParam(ctx, dashboard.AgendaLimit)
	views, err := api.svc.Agenda(ctx.Request().Context(), now(api.opts), limit)
	if err != nil {
		return errors.Wrap(err, "querying agenda")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *dashboardApi) reminders(ctx echo.Context) error {
	rem, err := api.svc.Reminders(ctx.Request().Context(), now(api.opts))
	if err != nil {
		return errors.Wrap(err, "collecting reminders")
	}
	return ctx.JSON(http.StatusOK, rem)
}

func (api *dashboardApi) grades(ctx echo.Context) error {
	rep, err := api.svc.GradeReport(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing grade report")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *dashboardApi) exportGrades(ctx echo.Context) error {
	rep, err := api.svc.GradeReport(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing grade report")
	}
	buf, err := report.GradeWorkbook(rep)
	if err != nil {
		return errors.Wrap(err, "rendering grade workbook")
	}

	name := gradesFileName + "_" + now(api.opts).Format("2006-01-02") + report.WorkbookFileExt
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return ctx.Blob(http.StatusOK, report.WorkbookMIME, buf.Bytes())
}

func (api *dashboardApi) calendar(ctx echo.Context) error {
	courses, asgs, err := api.svc.Snapshot(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading snapshot")
	}
	feed := report.Calendar(courses, asgs, NowFunc().In(time.UTC))

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+calendarFileName+`"`)
	return ctx.Blob(http.StatusOK, report.CalendarMIME, []byte(feed))
}
