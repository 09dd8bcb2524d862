package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/dashboard"
)

const ctxObjectKey = "object"

var errCrsNotFoundInCtx = errors.New("course object not found in echo.Context")

type courseApi struct {
	opts    *Options
	svc     *course.Service
	asgSvc  *assignment.Service
	dashSvc *dashboard.Service
}

func registerCourseAPI(g *echo.Group, opts *Options) {
	api := courseApi{
		opts:    opts,
		svc:     opts.CourseSvc,
		asgSvc:  opts.AssignmentSvc,
		dashSvc: opts.DashboardSvc,
	}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)

	// detail endpoints
	dg := cg.Group("/:id", courseCtxMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/assignments", api.assignments)
	dg.GET("/grade", api.grade)
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	crs, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	filter := new(course.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []course.Course{})
	}

	courses, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, ok := ctx.Get(ctxObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	crs, ok := ctx.Get(ctxObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(crs); err != nil {
		return err
	}

	crs, err := api.svc.Update(ctx.Request().Context(), crs.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

// destroy deletes the course along with its assignments.
func (api *courseApi) destroy(ctx echo.Context) error {
	crs, ok := ctx.Get(ctxObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	reqCtx := ctx.Request().Context()
	if err := api.asgSvc.DeleteByCourseID(reqCtx, crs.ID); err != nil {
		return errors.Wrap(err, "deleting course assignments")
	}
	if err := api.svc.Delete(reqCtx, crs.ID); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) assignments(ctx echo.Context) error {
	crs, ok := ctx.Get(ctxObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	filter := assignment.QueryFilter{CourseID: crs.ID}
	ordering := new(Ordering)
	ordering.Bind(ctx)
	filter.Orderings = ordering.Orderings

	reqCtx := ctx.Request().Context()
	at := now(api.opts)
	asgs, err := api.asgSvc.Filter(reqCtx, filter, at)
	if err != nil {
		return errors.Wrap(err, "querying course assignments")
	}
	views, err := api.dashSvc.Views(reqCtx, asgs, at)
	if err != nil {
		return errors.Wrap(err, "decorating assignments")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *courseApi) grade(ctx echo.Context) error {
	crs, ok := ctx.Get(ctxObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	st, err := api.dashSvc.CourseStanding(ctx.Request().Context(), crs.ID)
	if err != nil {
		return errors.Wrap(err, "computing course standing")
	}
	return ctx.JSON(http.StatusOK, st)
}

// courseCtxMiddleware loads the course of the `:id` path param into the context.
func courseCtxMiddleware(svc *course.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := idParam(ctx)
			if err != nil {
				return err
			}
			crs, err := svc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				if errors.Cause(err) == course.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding course by ID")
			}
			ctx.Set(ctxObjectKey, crs)
			return next(ctx)
		}
	}
}
