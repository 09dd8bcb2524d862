package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/dashboard"
)

var errAsgNotFoundInCtx = errors.New("assignment object not found in echo.Context")

type assignmentApi struct {
	opts    *Options
	svc     *assignment.Service
	dashSvc *dashboard.Service
}

func registerAssignmentAPI(g *echo.Group, opts *Options) {
	api := assignmentApi{
		opts:    opts,
		svc:     opts.AssignmentSvc,
		dashSvc: opts.DashboardSvc,
	}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.GET("/groups", api.groups)

	// detail endpoints
	dg := ag.Group("/:id", assignmentCtxMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/complete", api.complete)
}

type (
	CompleteRequest struct {
		Completed bool `json:"completed"`
	}

	// AssignmentGroups lists assignments the way the assignment board shows them.
	AssignmentGroups struct {
		Overdue   []dashboard.AssignmentView `json:"overdue"`
		DueToday  []dashboard.AssignmentView `json:"due_today"`
		Upcoming  []dashboard.AssignmentView `json:"upcoming"`
		Completed []dashboard.AssignmentView `json:"completed"`
	}
)

// view decorates one assignment with its course & due status.
func (api *assignmentApi) view(ctx echo.Context, asg assignment.Assignment) (dashboard.AssignmentView, error) {
	views, err := api.dashSvc.Views(ctx.Request().Context(), []assignment.Assignment{asg}, now(api.opts))
	if err != nil {
		return dashboard.AssignmentView{}, errors.Wrap(err, "decorating assignment")
	}
	return views[0], nil
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	asg, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	view, err := api.view(ctx, asg)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, view)
}

func (api *assignmentApi) filter(ctx echo.Context) ([]assignment.Assignment, error) {
	filter := new(assignment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return nil, errors.Wrap(err, "binding to QueryFilter")
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)
	filter.Orderings = ordering.Orderings

	asgs, err := api.svc.Filter(ctx.Request().Context(), *filter, now(api.opts))
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return asgs, nil
}

func (api *assignmentApi) query(ctx echo.Context) error {
	asgs, err := api.filter(ctx)
	if err != nil {
		return err
	}
	views, err := api.dashSvc.Views(ctx.Request().Context(), asgs, now(api.opts))
	if err != nil {
		return errors.Wrap(err, "decorating assignments")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *assignmentApi) groups(ctx echo.Context) error {
	asgs, err := api.filter(ctx)
	if err != nil {
		return err
	}

	at := now(api.opts)
	grouped := assignment.Group(asgs, api.dashSvc.Classifier(), at)
	reqCtx := ctx.Request().Context()
	var res AssignmentGroups
	for _, g := range []struct {
		src []assignment.Assignment
		dst *[]dashboard.AssignmentView
	}{
		{grouped.Overdue, &res.Overdue},
		{grouped.DueToday, &res.DueToday},
		{grouped.Upcoming, &res.Upcoming},
		{grouped.Completed, &res.Completed},
	} {
		if *g.dst, err = api.dashSvc.Views(reqCtx, g.src, at); err != nil {
			return errors.Wrap(err, "decorating assignments")
		}
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	asg, ok := ctx.Get(ctxObjectKey).(assignment.Assignment)
	if !ok {
		return errors.Wrap(errAsgNotFoundInCtx, "retrieving object from context")
	}
	view, err := api.view(ctx, asg)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	asg, ok := ctx.Get(ctxObjectKey).(assignment.Assignment)
	if !ok {
		return errors.Wrap(errAsgNotFoundInCtx, "retrieving object from context")
	}

	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	asg, err := api.svc.Update(ctx.Request().Context(), asg.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	view, err := api.view(ctx, asg)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *assignmentApi) complete(ctx echo.Context) error {
	asg, ok := ctx.Get(ctxObjectKey).(assignment.Assignment)
	if !ok {
		return errors.Wrap(errAsgNotFoundInCtx, "retrieving object from context")
	}

	var data CompleteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CompleteRequest")
	}

	asg, err := api.svc.ToggleComplete(ctx.Request().Context(), asg.ID, data.Completed)
	if err != nil {
		return errors.Wrap(err, "toggling assignment completion")
	}
	view, err := api.view(ctx, asg)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	asg, ok := ctx.Get(ctxObjectKey).(assignment.Assignment)
	if !ok {
		return errors.Wrap(errAsgNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(ctx.Request().Context(), asg.ID); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// assignmentCtxMiddleware loads the assignment of the `:id` path param into the context.
func assignmentCtxMiddleware(svc *assignment.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := idParam(ctx)
			if err != nil {
				return err
			}
			asg, err := svc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				if errors.Cause(err) == assignment.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding assignment by ID")
			}
			ctx.Set(ctxObjectKey, asg)
			return next(ctx)
		}
	}
}
