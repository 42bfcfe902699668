package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/assignment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

type assignmentApi struct {
	auth     *authenticator
	svc      *assignment.Service
	validate *validator.Validate
}

func registerAssignmentAPI(
	g *echo.Group,
	authed []echo.MiddlewareFunc,
	auth *authenticator,
	svc *assignment.Service,
	validate *validator.Validate,
) {
	api := assignmentApi{auth: auth, svc: svc, validate: validate}

	ag := g.Group("/assignments", authed...)
	ag.GET("", api.query)
	ag.POST("", api.create, roleMiddleware(user.StaffRoleName))
	ag.DELETE("/:id", api.destroy, roleMiddleware(user.StaffRoleName))
}

// Handlers

func (api *assignmentApi) query(ctx echo.Context) error {
	asgs, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	creator, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	asg, err := api.svc.Create(ctx.Request().Context(), creator, data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
