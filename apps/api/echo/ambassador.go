package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/ambassador"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

type ambassadorApi struct {
	svc      *ambassador.Service
	validate *validator.Validate
}

// registerAmbassadorAPI registers the public application form and its staff review list.
func registerAmbassadorAPI(
	g *echo.Group,
	authed []echo.MiddlewareFunc,
	svc *ambassador.Service,
	validate *validator.Validate,
) {
	api := ambassadorApi{svc: svc, validate: validate}

	staffOnly := append(authed[:len(authed):len(authed)], roleMiddleware(user.StaffRoleName))
	g.POST("/ambassadors", api.apply)
	g.GET("/ambassadors", api.query, staffOnly...)
}

// Handlers

func (api *ambassadorApi) apply(ctx echo.Context) error {
	var data ambassador.NewApplication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	app, err := api.svc.Apply(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "applying as ambassador")
	}
	return ctx.JSON(http.StatusCreated, app)
}

func (api *ambassadorApi) query(ctx echo.Context) error {
	apps, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying ambassador applications")
	}
	if apps == nil {
		apps = []ambassador.Application{}
	}
	return ctx.JSON(http.StatusOK, apps)
}
