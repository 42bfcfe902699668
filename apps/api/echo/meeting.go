package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

type meetingApi struct {
	auth     *authenticator
	svc      *meeting.Service
	validate *validator.Validate
}

func registerMeetingAPI(
	g *echo.Group,
	authed []echo.MiddlewareFunc,
	auth *authenticator,
	svc *meeting.Service,
	validate *validator.Validate,
) {
	api := meetingApi{auth: auth, svc: svc, validate: validate}

	mg := g.Group("/meetings", authed...)
	mg.GET("", api.query)
	mg.POST("", api.create, roleMiddleware(user.StaffRoleName))
	mg.DELETE("/:id", api.destroy, roleMiddleware(user.StaffRoleName))
}

// Handlers

func (api *meetingApi) query(ctx echo.Context) error {
	mtgs, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying meetings")
	}
	if mtgs == nil {
		mtgs = []meeting.Meeting{}
	}
	return ctx.JSON(http.StatusOK, mtgs)
}

func (api *meetingApi) create(ctx echo.Context) error {
	var data meeting.NewMeeting
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMeeting")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	creator, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	mtg, err := api.svc.Schedule(ctx.Request().Context(), creator, data)
	if err != nil {
		return errors.Wrap(err, "scheduling meeting")
	}
	return ctx.JSON(http.StatusCreated, mtg)
}

func (api *meetingApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting meeting")
	}
	return ctx.NoContent(http.StatusNoContent)
}
