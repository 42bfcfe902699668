package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/submission"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

type staffApi struct {
	enrollments *enrollment.Service
	submissions *submission.Service
}

// registerStaffAPI registers the staff dashboard endpoints.
func registerStaffAPI(
	g *echo.Group,
	authed []echo.MiddlewareFunc,
	enrollments *enrollment.Service,
	submissions *submission.Service,
) {
	api := staffApi{enrollments: enrollments, submissions: submissions}

	staffOnly := append(authed[:len(authed):len(authed)], roleMiddleware(user.StaffRoleName))
	g.GET("/learners", api.queryLearners, staffOnly...)
	g.GET("/learners/:id/progress", api.learnerProgress, staffOnly...)
	g.GET("/submissions", api.querySubmissions, staffOnly...)
}

// Handlers

func (api *staffApi) queryLearners(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)
	filter := enrollment.LearnerFilter{
		Search:    ctx.QueryParam("search"),
		PackageID: ctx.QueryParam("package_id"),
		Ordering:  ordering.Orderings,
	}

	learners, err := api.enrollments.ListLearners(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying learners")
	}
	if learners == nil {
		learners = []enrollment.Learner{}
	}
	return ctx.JSON(http.StatusOK, learners)
}

func (api *staffApi) learnerProgress(ctx echo.Context) error {
	prog, err := api.enrollments.Progress(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "projecting learner progress")
	}
	return ctx.JSON(http.StatusOK, prog)
}

func (api *staffApi) querySubmissions(ctx echo.Context) error {
	filter := submission.QueryFilter{LearnerID: core.CleanString(ctx.QueryParam("learner_id"))}
	if val := ctx.QueryParam("module_index"); val != "" {
		idx, err := strconv.Atoi(val)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "module_index", Error: "must be an integer"})
		}
		filter.ModuleIndex = &idx
	}

	subs, err := api.submissions.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	if subs == nil {
		subs = []submission.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}
