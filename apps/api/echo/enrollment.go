package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/submission"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

const idempotencyKeyHeader = "Idempotency-Key"

type enrollmentApi struct {
	auth        *authenticator
	svc         *enrollment.Service
	submissions *submission.Service
	validate    *validator.Validate
}

// registerEnrollmentAPI registers the student dashboard endpoints.
func registerEnrollmentAPI(
	g *echo.Group,
	authed []echo.MiddlewareFunc,
	auth *authenticator,
	svc *enrollment.Service,
	submissions *submission.Service,
	validate *validator.Validate,
) {
	api := enrollmentApi{
		auth:        auth,
		svc:         svc,
		submissions: submissions,
		validate:    validate,
	}

	eg := g.Group("/enrollment", append(authed[:len(authed):len(authed)], roleMiddleware(user.StudentRoleName))...)
	eg.POST("", api.enroll)
	eg.GET("", api.retrieve)
	eg.GET("/progress", api.progress)
	eg.POST("/modules/:index/complete", api.completeModule)
	eg.POST("/modules/:index/submissions", api.submit)
	eg.GET("/submissions", api.querySubmissions)
}

// Handlers

func (api *enrollmentApi) enroll(ctx echo.Context) error {
	var data enrollment.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	learner, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	enr, err := api.svc.Enroll(ctx.Request().Context(), learner, data)
	if err != nil {
		return errors.Wrap(err, "enrolling")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

func (api *enrollmentApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	enr, err := api.svc.GetEnrollment(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting enrollment")
	}
	return ctx.JSON(http.StatusOK, enr)
}

func (api *enrollmentApi) progress(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	prog, err := api.svc.Progress(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "projecting progress")
	}
	return ctx.JSON(http.StatusOK, prog)
}

func (api *enrollmentApi) completeModule(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	idx, err := moduleIndex(ctx)
	if err != nil {
		return err
	}
	prog, err := api.svc.CompleteModule(ctx.Request().Context(), claims.Subject, idx)
	if err != nil {
		return errors.Wrapf(err, "completing module %d", idx)
	}
	return ctx.JSON(http.StatusOK, prog)
}

func (api *enrollmentApi) submit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	idx, err := moduleIndex(ctx)
	if err != nil {
		return err
	}

	var data submission.NewSubmission
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	key := ctx.Request().Header.Get(idempotencyKeyHeader)
	sub, err := api.submissions.Record(ctx.Request().Context(), claims.Subject, idx, key, data)
	if err != nil {
		return errors.Wrapf(err, "recording submission for module %d", idx)
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *enrollmentApi) querySubmissions(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	subs, err := api.submissions.ListByLearner(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	if subs == nil {
		subs = []submission.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}
