package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/ambassador"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/assignment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/chat"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/submission"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errTokenRevoked         = echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")

	errStorageUnavailable = "storage unavailable, please retry"

	// clients send unauthenticated users to this path to sign in
	signInPath = "/auth"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(
	logger core.Logger,
	translator ut.Translator,
	signalShutdown func(),
) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		switch cause {
		case enrollment.ErrNotEnrolled, meeting.ErrNotFound, assignment.ErrNotFound, user.ErrNotFound:
			cause = echo.NewHTTPError(http.StatusNotFound, cause.Error())
		case enrollment.ErrNotAuthenticated:
			cause = errUnauthorized
		case submission.ErrDuplicateSubmission, submission.ErrModuleLocked, ambassador.ErrAlreadyApplied:
			cause = echo.NewHTTPError(http.StatusConflict, cause.Error())
		case chat.ErrEmptyMessage:
			cause = core.NewValidationError(nil, core.FieldError{Field: "message", Error: cause.Error()})
		}

		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case *enrollment.InvalidTransitionError:
			code = http.StatusConflict
			message = origErr.Error()
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *core.PersistenceError:
			code = http.StatusServiceUnavailable
			message = errStorageUnavailable
			logger.Error(errStorageUnavailable, err, requestUser(ctx))
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			logger.Error(msg, errors.Wrap(err, msg), requestUser(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code >= http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			body := echo.Map{"error": m}
			if code == http.StatusUnauthorized {
				body["redirect"] = signInPath
			}
			message = body
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// requestUser identifies the caller in error logs.
func requestUser(ctx echo.Context) user.User {
	if claims, err := getContextClaims(ctx); err == nil {
		return claims.user()
	}
	return user.User{}
}
