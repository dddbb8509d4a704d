package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"pizzeria/internal/generated/servers"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusFor maps an application error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrRequestInProgress):
		return http.StatusConflict
	case errors.Is(err, errs.ErrPersistence):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a servers.Error. Client errors carry the error text;
// server errors are logged and answered with the status text only.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := StatusFor(err)
	message := err.Error()
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"route", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}

func wrapInvalid(param string, err error) error {
	if errs.IsValidation(err) {
		return err
	}
	return errs.NewValueIsInvalidErrorWithCause(param, err)
}

// NewHTTPErrorHandler renders errors that escape the handlers, such as
// parameter binding and contract validation failures, as servers.Error.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			code    = StatusFor(err)
			message string
			httpErr *echo.HTTPError
		)
		switch {
		case errors.As(err, &httpErr):
			code, message = httpErr.Code, fmt.Sprint(httpErr.Message)
		case code < http.StatusInternalServerError:
			message = err.Error()
		default:
			message = http.StatusText(code)
			logger.ErrorContext(c.Request().Context(), "unhandled error", "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, servers.Error{Code: code, Message: message})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
