package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/curaan-web/internal/apperr"
	"github.com/curaan-web/internal/envelope"
	"github.com/curaan-web/internal/logger"
	"github.com/labstack/echo/v4"
)

// PageErrorFunc renders an error for browser routes
type PageErrorFunc func(c echo.Context, err *apperr.Error) error

func respondError(c echo.Context, err error) error {
	appErr := apperr.From(err)
	return c.JSON(appErr.HTTPStatus(), envelope.Failure(appErr))
}

// ErrorHandler turns errors escaping handlers into failure envelopes.
// Paths outside apiPrefix go to page when it is set.
func ErrorHandler(log *logger.Logger, apiPrefix string, page PageErrorFunc) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		reqLog := log.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID))

		appErr := FromHTTPError(err)
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			reqLog.Error("request failed",
				slog.String("path", c.Request().URL.Path),
				slog.String("error", err.Error()),
			)
		}

		var writeErr error
		switch {
		case c.Request().Method == http.MethodHead:
			writeErr = c.NoContent(appErr.HTTPStatus())
		case page != nil && !underPrefix(c.Request().URL.Path, apiPrefix):
			writeErr = page(c, appErr)
		default:
			writeErr = respondError(c, appErr)
		}
		if writeErr != nil {
			reqLog.Error("failed to write error response", slog.String("error", writeErr.Error()))
		}
	}
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// FromHTTPError maps echo's framework errors onto the application taxonomy.
// Application errors pass through even when they wrap an echo error.
func FromHTTPError(err error) *apperr.Error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return apperr.From(err)
	}

	switch {
	case he.Code == http.StatusNotFound:
		return apperr.Wrap(apperr.KindNotFound, "Resource not found", err)
	case he.Code == http.StatusMethodNotAllowed:
		return apperr.Wrap(apperr.KindNotFound, "Resource not found", err).WithStatus(he.Code)
	case he.Code == http.StatusTooManyRequests:
		return apperr.Wrap(apperr.KindService, "Too many requests. Please wait a moment and try again.", err).WithStatus(he.Code)
	case he.Code == http.StatusRequestEntityTooLarge:
		return apperr.Wrap(apperr.KindValidation, "Request body is too large", err).WithStatus(he.Code)
	case he.Code >= 400 && he.Code < 500:
		return apperr.Wrap(apperr.KindValidation, http.StatusText(he.Code), err).WithStatus(he.Code)
	default:
		return apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
}
