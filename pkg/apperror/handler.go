package apperror

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/logger"
)

// HTTPErrorHandler returns an Echo error handler that renders every error in
// the {success, code, message, details} envelope. Internal causes are logged
// for 5xx responses and never sent to the client.
func HTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := toResponse(err)

		if code >= http.StatusInternalServerError {
			log.Error("request error",
				slog.Int("status", code),
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().RequestURI),
				logger.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func toResponse(err error) (int, map[string]any) {
	if _, ok := As(err); ok {
		return ToHTTPError(err)
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return ToHTTPError(err)
	}

	switch {
	case he.Code == http.StatusNotFound && errors.Is(he, echo.ErrNotFound):
		return ToHTTPError(ErrRouteNotFound)
	case he.Code == http.StatusMethodNotAllowed:
		return ToHTTPError(New(http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed"))
	case he.Code >= http.StatusInternalServerError:
		return ToHTTPError(ErrInternal)
	}

	message := http.StatusText(he.Code)
	if msg, ok := he.Message.(string); ok && msg != "" {
		message = msg
	}
	return ToHTTPError(New(he.Code, codeForStatus(he.Code), message))
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized.Code
	case http.StatusForbidden:
		return ErrForbidden.Code
	case http.StatusNotFound:
		return ErrNotFound.Code
	case http.StatusTooManyRequests:
		return ErrTooManyRequests.Code
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	default:
		return ErrBadRequest.Code
	}
}
