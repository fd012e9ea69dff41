package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"auraapi/models"
	"auraapi/services"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.InvalidInput:
		return http.StatusBadRequest
	case services.ServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope for err. Server side failures are
// logged and sent to Sentry with their underlying cause.
func respondError(c echo.Context, logger *zap.SugaredLogger, err error) error {
	appErr := services.AsAppError(err, "Beklenmeyen bir hata oluştu")
	status := statusForKind(appErr.Kind)
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	if status >= http.StatusInternalServerError {
		logger.Errorw("Request failed",
			"request_id", requestID,
			"path", c.Path(),
			"kind", appErr.Kind.String(),
			"error", appErr.Error(),
		)
		captureException(c, appErr)
	} else {
		logger.Infow("Request rejected",
			"request_id", requestID,
			"path", c.Path(),
			"kind", appErr.Kind.String(),
			"detail", appErr.Detail,
		)
	}

	return c.JSON(status, models.ErrorResponse{
		Success: false,
		Error:   appErr.Kind.String(),
		Detail:  appErr.Detail,
	})
}

func captureException(c echo.Context, err error) {
	hub := sentryecho.GetHubFromContext(c)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("error_kind", services.KindOf(err).String())
		scope.SetExtra("path", c.Path())
		hub.CaptureException(err)
	})
}

// NewHTTPErrorHandler renders errors raised by echo itself (unknown routes,
// body limit, rate limit, panics) with the same envelope the handlers use.
func NewHTTPErrorHandler(logger *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			_ = respondError(c, logger, err)
			return
		}

		kind := services.UpstreamError
		switch {
		case httpErr.Code == http.StatusServiceUnavailable:
			kind = services.ServiceUnavailable
		case httpErr.Code >= 400 && httpErr.Code < 500:
			kind = services.InvalidInput
		}
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Errorw("Unhandled error", "path", c.Request().URL.Path, "error", err)
			captureException(c, err)
		}
		_ = c.JSON(httpErr.Code, models.ErrorResponse{
			Success: false,
			Error:   kind.String(),
			Detail:  fmt.Sprintf("%v", httpErr.Message),
		})
	}
}

func validationMessage(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%v", httpErr.Message)
	}
	return err.Error()
}
