package middleware

import (
	"net/http"

	domainerrors "oauthgate/internal/domain/errors"
	"oauthgate/internal/errors"

	"github.com/labstack/echo/v4"
)

// statusFromError mirrors the status the error handler will write for err.
func statusFromError(err error) int {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return appErr.HTTPCode()
	}
	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
