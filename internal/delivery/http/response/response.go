// Package response renders the unified API envelope. Every payload carries
// a meta block with the request id so a failing call can be traced in the
// logs from the client's copy alone.
package response

import (
	deliverycontext "portal/internal/delivery/context"
	domainerrors "portal/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Success renders a successful response.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, domainerrors.SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// Error renders an error response.
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	return c.JSON(statusCode, domainerrors.ErrorResponse{
		Error: &domainerrors.ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

func meta(c echo.Context) *domainerrors.MetaInfo {
	return &domainerrors.MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}
