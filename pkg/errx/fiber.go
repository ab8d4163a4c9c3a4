package errx

import (
	"errors"

	"github.com/Abraxas-365/supplierportal/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

const requestIDHeader = "X-Request-ID"

// FiberErrorHandler converts returned handler errors into the standard JSON
// error body. Internal errors are logged with their cause and reported with a
// generic message; debug additionally exposes the underlying error.
func FiberErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = c.GetRespHeader(requestIDHeader)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"error":      fe.Message,
				"code":       "FIBER_ERROR",
				"status":     fe.Code,
				"request_id": requestID,
			})
		}

		var e *Error
		if !errors.As(err, &e) {
			e = Wrap(err, "An unexpected error occurred", TypeInternal)
		}

		entry := logx.WithFields(logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"ip":         c.IP(),
			"request_id": requestID,
			"code":       e.Code,
		})
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			entry.WithError(err).Error("Request failed")
		} else {
			entry.Debugf("Request rejected: %s", e.Message)
		}

		message := e.Message
		if e.Type == TypeInternal && !debug {
			message = "An unexpected error occurred"
		}

		response := fiber.Map{
			"error":      message,
			"code":       e.Code,
			"type":       string(e.Type),
			"status":     e.HTTPStatus,
			"request_id": requestID,
		}
		if len(e.Details) > 0 && e.Type != TypeInternal {
			response["details"] = e.Details
		}
		if debug && e.Err != nil {
			response["underlying_error"] = e.Err.Error()
		}

		return c.Status(e.HTTPStatus).JSON(response)
	}
}
