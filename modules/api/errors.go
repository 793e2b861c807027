package api

import (
	"errors"
	"fmt"

	"github.com/example/marketplace-services/domain/product"
	"github.com/example/marketplace-services/domain/restaurant"
	"github.com/example/marketplace-services/domain/review"
	"github.com/example/marketplace-services/logging"
	"github.com/gofiber/fiber/v2"
)

// errBadRequest marks malformed path parameters and bodies.
var errBadRequest = errors.New("bad request")

const internalErrorMessage = "Something went wrong"

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// classify maps an error to its HTTP status and client-facing body.
// Infrastructure errors never leak their text.
func classify(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, product.ErrInsufficientStock):
		return fiber.StatusBadRequest, ErrorResponse{Error: "insufficient_stock", Message: "Not enough products in stock"}
	case errors.Is(err, product.ErrNotFound):
		return fiber.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Product not found"}
	case errors.Is(err, restaurant.ErrNotFound):
		return fiber.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Restaurant not found"}
	case errors.Is(err, review.ErrNotFound):
		return fiber.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Review not found"}
	case errors.Is(err, review.ErrSubjectNotFound):
		return fiber.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Reviewed item not found"}
	case errors.Is(err, errBadRequest),
		errors.Is(err, product.ErrInvalidInput),
		errors.Is(err, restaurant.ErrInvalidInput),
		errors.Is(err, review.ErrInvalidInput):
		return fiber.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: internalErrorMessage}
	}
}

// respondError logs the outcome and writes the mapped error response.
func respondError(c *fiber.Ctx, log logging.RouteLogger, err error) error {
	status, body := classify(err)
	log.Log(logging.RouteEvent{
		Route:      c.Method() + " " + c.Route().Path,
		StatusCode: status,
		Message:    err.Error(),
		UserID:     currentUserID(c),
		RequestID:  requestID(c),
	})
	return c.Status(status).JSON(body)
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// customErrorHandler handles errors that escape route handlers.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := internalErrorMessage

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		if code < fiber.StatusInternalServerError {
			message = e.Message
		}
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
