package api

import (
	"strconv"
	"strings"

	"github.com/example/marketplace-services/domain/review"
	"github.com/example/marketplace-services/logging"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandlers serves /api/v1/reviews for one kind of reviewed subject.
type ReviewHandlers[T any, K comparable] struct {
	service      ReviewService[T, K]
	parseSubject func(string) (K, error)
	log          logging.RouteLogger
}

// NewProductReviewHandlers serves reviews keyed by numeric product id.
func NewProductReviewHandlers(service ReviewService[review.ProductReview, int64], log logging.RouteLogger) *ReviewHandlers[review.ProductReview, int64] {
	return &ReviewHandlers[review.ProductReview, int64]{
		service: service,
		parseSubject: func(raw string) (int64, error) {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return 0, badRequest("invalid product id %q", raw)
			}
			return id, nil
		},
		log: log,
	}
}

// NewRestaurantReviewHandlers serves reviews keyed by restaurant id.
func NewRestaurantReviewHandlers(service ReviewService[review.RestaurantReview, string], log logging.RouteLogger) *ReviewHandlers[review.RestaurantReview, string] {
	return &ReviewHandlers[review.RestaurantReview, string]{
		service: service,
		parseSubject: func(raw string) (string, error) {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				return "", badRequest("restaurant id is required")
			}
			return raw, nil
		},
		log: log,
	}
}

func (h *ReviewHandlers[T, K]) register(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/:subjectId", h.List)
	router.Post("/:subjectId", requireAuth, h.Create)
	router.Delete("/:reviewId", requireAuth, h.Delete)
}

// List handles GET /reviews/:subjectId
func (h *ReviewHandlers[T, K]) List(c *fiber.Ctx) error {
	subject, err := h.parseSubject(c.Params("subjectId"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	reviews, err := h.service.List(c.UserContext(), subject)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(reviews)
}

// Create handles POST /reviews/:subjectId
func (h *ReviewHandlers[T, K]) Create(c *fiber.Ctx) error {
	subject, err := h.parseSubject(c.Params("subjectId"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	var in review.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.log, badRequest("invalid request body"))
	}

	rev, err := h.service.Create(c.UserContext(), currentUserID(c), subject, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rev)
}

// Delete handles DELETE /reviews/:reviewId
func (h *ReviewHandlers[T, K]) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("reviewId"), 10, 64)
	if err != nil || id <= 0 {
		return respondError(c, h.log, badRequest("invalid review id %q", c.Params("reviewId")))
	}

	if err := h.service.Delete(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(MessageResponse{Message: "Review deleted successfully"})
}
