package api

import (
	"strings"

	"github.com/example/marketplace-services/domain/restaurant"
	"github.com/example/marketplace-services/logging"
	"github.com/gofiber/fiber/v2"
)

// RestaurantHandlers serves /api/v1/restaurants.
type RestaurantHandlers struct {
	service RestaurantService
	log     logging.RouteLogger
}

// NewRestaurantHandlers creates restaurant handlers.
func NewRestaurantHandlers(service RestaurantService, log logging.RouteLogger) *RestaurantHandlers {
	return &RestaurantHandlers{service: service, log: log}
}

func (h *RestaurantHandlers) register(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/", h.List)
	router.Get("/vendor", requireAuth, h.ListMine)
	router.Post("/", requireAuth, h.Create)
	router.Put("/:restaurantId", requireAuth, h.Update)
	router.Delete("/:restaurantId", requireAuth, h.Delete)
}

// List handles GET /restaurants?city=&offset=&limit=
func (h *RestaurantHandlers) List(c *fiber.Ctx) error {
	filter := restaurant.ListFilter{
		City:   c.Query("city"),
		Offset: c.QueryInt("offset", 0),
		Limit:  c.QueryInt("limit", 0),
	}

	restaurants, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(restaurants)
}

// ListMine handles GET /restaurants/vendor
func (h *RestaurantHandlers) ListMine(c *fiber.Ctx) error {
	restaurants, err := h.service.ListByOwner(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(restaurants)
}

// Create handles POST /restaurants
func (h *RestaurantHandlers) Create(c *fiber.Ctx) error {
	var in restaurant.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.log, badRequest("invalid request body"))
	}

	r, err := h.service.Create(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// Update handles PUT /restaurants/:restaurantId
func (h *RestaurantHandlers) Update(c *fiber.Ctx) error {
	id, err := restaurantID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var in restaurant.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.log, badRequest("invalid request body"))
	}

	r, err := h.service.Update(c.UserContext(), id, currentUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(r)
}

// Delete handles DELETE /restaurants/:restaurantId
func (h *RestaurantHandlers) Delete(c *fiber.Ctx) error {
	id, err := restaurantID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.service.Delete(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(MessageResponse{Message: "Restaurant deleted successfully"})
}

func restaurantID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Params("restaurantId"))
	if id == "" {
		return "", badRequest("restaurant id is required")
	}
	return id, nil
}
