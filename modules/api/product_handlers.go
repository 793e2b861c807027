package api

import (
	"github.com/example/marketplace-services/domain/product"
	"github.com/example/marketplace-services/logging"
	"github.com/gofiber/fiber/v2"
)

// ProductHandlers serves /api/v1/products.
type ProductHandlers struct {
	service ProductService
	log     logging.RouteLogger
}

// NewProductHandlers creates product handlers.
func NewProductHandlers(service ProductService, log logging.RouteLogger) *ProductHandlers {
	return &ProductHandlers{service: service, log: log}
}

func (h *ProductHandlers) register(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/", h.List)
	router.Get("/vendor/:id", h.ListByVendor)
	router.Post("/bulk", h.Bulk)
	router.Put("/quantity/:id", h.UpdateQuantity)
	router.Get("/:id", h.Get)
	router.Post("/", requireAuth, h.Create)
	router.Put("/:id", requireAuth, h.Update)
	router.Delete("/:id", requireAuth, h.Delete)
}

// List handles GET /products?search=&category=&offset=&limit=
func (h *ProductHandlers) List(c *fiber.Ctx) error {
	filter := product.ListFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Offset:   c.QueryInt("offset", 0),
		Limit:    c.QueryInt("limit", 0),
	}

	products, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(products)
}

// ListByVendor handles GET /products/vendor/:id
func (h *ProductHandlers) ListByVendor(c *fiber.Ctx) error {
	products, err := h.service.ListByOwner(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(products)
}

// Get handles GET /products/:id
func (h *ProductHandlers) Get(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	p, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(p)
}

// Bulk handles POST /products/bulk
func (h *ProductHandlers) Bulk(c *fiber.Ctx) error {
	var req BulkProductsRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, badRequest("invalid request body"))
	}

	ids := req.IDs()
	if ids == nil {
		return respondError(c, h.log, badRequest("product_ids is required"))
	}

	products, err := h.service.BulkGet(c.UserContext(), ids)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(products)
}

// Create handles POST /products
func (h *ProductHandlers) Create(c *fiber.Ctx) error {
	var in product.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.log, badRequest("invalid request body"))
	}

	p, err := h.service.Create(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdateQuantity handles PUT /products/quantity/:id
func (h *ProductHandlers) UpdateQuantity(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var req QuantityUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, badRequest("invalid request body"))
	}
	if req.QuantityUpdate == nil {
		return respondError(c, h.log, badRequest("quantityUpdate is required"))
	}

	p, err := h.service.AdjustQuantity(c.UserContext(), id, *req.QuantityUpdate)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(p)
}

// Update handles PUT /products/:id
func (h *ProductHandlers) Update(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var in product.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.log, badRequest("invalid request body"))
	}

	p, err := h.service.Update(c.UserContext(), id, currentUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(p)
}

// Delete handles DELETE /products/:id
func (h *ProductHandlers) Delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	p, err := h.service.Delete(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(p)
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, badRequest("invalid product id %q", c.Params("id"))
	}
	return int64(id), nil
}
