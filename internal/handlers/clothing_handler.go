package handlers

import (
	"tokobaju/internal/models"
	"tokobaju/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ClothingHandler handles HTTP requests for the catalog.
type ClothingHandler struct {
	service *services.ClothingService
	logger  *zap.Logger
}

// NewClothingHandler creates a new ClothingHandler.
func NewClothingHandler(service *services.ClothingService, logger *zap.Logger) *ClothingHandler {
	return &ClothingHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the catalog routes. auth guards every one of them.
func (h *ClothingHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/add-clothes", auth, h.HandleCreate)
	router.Get("/get-clothes/:id", auth, h.HandleGetByID)
	router.Patch("/edit-clothes/:id", auth, h.HandleUpdate)
	router.Delete("/delete-clothes/:id", auth, h.HandleDelete)
	router.Delete("/delete-all-clothes", auth, h.HandleDeleteAll)
	router.Get("/get-final-price/:id", auth, h.HandleFinalPrice)
}

// HandleCreate adds a new clothing item.
func (h *ClothingHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.CreateClothingInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}

	item, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return catalogError(c, h.logger, err, "Error adding clothes")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleGetByID returns a single clothing item.
func (h *ClothingHandler) HandleGetByID(c *fiber.Ctx) error {
	item, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return catalogError(c, h.logger, err, "Error getting clothes")
	}
	return c.JSON(item)
}

// HandleUpdate applies a partial update to a clothing item.
func (h *ClothingHandler) HandleUpdate(c *fiber.Ctx) error {
	var patch models.ClothingPatch
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&patch); err != nil {
			return badBody(c, err)
		}
	}

	item, err := h.service.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return catalogError(c, h.logger, err, "Error updating clothes")
	}
	return c.JSON(item)
}

// HandleDelete removes a single clothing item.
func (h *ClothingHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return catalogError(c, h.logger, err, "Error deleting clothes")
	}
	return c.JSON(fiber.Map{
		"message": "Clothes deleted successfully",
	})
}

// HandleDeleteAll empties the catalog.
func (h *ClothingHandler) HandleDeleteAll(c *fiber.Ctx) error {
	if err := h.service.DeleteAll(c.UserContext()); err != nil {
		return catalogError(c, h.logger, err, "Error deleting clothes")
	}
	return c.JSON(fiber.Map{
		"message": "All clothes deleted successfully",
	})
}

// HandleFinalPrice returns the discounted price of a clothing item.
func (h *ClothingHandler) HandleFinalPrice(c *fiber.Ctx) error {
	finalPrice, err := h.service.FinalPrice(c.UserContext(), c.Params("id"))
	if err != nil {
		return catalogError(c, h.logger, err, "Error calculating final price")
	}
	return c.JSON(fiber.Map{
		"finalPrice": finalPrice,
	})
}
