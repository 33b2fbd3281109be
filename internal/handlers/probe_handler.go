package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"attar/internal/services"
)

// ProbeHandler handles the connectivity test endpoints.
type ProbeHandler struct {
	service *services.ProbeService
}

// NewProbeHandler creates a new ProbeHandler.
func NewProbeHandler(service *services.ProbeService) *ProbeHandler {
	return &ProbeHandler{
		service: service,
	}
}

// RegisterRoutes registers the probe routes with the Fiber app.
func (h *ProbeHandler) RegisterRoutes(router fiber.Router) {
	probeRoutes := router.Group("/tests")
	probeRoutes.Get("/", h.HandleGetProbes)
	probeRoutes.Post("/", h.HandleCreateProbe)
}

// HandleGetProbes lists every probe record, verifying the database is
// reachable end to end.
func (h *ProbeHandler) HandleGetProbes(c *fiber.Ctx) error {
	probes, err := h.service.GetAllProbes()
	if err != nil {
		log.Printf("Error fetching probes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error in fetching tests",
			"error":   err.Error(),
		})
	}
	return c.JSON(probes)
}

// HandleCreateProbe writes a new probe record.
func (h *ProbeHandler) HandleCreateProbe(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid or missing 'name' in the request body",
		})
	}

	probe, err := h.service.CreateProbe(body.Name)
	if err != nil {
		log.Printf("Error creating probe: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error in creating a new test",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(probe)
}
