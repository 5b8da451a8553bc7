package handlers

import (
	"errors"

	"server/internal/app"
	"server/internal/apperrors"
	visaStatController "server/internal/controllers"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"github.com/gofiber/fiber/v2"
)

type VisaStatHandler struct {
	Handler
	controller visaStatController.VisaStatController
}

func NewVisaStatHandler(app app.App, router fiber.Router) *VisaStatHandler {
	log := logger.New("handlers").File("visaStat_handler")
	return &VisaStatHandler{
		controller: *app.VisaStatController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *VisaStatHandler) Register() {
	visaStats := h.router.Group("/visa-stats")
	visaStats.Post("/", h.submitVisaStat)
	visaStats.Get("/", h.getVisaStats)
	visaStats.Get("/summary", h.getSummary)

	h.router.Get("/export", h.exportVisaStats)
}

func (h *VisaStatHandler) submitVisaStat(c *fiber.Ctx) error {
	log := h.log.Function("submitVisaStat")

	var request SubmitVisaStatRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse visa stat request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse visa stat request"})
	}

	stat, err := h.controller.Submit(c.Context(), &request)
	if err != nil {
		log.Er("failed to submit visa stat", err)
		if errors.Is(err, apperrors.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": "invalid visa stat", "error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to submit visa stat", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "visaStat": stat})
}

func (h *VisaStatHandler) getVisaStats(c *fiber.Ctx) error {
	log := h.log.Function("getVisaStats")

	stats, err := h.controller.GetAll(c.Context())
	if err != nil {
		log.Er("failed to get visa stats", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get visa stats", "error": err.Error()})
	}

	return c.JSON(stats)
}

func (h *VisaStatHandler) getSummary(c *fiber.Ctx) error {
	log := h.log.Function("getSummary")

	filter := services.StatsFilter{
		City:       c.Query("city"),
		VisaCenter: c.Query("visa_center"),
		Period:     c.Query("period"),
	}

	response, err := h.controller.GetStats(c.Context(), filter)
	if err != nil {
		log.Er("failed to compute summary", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to compute summary", "error": err.Error()})
	}

	return c.JSON(response)
}

func (h *VisaStatHandler) exportVisaStats(c *fiber.Ctx) error {
	log := h.log.Function("exportVisaStats")

	buf, filename, ok, err := h.controller.Export(c.Context())
	if err != nil {
		log.Er("failed to export visa stats", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to export visa stats", "error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "no statistics collected yet"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
