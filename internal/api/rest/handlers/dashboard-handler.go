package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ehealth-ke/facility-registry/internal/helper/utils"
	"github.com/ehealth-ke/facility-registry/internal/services"
)

type DashboardHandler struct {
	svc services.DashboardService
}

func NewDashboardHandler(svc services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/dashboard", h.Get)
}

func (h *DashboardHandler) Get(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	dashboard, err := h.svc.Build(actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dashboard)
}
