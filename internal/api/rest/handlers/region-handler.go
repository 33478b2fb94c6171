package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ehealth-ke/facility-registry/internal/dto"
	"github.com/ehealth-ke/facility-registry/internal/helper/utils"
	"github.com/ehealth-ke/facility-registry/internal/services"
	pkgutils "github.com/ehealth-ke/facility-registry/pkg/utils"
)

type RegionHandler struct {
	svc services.RegionService
}

func NewRegionHandler(svc services.RegionService) *RegionHandler {
	return &RegionHandler{svc: svc}
}

func (h *RegionHandler) SetupRoutes(app *fiber.App, staff fiber.Handler) {
	api := app.Group("/api")

	counties := api.Group("/counties")
	counties.Post("/", staff, h.CreateCounty)
	counties.Get("/", h.ListCounties)
	counties.Get("/:id", h.GetCounty)
	counties.Patch("/:id", staff, h.RenameCounty)

	constituencies := api.Group("/constituencies")
	constituencies.Post("/", staff, h.CreateConstituency)
	constituencies.Get("/", h.ListConstituencies)
	constituencies.Get("/:id", h.GetConstituency)
	constituencies.Patch("/:id", staff, h.RenameConstituency)

	wards := api.Group("/wards")
	wards.Post("/", staff, h.CreateWard)
	wards.Get("/", h.ListWards)
	wards.Get("/:id", h.GetWard)
	wards.Patch("/:id", staff, h.RenameWard)
}

// respondTrimmed honors a ?fields= selector on read endpoints.
func respondTrimmed(ctx *fiber.Ctx, data any) error {
	trimmed, err := pkgutils.SelectFields(data, ctx.Query("fields"))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, trimmed)
}

// ---------- County ----------

func (h *RegionHandler) CreateCounty(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateCountyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	county, err := h.svc.CreateCounty(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, county)
}

func (h *RegionHandler) ListCounties(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	counties, err := h.svc.ListCounties(actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return respondTrimmed(ctx, counties)
}

func (h *RegionHandler) GetCounty(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	county, err := h.svc.GetCounty(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return respondTrimmed(ctx, county)
}

func (h *RegionHandler) RenameCounty(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.UpdateRegionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	county, err := h.svc.RenameCounty(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, county)
}

// ---------- Constituency ----------

func (h *RegionHandler) CreateConstituency(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateConstituencyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	constituency, err := h.svc.CreateConstituency(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, constituency)
}

func (h *RegionHandler) ListConstituencies(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	countyID, err := optionalUUIDQuery(ctx, "county")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	constituencies, err := h.svc.ListConstituencies(actor, countyID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return respondTrimmed(ctx, constituencies)
}

func (h *RegionHandler) GetConstituency(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	constituency, err := h.svc.GetConstituency(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return respondTrimmed(ctx, constituency)
}

func (h *RegionHandler) RenameConstituency(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.UpdateRegionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	constituency, err := h.svc.RenameConstituency(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, constituency)
}

// ---------- Ward ----------

func (h *RegionHandler) CreateWard(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateWardRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	ward, err := h.svc.CreateWard(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, ward)
}

func (h *RegionHandler) ListWards(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	constituencyID, err := optionalUUIDQuery(ctx, "constituency")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	wards, err := h.svc.ListWards(actor, constituencyID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return respondTrimmed(ctx, wards)
}

func (h *RegionHandler) GetWard(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	ward, err := h.svc.GetWard(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return respondTrimmed(ctx, ward)
}

func (h *RegionHandler) RenameWard(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.UpdateRegionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	ward, err := h.svc.RenameWard(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, ward)
}
