package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ehealth-ke/facility-registry/internal/dto"
	"github.com/ehealth-ke/facility-registry/internal/helper/utils"
	"github.com/ehealth-ke/facility-registry/internal/services"
	pkgutils "github.com/ehealth-ke/facility-registry/pkg/utils"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type FacilityHandler struct {
	svc services.FacilityService
}

func NewFacilityHandler(svc services.FacilityService) *FacilityHandler {
	return &FacilityHandler{svc: svc}
}

func (h *FacilityHandler) SetupRoutes(app *fiber.App, staff fiber.Handler) {
	api := app.Group("/api")

	facilities := api.Group("/facilities")
	facilities.Post("/", h.Create)
	facilities.Get("/", h.List)
	facilities.Get("/:id", h.Get)
	facilities.Patch("/:id", h.Update)
	facilities.Delete("/:id", staff, h.Delete)

	facilities.Post("/:id/approvals", staff, h.Approve)
	facilities.Get("/:id/approvals", h.ListApprovals)

	facilities.Post("/:id/contacts", h.AddContact)
	facilities.Get("/:id/contacts", h.ListContacts)

	facilities.Post("/:id/units", h.AddUnit)
	facilities.Get("/:id/units", h.ListUnits)

	facilities.Post("/:id/services", h.AddService)
	facilities.Get("/:id/services", h.ListFacilityServices)

	units := api.Group("/units")
	units.Post("/:id/regulations", staff, h.AddUnitRegulation)
	units.Get("/:id/regulations", h.ListUnitRegulations)

	updates := api.Group("/facility-updates")
	updates.Get("/", h.ListUpdates)
	updates.Get("/:id", h.GetUpdate)
	updates.Patch("/:id", staff, h.ResolveUpdate)
}

func (h *FacilityHandler) Create(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateFacilityRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	facility, err := h.svc.Create(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, facility)
}

func (h *FacilityHandler) Get(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	facility, err := h.svc.Get(id, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return respondTrimmed(ctx, facility)
}

func (h *FacilityHandler) List(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var query dto.FacilityListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid query parameters")
	}
	query.Limit = pkgutils.ClampLimit(query.Limit, defaultPageSize, maxPageSize)

	facilities, err := h.svc.List(query, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return respondTrimmed(ctx, facilities)
}

func (h *FacilityHandler) Update(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.UpdateFacilityRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	facility, err := h.svc.Update(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, facility)
}

func (h *FacilityHandler) Delete(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	if err := h.svc.Delete(id, actor); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "facility deleted")
}

// ---------- Approvals ----------

func (h *FacilityHandler) Approve(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.CreateApprovalRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	facility, err := h.svc.Approve(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, facility)
}

func (h *FacilityHandler) ListApprovals(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	approvals, err := h.svc.ListApprovals(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, approvals)
}

// ---------- Update workflow ----------

func (h *FacilityHandler) ListUpdates(ctx *fiber.Ctx) error {
	facilityID, err := optionalUUIDQuery(ctx, "facility")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	pending, err := optionalBoolQuery(ctx, "pending")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	updates, err := h.svc.ListUpdates(facilityID, pending)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, updates)
}

func (h *FacilityHandler) GetUpdate(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	update, err := h.svc.GetUpdate(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, update)
}

func (h *FacilityHandler) ResolveUpdate(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.ResolveUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	update, err := h.svc.ResolveUpdate(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, update)
}

// ---------- Contacts ----------

func (h *FacilityHandler) AddContact(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.CreateFacilityContactRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	contact, err := h.svc.AddContact(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, contact)
}

func (h *FacilityHandler) ListContacts(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	contacts, err := h.svc.ListContacts(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, contacts)
}

// ---------- Units ----------

func (h *FacilityHandler) AddUnit(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.CreateFacilityUnitRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	unit, err := h.svc.AddUnit(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, unit)
}

func (h *FacilityHandler) ListUnits(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	units, err := h.svc.ListUnits(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, units)
}

func (h *FacilityHandler) AddUnitRegulation(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.CreateUnitRegulationRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	regulation, err := h.svc.AddUnitRegulation(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, regulation)
}

func (h *FacilityHandler) ListUnitRegulations(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	regulations, err := h.svc.ListUnitRegulations(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, regulations)
}

// ---------- Services ----------

func (h *FacilityHandler) AddService(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.CreateFacilityServiceRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	fs, err := h.svc.AddService(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fs)
}

func (h *FacilityHandler) ListFacilityServices(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	fs, err := h.svc.ListFacilityServices(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fs)
}
