package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ehealth-ke/facility-registry/internal/dto"
	"github.com/ehealth-ke/facility-registry/internal/helper/utils"
	"github.com/ehealth-ke/facility-registry/internal/services"
)

type CatalogHandler struct {
	svc services.CatalogService
}

func NewCatalogHandler(svc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) SetupRoutes(app *fiber.App, staff fiber.Handler) {
	api := app.Group("/api")

	ownerTypes := api.Group("/owner-types")
	ownerTypes.Post("/", staff, h.CreateOwnerType)
	ownerTypes.Get("/", h.ListOwnerTypes)
	ownerTypes.Get("/:id", h.GetOwnerType)
	ownerTypes.Patch("/:id", staff, h.UpdateOwnerType)

	owners := api.Group("/owners")
	owners.Post("/", staff, h.CreateOwner)
	owners.Get("/", h.ListOwners)
	owners.Get("/:id", h.GetOwner)
	owners.Patch("/:id", staff, h.UpdateOwner)

	facilityTypes := api.Group("/facility-types")
	facilityTypes.Post("/", staff, h.CreateFacilityType)
	facilityTypes.Get("/", h.ListFacilityTypes)
	facilityTypes.Get("/:id", h.GetFacilityType)
	facilityTypes.Patch("/:id", staff, h.UpdateFacilityType)

	facilityStatuses := api.Group("/facility-statuses")
	facilityStatuses.Post("/", staff, h.CreateFacilityStatus)
	facilityStatuses.Get("/", h.ListFacilityStatuses)
	facilityStatuses.Get("/:id", h.GetFacilityStatus)
	facilityStatuses.Patch("/:id", staff, h.UpdateFacilityStatus)

	kephLevels := api.Group("/keph-levels")
	kephLevels.Post("/", staff, h.CreateKephLevel)
	kephLevels.Get("/", h.ListKephLevels)
	kephLevels.Get("/:id", h.GetKephLevel)
	kephLevels.Patch("/:id", staff, h.UpdateKephLevel)

	regulationStatuses := api.Group("/regulation-statuses")
	regulationStatuses.Post("/", staff, h.CreateRegulationStatus)
	regulationStatuses.Get("/", h.ListRegulationStatuses)
	regulationStatuses.Get("/:id", h.GetRegulationStatus)
	regulationStatuses.Patch("/:id", staff, h.UpdateRegulationStatus)

	regulatingBodies := api.Group("/regulatory-bodies")
	regulatingBodies.Post("/", staff, h.CreateRegulatingBody)
	regulatingBodies.Get("/", h.ListRegulatingBodies)
	regulatingBodies.Get("/:id", h.GetRegulatingBody)
	regulatingBodies.Patch("/:id", staff, h.UpdateRegulatingBody)

	contactTypes := api.Group("/contact-types")
	contactTypes.Post("/", staff, h.CreateContactType)
	contactTypes.Get("/", h.ListContactTypes)
	contactTypes.Get("/:id", h.GetContactType)
	contactTypes.Patch("/:id", staff, h.UpdateContactType)

	serviceCategories := api.Group("/service-categories")
	serviceCategories.Post("/", staff, h.CreateServiceCategory)
	serviceCategories.Get("/", h.ListServiceCategories)
	serviceCategories.Get("/:id", h.GetServiceCategory)
	serviceCategories.Patch("/:id", staff, h.UpdateServiceCategory)

	servicesGroup := api.Group("/services")
	servicesGroup.Post("/", staff, h.CreateService)
	servicesGroup.Get("/", h.ListServices)
	servicesGroup.Get("/:id", h.GetService)
	servicesGroup.Patch("/:id", staff, h.UpdateService)
}

// create parses the shared name/description body and hands it to fn.
func (h *CatalogHandler) create(ctx *fiber.Ctx, fn func(dto.CreateCatalogEntryRequest, uuid.UUID) (any, error)) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateCatalogEntryRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	out, err := fn(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, out)
}

func (h *CatalogHandler) get(ctx *fiber.Ctx, fn func(uuid.UUID) (any, error)) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	out, err := fn(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) patch(ctx *fiber.Ctx, fn func(uuid.UUID, dto.UpdateCatalogEntryRequest, uuid.UUID) (any, error)) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	var requestBody dto.UpdateCatalogEntryRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	out, err := fn(id, requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

// ---------- Owner types ----------

func (h *CatalogHandler) CreateOwnerType(ctx *fiber.Ctx) error {
	return h.create(ctx, func(req dto.CreateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.CreateOwnerType(req, actor)
	})
}

func (h *CatalogHandler) GetOwnerType(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetOwnerType(id)
	})
}

func (h *CatalogHandler) ListOwnerTypes(ctx *fiber.Ctx) error {
	out, err := h.svc.ListOwnerTypes()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) UpdateOwnerType(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateOwnerType(id, req, actor)
	})
}

// ---------- Owners ----------

func (h *CatalogHandler) CreateOwner(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateOwnerRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	owner, err := h.svc.CreateOwner(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, owner)
}

func (h *CatalogHandler) ListOwners(ctx *fiber.Ctx) error {
	ownerTypeID, err := optionalUUIDQuery(ctx, "owner_type")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	owners, err := h.svc.ListOwners(ownerTypeID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, owners)
}

func (h *CatalogHandler) GetOwner(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetOwner(id)
	})
}

func (h *CatalogHandler) UpdateOwner(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateOwner(id, req, actor)
	})
}

// ---------- Facility types ----------

func (h *CatalogHandler) CreateFacilityType(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateFacilityTypeRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	out, err := h.svc.CreateFacilityType(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, out)
}

func (h *CatalogHandler) GetFacilityType(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetFacilityType(id)
	})
}

func (h *CatalogHandler) ListFacilityTypes(ctx *fiber.Ctx) error {
	out, err := h.svc.ListFacilityTypes()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) UpdateFacilityType(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateFacilityType(id, req, actor)
	})
}

// ---------- Facility statuses ----------

func (h *CatalogHandler) CreateFacilityStatus(ctx *fiber.Ctx) error {
	return h.create(ctx, func(req dto.CreateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.CreateFacilityStatus(req, actor)
	})
}

func (h *CatalogHandler) GetFacilityStatus(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetFacilityStatus(id)
	})
}

func (h *CatalogHandler) ListFacilityStatuses(ctx *fiber.Ctx) error {
	out, err := h.svc.ListFacilityStatuses()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) UpdateFacilityStatus(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateFacilityStatus(id, req, actor)
	})
}

// ---------- KEPH levels ----------

func (h *CatalogHandler) CreateKephLevel(ctx *fiber.Ctx) error {
	return h.create(ctx, func(req dto.CreateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.CreateKephLevel(req, actor)
	})
}

func (h *CatalogHandler) GetKephLevel(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetKephLevel(id)
	})
}

func (h *CatalogHandler) ListKephLevels(ctx *fiber.Ctx) error {
	out, err := h.svc.ListKephLevels()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) UpdateKephLevel(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateKephLevel(id, req, actor)
	})
}

// ---------- Regulation statuses ----------

func (h *CatalogHandler) CreateRegulationStatus(ctx *fiber.Ctx) error {
	return h.create(ctx, func(req dto.CreateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.CreateRegulationStatus(req, actor)
	})
}

func (h *CatalogHandler) GetRegulationStatus(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetRegulationStatus(id)
	})
}

func (h *CatalogHandler) ListRegulationStatuses(ctx *fiber.Ctx) error {
	out, err := h.svc.ListRegulationStatuses()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) UpdateRegulationStatus(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateRegulationStatus(id, req, actor)
	})
}

// ---------- Regulating bodies ----------

func (h *CatalogHandler) CreateRegulatingBody(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateRegulatingBodyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	out, err := h.svc.CreateRegulatingBody(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, out)
}

func (h *CatalogHandler) GetRegulatingBody(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetRegulatingBody(id)
	})
}

func (h *CatalogHandler) ListRegulatingBodies(ctx *fiber.Ctx) error {
	out, err := h.svc.ListRegulatingBodies()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) UpdateRegulatingBody(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateRegulatingBody(id, req, actor)
	})
}

// ---------- Contact types ----------

func (h *CatalogHandler) CreateContactType(ctx *fiber.Ctx) error {
	return h.create(ctx, func(req dto.CreateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.CreateContactType(req, actor)
	})
}

func (h *CatalogHandler) GetContactType(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetContactType(id)
	})
}

func (h *CatalogHandler) ListContactTypes(ctx *fiber.Ctx) error {
	out, err := h.svc.ListContactTypes()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) UpdateContactType(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateContactType(id, req, actor)
	})
}

// ---------- Service categories ----------

func (h *CatalogHandler) CreateServiceCategory(ctx *fiber.Ctx) error {
	return h.create(ctx, func(req dto.CreateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.CreateServiceCategory(req, actor)
	})
}

func (h *CatalogHandler) GetServiceCategory(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetServiceCategory(id)
	})
}

func (h *CatalogHandler) ListServiceCategories(ctx *fiber.Ctx) error {
	out, err := h.svc.ListServiceCategories()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) UpdateServiceCategory(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateServiceCategory(id, req, actor)
	})
}

// ---------- Services ----------

func (h *CatalogHandler) CreateService(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateServiceRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	out, err := h.svc.CreateService(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, out)
}

func (h *CatalogHandler) ListServices(ctx *fiber.Ctx) error {
	categoryID, err := optionalUUIDQuery(ctx, "category")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.ListServices(categoryID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *CatalogHandler) GetService(ctx *fiber.Ctx) error {
	return h.get(ctx, func(id uuid.UUID) (any, error) {
		return h.svc.GetService(id)
	})
}

func (h *CatalogHandler) UpdateService(ctx *fiber.Ctx) error {
	return h.patch(ctx, func(id uuid.UUID, req dto.UpdateCatalogEntryRequest, actor uuid.UUID) (any, error) {
		return h.svc.UpdateService(id, req, actor)
	})
}
