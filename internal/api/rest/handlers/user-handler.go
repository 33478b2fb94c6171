package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ehealth-ke/facility-registry/internal/dto"
	"github.com/ehealth-ke/facility-registry/internal/helper/utils"
	"github.com/ehealth-ke/facility-registry/internal/services"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SetupAuthRoutes registers the routes that must stay reachable without
// a token.
func (h *UserHandler) SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/users/login", h.Login)
}

func (h *UserHandler) SetupRoutes(app *fiber.App, staff fiber.Handler) {
	api := app.Group("/api")

	users := api.Group("/users")
	users.Get("/me", h.Me)

	users.Post("/", staff, h.Register)
	users.Get("/", staff, h.List)

	users.Post("/counties", staff, h.AssignCounty)
	users.Get("/:id/counties", staff, h.ListUserCounties)
	users.Patch("/counties/:id/retire", staff, h.RetireUserCounty)

	users.Post("/constituencies", staff, h.AssignConstituency)
	users.Get("/:id/constituencies", staff, h.ListUserConstituencies)
	users.Patch("/constituencies/:id/retire", staff, h.RetireUserConstituency)

	users.Post("/regulatory-bodies", staff, h.AssignRegulatoryBody)
	users.Get("/regulatory-bodies", staff, h.ListRegulatoryBodyUsers)
	users.Get("/regulatory-bodies/:id", staff, h.GetRegulatoryBodyUser)

	// wildcard last so the fixed segments above keep their routes
	users.Get("/:id", staff, h.Get)
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	token, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "invalid email or password")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, token)
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	user, err := h.svc.Get(actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CreateUserRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	user, err := h.svc.Register(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, user)
}

func (h *UserHandler) List(ctx *fiber.Ctx) error {
	users, err := h.svc.List()
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, users)
}

func (h *UserHandler) Get(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.svc.Get(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

// ---------- Scope assignments ----------

func (h *UserHandler) AssignCounty(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.AssignCountyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	uc, err := h.svc.AssignCounty(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, uc)
}

func (h *UserHandler) ListUserCounties(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.ListUserCounties(&id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *UserHandler) RetireUserCounty(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	if err := h.svc.RetireUserCounty(id, actor); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "assignment retired")
}

func (h *UserHandler) AssignConstituency(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.AssignConstituencyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	uc, err := h.svc.AssignConstituency(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, uc)
}

func (h *UserHandler) ListUserConstituencies(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.ListUserConstituencies(&id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *UserHandler) RetireUserConstituency(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	if err := h.svc.RetireUserConstituency(id, actor); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "assignment retired")
}

func (h *UserHandler) AssignRegulatoryBody(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.AssignRegulatoryBodyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	ru, err := h.svc.AssignRegulatoryBody(requestBody, actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, ru)
}

func (h *UserHandler) ListRegulatoryBodyUsers(ctx *fiber.Ctx) error {
	bodyID, err := optionalUUIDQuery(ctx, "regulatory_body")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	out, err := h.svc.ListRegulatoryBodyUsers(bodyID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *UserHandler) GetRegulatoryBodyUser(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	ru, err := h.svc.GetRegulatoryBodyUser(id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, ru)
}
