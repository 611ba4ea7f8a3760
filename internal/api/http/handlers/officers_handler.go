package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/service"
	"github.com/spec-kit/case-service/internal/validation"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// OfficersHandler manages the officers of the caller's tenant.
type OfficersHandler struct {
	accounts *service.AccountService
}

// NewOfficersHandler constructs handler.
func NewOfficersHandler(accounts *service.AccountService) *OfficersHandler {
	return &OfficersHandler{accounts: accounts}
}

// Create POST /officers.
func (h *OfficersHandler) Create(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateOfficerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	officer, err := h.accounts.CreateOfficer(c.UserContext(), principal.User, service.OfficerCreateInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Approved:  req.Approved,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.NewUserResponse(officer)))
}

// Update PUT /officers/:id.
func (h *OfficersHandler) Update(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if !validation.ValidID(id) {
		return apperrors.NewInvalidID()
	}
	var req dto.UpdateOfficerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	officer, err := h.accounts.UpdateOfficer(c.UserContext(), principal.User, id, service.OfficerPatch{
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Approved:  req.Approved,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewUserResponse(officer)))
}

// Delete DELETE /officers/:id.
func (h *OfficersHandler) Delete(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.accounts.DeleteOfficer(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OK(nil))
}

// List GET /officers.
func (h *OfficersHandler) List(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	officers, err := h.accounts.ListOfficers(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewUserResponses(officers)))
}

// Get GET /officers/:id.
func (h *OfficersHandler) Get(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	officer, err := h.accounts.GetOfficer(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewUserResponse(officer)))
}
