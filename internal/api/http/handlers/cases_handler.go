package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/service"
	"github.com/spec-kit/case-service/internal/validation"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// CasesHandler manages the cases of the caller's tenant.
type CasesHandler struct {
	cases *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(cases *service.CaseService) *CasesHandler {
	return &CasesHandler{cases: cases}
}

// Create POST /cases. The tenant comes from the caller, never the body.
func (h *CasesHandler) Create(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	created, err := h.cases.CreateCase(c.UserContext(), principal.User, service.CaseInput{
		LicenseNumber: req.LicenseNumber,
		OwnerFullName: req.OwnerFullName,
		Type:          req.Type,
		Officer:       req.Officer,
		Color:         req.Color,
		Date:          req.Date,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.NewCaseResponse(created)))
}

// Update PUT /cases/:id.
func (h *CasesHandler) Update(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if !validation.ValidID(id) {
		return apperrors.NewInvalidID()
	}
	var req dto.UpdateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	updated, err := h.cases.UpdateCase(c.UserContext(), principal.User, id, service.CasePatch{
		Status:        req.Status,
		LicenseNumber: req.LicenseNumber,
		OwnerFullName: req.OwnerFullName,
		Type:          req.Type,
		Officer:       req.Officer,
		Color:         req.Color,
		Date:          req.Date,
		Description:   req.Description,
		Resolution:    req.Resolution,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewCaseResponse(updated)))
}

// Delete DELETE /cases/:id.
func (h *CasesHandler) Delete(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.cases.DeleteCase(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OK(nil))
}

// List GET /cases?status=&officer=.
func (h *CasesHandler) List(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	cases, err := h.cases.ListCases(c.UserContext(), principal.User, parseCaseQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewCaseResponses(cases)))
}

// Get GET /cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	principal, err := auth.RequirePrincipal(c)
	if err != nil {
		return err
	}
	found, err := h.cases.GetCase(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewCaseResponse(found)))
}

func parseCaseQuery(c *fiber.Ctx) service.CaseListFilter {
	var filter service.CaseListFilter
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter.Status = &status
	}
	if officer := strings.TrimSpace(c.Query("officer")); officer != "" {
		filter.OfficerID = &officer
	}
	return filter
}
