package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/service"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// PublicHandler accepts unauthenticated case reports.
type PublicHandler struct {
	cases *service.CaseService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(cases *service.CaseService) *PublicHandler {
	return &PublicHandler{cases: cases}
}

// Report POST /public/report.
func (h *PublicHandler) Report(c *fiber.Ctx) error {
	var req dto.PublicReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	reported, err := h.cases.ReportCase(c.UserContext(), req.TenantID, service.CaseInput{
		LicenseNumber: req.LicenseNumber,
		OwnerFullName: req.OwnerFullName,
		Type:          req.Type,
		Color:         req.Color,
		Date:          req.Date,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.NewCaseResponse(reported)))
}
