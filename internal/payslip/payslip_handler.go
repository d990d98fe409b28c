package payslip

import (
	"net/http"

	"tl-payroll/internal/shared/apperror"
	"tl-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetByRun(c *gin.Context) {
	companyID := c.GetString("company_id")
	runID := c.Param("id")

	resp, err := h.service.GetByRun(c.Request.Context(), companyID, runID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GenerateForRun is the manual fallback for when the paid event was lost or
// the template changed and slips need a reissue.
func (h *Handler) GenerateForRun(c *gin.Context) {
	companyID := c.GetString("company_id")
	runID := c.Param("id")

	count, err := h.service.GenerateForRun(c.Request.Context(), companyID, runID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"issued": count}, nil)
}

func (h *Handler) Download(c *gin.Context) {
	companyID := c.GetString("company_id")
	payslipID := c.Param("id")

	slip, err := h.service.Download(c.Request.Context(), companyID, payslipID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.File(c, slip.Filename, "application/pdf", slip.Content)
}
