package bankfile

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

func (h *Handler) Summarize(c *gin.Context) {
	companyID := c.GetString("company_id")
	runID := c.Param("id")

	resp, err := h.service.Summarize(c.Request.Context(), companyID, runID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GenerateFile(c *gin.Context) {
	companyID := c.GetString("company_id")
	runID := c.Param("id")
	bank := c.Param("bank")

	var req GenerateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.GenerateFile(c.Request.Context(), companyID, runID, bank, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if result.Bank == BankBNU || result.Bank == BankBRI {
		contentType = "text/csv; charset=utf-8"
	}
	response.File(c, result.Filename, contentType, result.Content)
}
