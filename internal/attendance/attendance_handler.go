package attendance

import (
	"net/http"
	"time"

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

func (h *Handler) RecordEntry(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RecordEntry(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetEmployeePeriod(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")

	from, to, err := parsePeriodQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetEmployeePeriod(c.Request.Context(), companyID, employeeID, from, to)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SummarizePeriod(c *gin.Context) {
	companyID := c.GetString("company_id")

	from, to, err := parsePeriodQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	summaries, err := h.service.SummarizePeriod(c.Request.Context(), companyID, from, to)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]PeriodSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = PeriodSummaryResponse(s)
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func parsePeriodQuery(c *gin.Context) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" {
		return time.Time{}, time.Time{}, apperror.RequiredField("from")
	}
	if toStr == "" {
		return time.Time{}, time.Time{}, apperror.RequiredField("to")
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("from")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("to")
	}
	return from, to, nil
}
