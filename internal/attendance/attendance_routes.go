package attendance

import (
	"tl-payroll/internal/middleware"
	"tl-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware())
	{
		timesheets.POST("", middleware.RBACAuthorize(rbacService, "timesheet", "create"), handler.RecordEntry)
		timesheets.GET("/summary", middleware.RBACAuthorize(rbacService, "timesheet", "read"), handler.SummarizePeriod)
		timesheets.GET("/employees/:employeeId", middleware.RBACAuthorize(rbacService, "timesheet", "read"), handler.GetEmployeePeriod)
	}
}
