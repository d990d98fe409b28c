package payslip

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
	runs := r.Group("/payroll-runs/:id/payslips")
	runs.Use(middleware.AuthMiddleware())
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.GetByRun)
		runs.POST("", middleware.RBACAuthorize(rbacService, "payslip", "generate"), handler.GenerateForRun)
	}

	slips := r.Group("/payslips")
	slips.Use(middleware.AuthMiddleware())
	{
		slips.GET("/:id/download", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.Download)
	}
}
