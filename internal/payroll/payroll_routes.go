package payroll

import (
	"tl-payroll/internal/middleware"
	"tl-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	idempotency gin.HandlerFunc,
) {
	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthMiddleware())
	{
		runs.POST("", middleware.RBACAuthorize(rbacService, "payroll", "create"), idempotency, handler.CreateRun)
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		runs.POST("/:id/process", middleware.RBACAuthorize(rbacService, "payroll", "process"), handler.Process)
		runs.POST("/:id/pay", middleware.RBACAuthorize(rbacService, "payroll", "pay"), handler.MarkPaid)
		runs.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "payroll", "process"), handler.Cancel)
	}
}
