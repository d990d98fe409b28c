package paycomponent

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
	comps := r.Group("/pay-components")
	comps.Use(middleware.AuthMiddleware())
	{
		comps.POST("", middleware.RBACAuthorize(rbacService, "paycomponent", "create"), handler.Create)
		comps.GET("/employees/:employeeId", middleware.RBACAuthorize(rbacService, "paycomponent", "read"), handler.GetByEmployee)
		comps.PUT("/:id", middleware.RBACAuthorize(rbacService, "paycomponent", "update"), handler.Update)
		comps.DELETE("/:id", middleware.RBACAuthorize(rbacService, "paycomponent", "delete"), handler.Delete)
	}
}
