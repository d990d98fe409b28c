package company

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
	companies := r.Group("/company")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("", middleware.RBACAuthorize(rbacService, "company", "read"), handler.Get)
		companies.PUT("", middleware.RBACAuthorize(rbacService, "company", "update"), handler.Update)
	}
}
