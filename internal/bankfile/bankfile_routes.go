package bankfile

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
	runs := r.Group("/payroll-runs/:id/bank-files")
	runs.Use(middleware.AuthMiddleware())
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "bankfile", "read"), handler.Summarize)
		runs.POST("/:bank", middleware.RBACAuthorize(rbacService, "bankfile", "generate"), idempotency, handler.GenerateFile)
	}
}
