package route

import (
	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/controller"
	"github.com/varejotech/backoffice-api/internal/domain/user"
	"github.com/varejotech/backoffice-api/pkg/auth"
)

// SetupApprovalRoutes configura as rotas para o módulo de aprovações.
// Decidir tarefas é restrito a gestores, gerentes de compras e
// administradores.
func SetupApprovalRoutes(router *gin.RouterGroup, approvalController *controller.ApprovalController) {
	approvalRouter := router.Group("/approvals")
	{
		approvalRouter.Use(auth.JWTAuthMiddleware())
		approvalRouter.Use(auth.RoleAuthMiddleware(
			string(user.RoleAdmin),
			string(user.RoleManager),
			string(user.RolePurchasingManager),
		))
		{
			approvalRouter.GET("/pending", approvalController.ListPending)
			approvalRouter.GET("/:id", approvalController.Get)
			approvalRouter.POST("/:id/approve", approvalController.Approve)
			approvalRouter.POST("/:id/reject", approvalController.Reject)
		}
	}
}
