package route

import (
	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/controller"
	"github.com/varejotech/backoffice-api/pkg/auth"
)

// SetupPurchaseOrderRoutes configura as rotas para o módulo de pedidos de
// compra
func SetupPurchaseOrderRoutes(router *gin.RouterGroup, purchaseOrderController *controller.PurchaseOrderController) {
	poRouter := router.Group("/purchase-orders")
	{
		poRouter.Use(auth.JWTAuthMiddleware())
		{
			poRouter.POST("", purchaseOrderController.Create)
			poRouter.GET("", purchaseOrderController.List)
			poRouter.GET("/:id", purchaseOrderController.Get)

			// Transições do ciclo de vida
			poRouter.POST("/:id/send", purchaseOrderController.Send)
			poRouter.POST("/:id/cancel", purchaseOrderController.Cancel)
			poRouter.POST("/:id/lines/:lineId/receive", purchaseOrderController.ReceiveLine)
		}
	}
}
