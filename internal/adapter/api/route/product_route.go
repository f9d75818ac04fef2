package route

import (
	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/controller"
	"github.com/varejotech/backoffice-api/pkg/auth"
)

// SetupProductRoutes configura as rotas para o módulo de produtos
func SetupProductRoutes(router *gin.RouterGroup, productController *controller.ProductController) {
	productRouter := router.Group("/products")
	{
		productRouter.Use(auth.JWTAuthMiddleware())
		{
			productRouter.POST("", productController.Create)
			productRouter.GET("", productController.List)
			productRouter.GET("/:id", productController.Get)
			productRouter.PUT("/:id", productController.Update)

			// A remoção é sempre lógica
			productRouter.DELETE("/:id", productController.Delete)
		}
	}
}
