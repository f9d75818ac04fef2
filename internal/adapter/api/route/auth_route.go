package route

import (
	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/controller"
	"github.com/varejotech/backoffice-api/pkg/auth"
)

// SetupAuthRoutes configura as rotas para o módulo de autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		// Rotas públicas
		authRouter.POST("/login", authController.Login)
		authRouter.POST("/register", authController.Register)

		// Renovação não usa o middleware pois valida o token de refresh no corpo
		authRouter.POST("/refresh", authController.RefreshToken)

		// Rotas do usuário autenticado
		protected := authRouter.Group("")
		protected.Use(auth.JWTAuthMiddleware())
		{
			protected.GET("/me", authController.Me)
			protected.PUT("/update-profile", authController.UpdateProfile)
			protected.POST("/change-password", authController.ChangePassword)
		}
	}
}
