package route

import (
	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/controller"
	"github.com/varejotech/backoffice-api/internal/domain/user"
	"github.com/varejotech/backoffice-api/pkg/auth"
)

// SetupUserRoutes configura as rotas para o módulo de usuários.
// Toda a gestão de usuários é restrita a administradores.
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	userRouter := router.Group("/users")
	{
		userRouter.Use(auth.JWTAuthMiddleware())
		userRouter.Use(auth.RoleAuthMiddleware(string(user.RoleAdmin)))
		{
			userRouter.POST("", userController.Create)
			userRouter.GET("", userController.List)
			userRouter.GET("/:id", userController.Get)
			userRouter.PUT("/:id", userController.Update)
			userRouter.DELETE("/:id", userController.Delete)

			// Ativação e desativação são transições explícitas e reversíveis
			userRouter.PATCH("/:id/activate", userController.Activate)
			userRouter.PATCH("/:id/deactivate", userController.Deactivate)
		}
	}
}
