package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
)

// JWTAuthMiddleware cria um middleware para autenticação JWT
func JWTAuthMiddleware() gin.HandlerFunc {
	jwtService, err := NewJWTService()
	if err != nil {
		// Se não conseguir criar o serviço JWT, retornar erro 500
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro ao configurar autenticação",
				"O serviço JWT não foi inicializado corretamente",
			))
		}
	}

	return func(c *gin.Context) {
		// Obter o token do cabeçalho Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				"O cabeçalho Authorization não foi fornecido",
			))
			return
		}

		// Verificar o formato "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Formato de token inválido",
				"Use o formato 'Bearer <token>'",
			))
			return
		}

		// Validar o token
		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			message := "Token inválido"
			if err == ErrExpiredToken {
				message = "Token expirado"
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				err.Error(),
			))
			return
		}

		// Tokens de renovação não autenticam requisições comuns
		if claims.Kind == TokenRefresh {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Token inválido",
				"Token de renovação não pode ser usado como token de acesso",
			))
			return
		}

		// Armazenar as claims no contexto
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware cria um middleware para verificação de papel/função do
// usuário
func RoleAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Verificar se o usuário está autenticado
		userRoleVal, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				"",
			))
			return
		}

		userRole, ok := userRoleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro de tipo",
				"Falha ao obter o papel do usuário",
			))
			return
		}

		authorized := false
		for _, r := range roles {
			if userRole == r {
				authorized = true
				break
			}
		}

		if !authorized {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"Acesso negado",
				"Você não tem permissão para acessar este recurso",
			))
			return
		}

		c.Next()
	}
}

// CurrentUser agrupa a identidade do usuário autenticado extraída do contexto
type CurrentUser struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// GetCurrentUser obtém as informações do usuário atual do contexto.
// Quando a identidade não está disponível o nome degrada para "system",
// suficiente para os campos de auditoria.
func GetCurrentUser(c *gin.Context) CurrentUser {
	cu := CurrentUser{
		ID:    c.GetString("user_id"),
		Email: c.GetString("user_email"),
		Name:  c.GetString("user_name"),
		Role:  c.GetString("user_role"),
	}
	if cu.Name == "" {
		cu.Name = "system"
	}
	return cu
}
