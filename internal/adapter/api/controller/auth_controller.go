package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
	"github.com/varejotech/backoffice-api/internal/adapter/repository"
	"github.com/varejotech/backoffice-api/internal/domain/user"
	"github.com/varejotech/backoffice-api/pkg/auth"
	"github.com/varejotech/backoffice-api/pkg/logger"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	userRepository user.Repository
	logger         logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepository user.Repository, logger logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		logger:         logger,
	}
}

// Login autentica um usuário e retorna um par de tokens JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna tokens de acesso e renovação
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, err := c.userRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Email ou senha incorretos"))
			return
		}
		c.logger.Error("erro ao buscar usuário no login", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao autenticar usuário", err.Error()))
		return
	}

	if !u.IsActive() {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Usuário inativo", "Sua conta está desativada"))
		return
	}

	if !u.CheckPassword(request.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Email ou senha incorretos"))
		return
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao configurar autenticação", err.Error()))
		return
	}

	pair, err := jwtService.GenerateTokenPair(u)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", err.Error()))
		return
	}

	if err := c.userRepository.UpdateLastLogin(ctx, u.ID); err != nil {
		// Falha aqui não impede o login
		c.logger.Error("erro ao registrar último login", "error", err)
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	})
}

// Register registra um novo usuário e já devolve os tokens de sessão
// @Summary Registra um novo usuário
// @Description Cria um novo usuário e retorna tokens de acesso e renovação
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Dados do novo usuário"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	role := user.Role(request.Role)
	if request.Role == "" {
		role = user.RoleSalesperson
	}

	u, err := user.NewUser(request.Name, request.Email, role)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := u.SetPassword(request.Password); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao processar senha", err.Error()))
		return
	}

	if err := c.userRepository.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Email já cadastrado", err.Error()))
			return
		}
		c.logger.Error("erro ao registrar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar usuário", err.Error()))
		return
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao configurar autenticação", err.Error()))
		return
	}

	pair, err := jwtService.GenerateTokenPair(u)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.LoginResponse{
		User:         dto.ToUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	})
}

// Me retorna os dados do usuário autenticado
// @Summary Dados do usuário autenticado
// @Description Retorna os dados do usuário dono do token
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	u, ok := c.findCurrentUser(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// UpdateProfile atualiza nome e email do usuário autenticado
// @Summary Atualizar perfil
// @Description Atualiza os dados cadastrais do usuário autenticado
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param profile body dto.UpdateProfileRequest true "Dados do perfil"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/update-profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	var request dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, ok := c.findCurrentUser(ctx)
	if !ok {
		return
	}

	if err := u.Update(request.Name, request.Email, u.Role); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := c.userRepository.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Email já cadastrado", err.Error()))
			return
		}
		c.logger.Error("erro ao atualizar perfil", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar perfil", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// ChangePassword altera a senha do usuário autenticado
// @Summary Alterar senha
// @Description Altera a senha do usuário autenticado após validar a senha atual
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param passwords body dto.ChangePasswordRequest true "Senha atual e nova senha"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var request dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, ok := c.findCurrentUser(ctx)
	if !ok {
		return
	}

	if !u.CheckPassword(request.CurrentPassword) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Senha atual incorreta", ""))
		return
	}

	if err := u.SetPassword(request.NewPassword); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao processar senha", err.Error()))
		return
	}

	if err := c.userRepository.UpdatePassword(ctx, u.ID, u.Password); err != nil {
		c.logger.Error("erro ao alterar senha", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao alterar senha", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("senha alterada com sucesso", nil))
}

// RefreshToken emite um novo par de tokens a partir de um token de renovação
// @Summary Renova os tokens de sessão
// @Description Valida o token de renovação e emite um novo par de tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token de renovação"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao configurar autenticação", err.Error()))
		return
	}

	claims, err := jwtService.ValidateRefreshToken(request.RefreshToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token de renovação inválido", err.Error()))
		return
	}

	u, err := c.userRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Usuário não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar usuário na renovação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao renovar token", err.Error()))
		return
	}

	if !u.IsActive() {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Usuário inativo", "Sua conta está desativada"))
		return
	}

	pair, err := jwtService.GenerateTokenPair(u)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	})
}

// findCurrentUser carrega o usuário autenticado a partir do contexto
func (c *AuthController) findCurrentUser(ctx *gin.Context) (*user.User, bool) {
	currentUser := auth.GetCurrentUser(ctx)
	if currentUser.ID == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Autenticação requerida", ""))
		return nil, false
	}

	u, err := c.userRepository.FindByID(ctx, currentUser.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Usuário não encontrado", err.Error()))
			return nil, false
		}
		c.logger.Error("erro ao buscar usuário autenticado", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar usuário", err.Error()))
		return nil, false
	}

	return u, true
}
