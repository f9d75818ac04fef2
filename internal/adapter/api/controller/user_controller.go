package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
	"github.com/varejotech/backoffice-api/internal/adapter/repository"
	"github.com/varejotech/backoffice-api/internal/domain/user"
	"github.com/varejotech/backoffice-api/pkg/logger"
)

// UserController gerencia as requisições relacionadas a usuários
type UserController struct {
	userRepository user.Repository
	logger         logger.Logger
}

// NewUserController cria uma nova instância de UserController
func NewUserController(userRepository user.Repository, logger logger.Logger) *UserController {
	return &UserController{
		userRepository: userRepository,
		logger:         logger,
	}
}

// Create cria um novo usuário
// @Summary Cria um novo usuário
// @Description Cria um novo usuário no sistema
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, err := user.NewUser(req.Name, req.Email, user.Role(req.Role))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar usuário", err.Error()))
		return
	}

	if req.Password != "" {
		if err := u.SetPassword(req.Password); err != nil {
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao processar senha", err.Error()))
			return
		}
	}

	if err := c.userRepository.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "email já cadastrado", err.Error()))
			return
		}
		c.logger.Error("erro ao criar usuário no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// Get retorna um usuário pelo ID
// @Summary Buscar usuário
// @Description Retorna os dados de um usuário pelo ID
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	u, ok := c.findUser(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// List retorna a lista de usuários
// @Summary Listar usuários
// @Description Retorna a lista de usuários paginada
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.UserListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))

	pagination := dto.GetPagination(page, pageSize)

	users, err := c.userRepository.List(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar usuários", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar usuários", err.Error()))
		return
	}

	total, err := c.userRepository.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar usuários", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar usuários", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(users, total, pagination.Page, pagination.PageSize))
}

// Update atualiza os dados de um usuário
// @Summary Atualizar usuário
// @Description Atualiza os dados cadastrais de um usuário existente
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do usuário"
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	var req dto.UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, ok := c.findUser(ctx)
	if !ok {
		return
	}

	if err := u.Update(req.Name, req.Email, user.Role(req.Role)); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar usuário", err.Error()))
		return
	}

	if err := c.userRepository.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "email já cadastrado", err.Error()))
			return
		}
		c.logger.Error("erro ao atualizar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// Delete remove um usuário do sistema
// @Summary Remover usuário
// @Description Remove definitivamente um usuário do sistema
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return
	}

	if err := c.userRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "usuário não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao remover usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("usuário removido com sucesso", nil))
}

// Activate reativa um usuário desativado
// @Summary Ativar usuário
// @Description Reativa um usuário desativado
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/activate [patch]
func (c *UserController) Activate(ctx *gin.Context) {
	c.setActive(ctx, true)
}

// Deactivate desativa um usuário sem removê-lo
// @Summary Desativar usuário
// @Description Desativa um usuário sem remover o registro
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/deactivate [patch]
func (c *UserController) Deactivate(ctx *gin.Context) {
	c.setActive(ctx, false)
}

func (c *UserController) setActive(ctx *gin.Context, active bool) {
	u, ok := c.findUser(ctx)
	if !ok {
		return
	}

	if active {
		u.Activate()
	} else {
		u.Deactivate()
	}

	if err := c.userRepository.UpdateActive(ctx, u.ID, active); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "usuário não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao atualizar estado do usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// findUser busca o usuário do path e escreve a resposta de erro quando não
// encontra
func (c *UserController) findUser(ctx *gin.Context) (*user.User, bool) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id não informado", ""))
		return nil, false
	}

	u, err := c.userRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "usuário não encontrado", err.Error()))
			return nil, false
		}
		c.logger.Error("erro ao buscar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar usuário", err.Error()))
		return nil, false
	}

	return u, true
}
