package dto

// Limites de paginação aplicados a todas as listagens
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ErrorResponse é o envelope de erro devolvido por todos os endpoints.
// O código repete o status HTTP para que o consumidor não dependa do
// transporte para classificar a falha.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewErrorResponse cria o envelope de erro
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// SuccessResponse é o envelope das operações sem corpo próprio, como
// remoções e troca de senha
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse cria o envelope de sucesso
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Message: message,
		Data:    data,
	}
}

// Pagination normaliza os parâmetros de página vindos da query string
type Pagination struct {
	Page     int
	PageSize int
}

// GetPagination aplica os valores padrão e o teto de tamanho de página
func GetPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	} else if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// Offset retorna o deslocamento da página para a consulta
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// calculateTotalPages arredonda a contagem para cima; uma listagem vazia
// ainda tem uma página
func calculateTotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return totalPages
}
