// Package client é o SDK HTTP do back-office. A sessão é um valor explícito
// carregado pelo cliente, sem estado global; buscas por ID passam pelo
// decorador de novas tentativas e um 401 dispara exatamente uma renovação de
// token antes de encerrar a sessão.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
	"github.com/varejotech/backoffice-api/internal/domain/status"
)

// Erros do lado do cliente, verificados antes de qualquer chamada de rede
var (
	ErrNoSession              = errors.New("nenhuma sessão ativa")
	ErrSessionExpired         = errors.New("sessão expirada")
	ErrBlankRejectReason      = errors.New("justificativa de rejeição é obrigatória")
	ErrInvalidReceiveQuantity = errors.New("quantidade recebida fora dos limites da linha")
	ErrLineNotFound           = errors.New("linha não encontrada no pedido")
)

// APIError representa uma resposta de erro da API
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Session agrupa os tokens e a identidade do usuário autenticado. É um valor
// explícito injetado no cliente, nunca estado ambiente.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         dto.UserResponse
}

// Client é o cliente HTTP tipado do back-office
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryConfig
	session    *Session
}

// Option configura o cliente
type Option func(*Client)

// WithHTTPClient substitui o http.Client subjacente
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig substitui a configuração de novas tentativas
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithSession injeta uma sessão existente
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// New cria um cliente apontando para a base da API (ex.: http://host:8080/api)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session retorna a sessão atual, ou nil quando não há sessão
func (c *Client) Session() *Session {
	return c.session
}

// Logout descarta a sessão atual
func (c *Client) Logout() {
	c.session = nil
}

// Login autentica e instala a sessão no cliente
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, dto.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp, false)
	if err != nil {
		return nil, err
	}

	c.session = &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
		User:         resp.User,
	}
	return c.session, nil
}

// Register cria um usuário e instala a sessão retornada
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*Session, error) {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp, false); err != nil {
		return nil, err
	}

	c.session = &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
		User:         resp.User,
	}
	return c.session, nil
}

// Me retorna os dados do usuário autenticado
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile atualiza o perfil do usuário autenticado
func (c *Client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodPut, "/auth/update-profile", nil, req, &resp, true); err != nil {
		return nil, err
	}
	if c.session != nil {
		c.session.User = resp
	}
	return &resp, nil
}

// ChangePassword altera a senha do usuário autenticado
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/change-password", nil, dto.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     newPassword,
	}, nil, true)
}

// CreateProduct cria um produto
func (c *Client) CreateProduct(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error) {
	var resp dto.ProductResponse
	if err := c.do(ctx, http.MethodPost, "/products", nil, req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProduct busca um produto pelo ID, com novas tentativas para erros
// transitórios
func (c *Client) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var resp dto.ProductResponse
	err := withRetry(ctx, c.retry, func() error {
		return c.do(ctx, http.MethodGet, "/products/"+id, nil, nil, &resp, true)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProducts lista os produtos paginados
func (c *Client) ListProducts(ctx context.Context, page, size int) (*dto.ProductListResponse, error) {
	var resp dto.ProductListResponse
	if err := c.do(ctx, http.MethodGet, "/products", pageQuery(page, size), nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProduct atualiza um produto
func (c *Client) UpdateProduct(ctx context.Context, id string, req dto.ProductUpdateRequest) (*dto.ProductResponse, error) {
	var resp dto.ProductResponse
	if err := c.do(ctx, http.MethodPut, "/products/"+id, nil, req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProduct remove logicamente um produto
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, nil, true)
}

// CreateSale cria uma venda
func (c *Client) CreateSale(ctx context.Context, req dto.SaleRequest) (*dto.SaleResponse, error) {
	var resp dto.SaleResponse
	if err := c.do(ctx, http.MethodPost, "/sales", nil, req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSale busca uma venda pelo ID, com novas tentativas para erros
// transitórios. O status canônico é reanexado na chegada.
func (c *Client) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	var resp dto.SaleResponse
	err := withRetry(ctx, c.retry, func() error {
		return c.do(ctx, http.MethodGet, "/sales/"+id, nil, nil, &resp, true)
	})
	if err != nil {
		return nil, err
	}
	attachSaleStatus(&resp)
	return &resp, nil
}

// ListSales lista as vendas paginadas
func (c *Client) ListSales(ctx context.Context, page, size int) (*dto.SaleListResponse, error) {
	var resp dto.SaleListResponse
	if err := c.do(ctx, http.MethodGet, "/sales", pageQuery(page, size), nil, &resp, true); err != nil {
		return nil, err
	}
	for i := range resp.Items {
		attachSaleStatus(&resp.Items[i])
	}
	return &resp, nil
}

// ConfirmSale confirma uma venda registrando local e usuário
func (c *Client) ConfirmSale(ctx context.Context, id, location, username string) (*dto.SaleResponse, error) {
	return c.saleTransition(ctx, id, "confirm", location, username)
}

// ShipSale marca uma venda como enviada
func (c *Client) ShipSale(ctx context.Context, id, location, username string) (*dto.SaleResponse, error) {
	return c.saleTransition(ctx, id, "ship", location, username)
}

// CancelSale cancela uma venda
func (c *Client) CancelSale(ctx context.Context, id, location, username string) (*dto.SaleResponse, error) {
	return c.saleTransition(ctx, id, "cancel", location, username)
}

func (c *Client) saleTransition(ctx context.Context, id, action, location, username string) (*dto.SaleResponse, error) {
	query := url.Values{}
	if location != "" {
		query.Set("location", location)
	}
	if username != "" {
		query.Set("username", username)
	}

	var resp dto.SaleResponse
	if err := c.do(ctx, http.MethodPost, "/sales/"+id+"/"+action, query, nil, &resp, true); err != nil {
		return nil, err
	}
	attachSaleStatus(&resp)
	return &resp, nil
}

// CreatePurchaseOrder cria um pedido de compra
func (c *Client) CreatePurchaseOrder(ctx context.Context, req dto.PurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	var resp dto.PurchaseOrderResponse
	if err := c.do(ctx, http.MethodPost, "/purchase-orders", nil, req, &resp, true); err != nil {
		return nil, err
	}
	attachPurchaseStatus(&resp)
	return &resp, nil
}

// GetPurchaseOrder busca um pedido de compra pelo ID, com novas tentativas
// para erros transitórios. O status canônico é reanexado na chegada.
func (c *Client) GetPurchaseOrder(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	var resp dto.PurchaseOrderResponse
	err := withRetry(ctx, c.retry, func() error {
		return c.do(ctx, http.MethodGet, "/purchase-orders/"+id, nil, nil, &resp, true)
	})
	if err != nil {
		return nil, err
	}
	attachPurchaseStatus(&resp)
	return &resp, nil
}

// ListPurchaseOrders lista os pedidos de compra paginados
func (c *Client) ListPurchaseOrders(ctx context.Context, page, size int) (*dto.PurchaseOrderListResponse, error) {
	var resp dto.PurchaseOrderListResponse
	if err := c.do(ctx, http.MethodGet, "/purchase-orders", pageQuery(page, size), nil, &resp, true); err != nil {
		return nil, err
	}
	for i := range resp.Items {
		attachPurchaseStatus(&resp.Items[i])
	}
	return &resp, nil
}

// SendPurchaseOrder submete um pedido de compra. O usuário é propagado na
// query string; o servidor também o deriva do token quando ausente.
func (c *Client) SendPurchaseOrder(ctx context.Context, id, username string) (*dto.PurchaseOrderResponse, error) {
	query := url.Values{}
	if username != "" {
		query.Set("username", username)
	}

	var resp dto.PurchaseOrderResponse
	if err := c.do(ctx, http.MethodPost, "/purchase-orders/"+id+"/send", query, nil, &resp, true); err != nil {
		return nil, err
	}
	attachPurchaseStatus(&resp)
	return &resp, nil
}

// CancelPurchaseOrder cancela um pedido de compra
func (c *Client) CancelPurchaseOrder(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	var resp dto.PurchaseOrderResponse
	if err := c.do(ctx, http.MethodPost, "/purchase-orders/"+id+"/cancel", nil, nil, &resp, true); err != nil {
		return nil, err
	}
	attachPurchaseStatus(&resp)
	return &resp, nil
}

// ReceiveLine registra o recebimento de uma linha. A quantidade é validada
// contra o saldo da linha antes de qualquer chamada de escrita.
func (c *Client) ReceiveLine(ctx context.Context, orderID, lineID string, quantity int) (*dto.PurchaseOrderResponse, error) {
	if quantity <= 0 {
		return nil, ErrInvalidReceiveQuantity
	}

	po, err := c.GetPurchaseOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var line *dto.PurchaseOrderLineResponse
	for i := range po.Lines {
		if po.Lines[i].ID == lineID {
			line = &po.Lines[i]
			break
		}
	}
	if line == nil {
		return nil, ErrLineNotFound
	}
	if quantity > line.Remaining {
		return nil, ErrInvalidReceiveQuantity
	}

	var resp dto.PurchaseOrderResponse
	err = c.do(ctx, http.MethodPost, "/purchase-orders/"+orderID+"/lines/"+lineID+"/receive", nil,
		dto.ReceiveLineRequest{Quantity: quantity}, &resp, true)
	if err != nil {
		return nil, err
	}
	attachPurchaseStatus(&resp)
	return &resp, nil
}

// PendingApprovals lista as tarefas de aprovação. O servidor devolve tarefas
// em todos os status; use FilterPending para ficar só com as sem decisão.
func (c *Client) PendingApprovals(ctx context.Context, page, size int) (*dto.ApprovalTaskListResponse, error) {
	var resp dto.ApprovalTaskListResponse
	if err := c.do(ctx, http.MethodGet, "/approvals/pending", pageQuery(page, size), nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetApproval busca uma tarefa de aprovação pelo ID, com novas tentativas
// para erros transitórios
func (c *Client) GetApproval(ctx context.Context, id string) (*dto.ApprovalTaskResponse, error) {
	var resp dto.ApprovalTaskResponse
	err := withRetry(ctx, c.retry, func() error {
		return c.do(ctx, http.MethodGet, "/approvals/"+id, nil, nil, &resp, true)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ApproveTask aprova uma tarefa pendente
func (c *Client) ApproveTask(ctx context.Context, id string) (*dto.ApprovalTaskResponse, error) {
	var resp dto.ApprovalTaskResponse
	if err := c.do(ctx, http.MethodPost, "/approvals/"+id+"/approve", nil, dto.ApprovalDecisionRequest{}, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RejectTask rejeita uma tarefa pendente. A justificativa em branco é
// recusada antes de qualquer chamada de rede.
func (c *Client) RejectTask(ctx context.Context, id, comment string) (*dto.ApprovalTaskResponse, error) {
	if isBlank(comment) {
		return nil, ErrBlankRejectReason
	}

	var resp dto.ApprovalTaskResponse
	if err := c.do(ctx, http.MethodPost, "/approvals/"+id+"/reject", nil, dto.ApprovalDecisionRequest{Comment: comment}, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FilterPending devolve apenas as tarefas ainda sem decisão
func FilterPending(tasks []dto.ApprovalTaskResponse) []dto.ApprovalTaskResponse {
	pending := make([]dto.ApprovalTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == "PENDING" {
			pending = append(pending, t)
		}
	}
	return pending
}

// CreateUser cria um usuário (requer papel de administrador)
func (c *Client) CreateUser(ctx context.Context, req dto.UserRequest) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUser busca um usuário pelo ID
func (c *Client) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	err := withRetry(ctx, c.retry, func() error {
		return c.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &resp, true)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers lista os usuários paginados
func (c *Client) ListUsers(ctx context.Context, page, size int) (*dto.UserListResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(size))

	var resp dto.UserListResponse
	if err := c.do(ctx, http.MethodGet, "/users", query, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateUser atualiza um usuário
func (c *Client) UpdateUser(ctx context.Context, id string, req dto.UserRequest) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodPut, "/users/"+id, nil, req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteUser remove um usuário
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil, true)
}

// ActivateUser reativa um usuário desativado
func (c *Client) ActivateUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodPatch, "/users/"+id+"/activate", nil, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeactivateUser desativa um usuário
func (c *Client) DeactivateUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodPatch, "/users/"+id+"/deactivate", nil, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LowStockReport retorna as variações abaixo do limite de estoque
func (c *Client) LowStockReport(ctx context.Context, threshold int) (*dto.LowStockResponse, error) {
	query := url.Values{}
	query.Set("threshold", strconv.Itoa(threshold))

	var resp dto.LowStockResponse
	if err := c.do(ctx, http.MethodGet, "/reports/low-stock", query, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InventoryValueReport retorna o valor total do inventário
func (c *Client) InventoryValueReport(ctx context.Context) (*dto.InventoryValueResponse, error) {
	var resp dto.InventoryValueResponse
	if err := c.do(ctx, http.MethodGet, "/reports/inventory-value", nil, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TurnoverReport retorna a rotação de estoque de uma variação
func (c *Client) TurnoverReport(ctx context.Context, variantID string, days int) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	var resp map[string]interface{}
	if err := c.do(ctx, http.MethodGet, "/reports/turnover/"+variantID, query, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp, nil
}

// DaysOfSupplyReport retorna os dias de cobertura de estoque de uma variação
func (c *Client) DaysOfSupplyReport(ctx context.Context, variantID string, dailyConsumption float64) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("dailyConsumption", strconv.FormatFloat(dailyConsumption, 'f', -1, 64))

	var resp map[string]interface{}
	if err := c.do(ctx, http.MethodGet, "/reports/dos/"+variantID, query, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp, nil
}

// do executa uma requisição. Com auth ativo, um 401 dispara exatamente uma
// renovação de token seguida de uma única nova tentativa da requisição
// original; se a renovação ou a nova tentativa falharem a sessão é
// descartada.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authenticated bool) error {
	if authenticated && c.session == nil {
		return ErrNoSession
	}

	err := c.doOnce(ctx, method, path, query, body, out, authenticated)
	if err == nil || !authenticated {
		return err
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		return err
	}

	if refreshErr := c.refresh(ctx); refreshErr != nil {
		c.session = nil
		return fmt.Errorf("%w: %v", ErrSessionExpired, refreshErr)
	}

	err = c.doOnce(ctx, method, path, query, body, out, authenticated)
	if err != nil && errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		c.session = nil
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out interface{}, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erro ao serializar requisição: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("erro ao criar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated && c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro de transporte: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	return nil
}

// refresh troca o token de renovação por um novo par de tokens
func (c *Client) refresh(ctx context.Context) error {
	if c.session == nil || c.session.RefreshToken == "" {
		return ErrNoSession
	}

	var resp dto.RefreshTokenResponse
	err := c.doOnce(ctx, http.MethodPost, "/auth/refresh", nil, dto.RefreshTokenRequest{
		RefreshToken: c.session.RefreshToken,
	}, &resp, false)
	if err != nil {
		return err
	}

	c.session.AccessToken = resp.AccessToken
	c.session.RefreshToken = resp.RefreshToken
	c.session.ExpiresAt = resp.ExpiresAt
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}

	var payload dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
		apiErr.Details = payload.Details
	}
	return apiErr
}

// attachPurchaseStatus reanexa a forma canônica do status no DTO recebido
func attachPurchaseStatus(po *dto.PurchaseOrderResponse) {
	canonical := status.NormalizePurchase(po.Status)
	po.CanonicalStatus = canonical
	po.StatusLabel = canonical.Label()
	po.StatusColor = canonical.Color()
}

// attachSaleStatus reanexa rótulo e cor do status no DTO recebido
func attachSaleStatus(s *dto.SaleResponse) {
	st := status.NormalizeSale(string(s.Status))
	s.Status = st
	s.StatusLabel = st.Label()
	s.StatusColor = st.Color()
}

func pageQuery(page, size int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return query
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
