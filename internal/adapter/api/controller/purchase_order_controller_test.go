package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejotech/backoffice-api/internal/adapter/api/controller"
	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
	"github.com/varejotech/backoffice-api/internal/adapter/repository"
	approvaldomain "github.com/varejotech/backoffice-api/internal/domain/approval"
	purchasedomain "github.com/varejotech/backoffice-api/internal/domain/purchase"
	"github.com/varejotech/backoffice-api/internal/domain/status"
	"github.com/varejotech/backoffice-api/pkg/logger"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

type fakePurchaseRepo struct {
	orders map[string]*purchasedomain.PurchaseOrder
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{orders: make(map[string]*purchasedomain.PurchaseOrder)}
}

func (r *fakePurchaseRepo) Create(_ context.Context, po *purchasedomain.PurchaseOrder) error {
	po.OrderNumber = "PC-000001"
	r.orders[po.ID] = po
	return nil
}

func (r *fakePurchaseRepo) FindByID(_ context.Context, id string) (*purchasedomain.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrPurchaseOrderNotFound
	}
	return po, nil
}

func (r *fakePurchaseRepo) List(_ context.Context, _, _ int) ([]*purchasedomain.PurchaseOrder, error) {
	orders := make([]*purchasedomain.PurchaseOrder, 0, len(r.orders))
	for _, po := range r.orders {
		orders = append(orders, po)
	}
	return orders, nil
}

func (r *fakePurchaseRepo) FindByStatus(_ context.Context, st purchasedomain.Status, _, _ int) ([]*purchasedomain.PurchaseOrder, error) {
	orders := make([]*purchasedomain.PurchaseOrder, 0)
	for _, po := range r.orders {
		if po.Status == st {
			orders = append(orders, po)
		}
	}
	return orders, nil
}

func (r *fakePurchaseRepo) Update(_ context.Context, po *purchasedomain.PurchaseOrder) error {
	r.orders[po.ID] = po
	return nil
}

func (r *fakePurchaseRepo) Count(_ context.Context) (int, error) {
	return len(r.orders), nil
}

type fakeApprovalRepo struct {
	tasks map[string]*approvaldomain.Task
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{tasks: make(map[string]*approvaldomain.Task)}
}

func (r *fakeApprovalRepo) Create(_ context.Context, t *approvaldomain.Task) error {
	r.tasks[t.ID] = t
	return nil
}

func (r *fakeApprovalRepo) FindByID(_ context.Context, id string) (*approvaldomain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrApprovalTaskNotFound
	}
	return t, nil
}

func (r *fakeApprovalRepo) List(_ context.Context, _, _ int) ([]*approvaldomain.Task, error) {
	tasks := make([]*approvaldomain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *fakeApprovalRepo) FindPendingByPurchaseOrder(_ context.Context, purchaseOrderID string) (*approvaldomain.Task, error) {
	for _, t := range r.tasks {
		if t.PurchaseOrderID == purchaseOrderID && !t.Decided() {
			return t, nil
		}
	}
	return nil, repository.ErrApprovalTaskNotFound
}

func (r *fakeApprovalRepo) Update(_ context.Context, t *approvaldomain.Task) error {
	r.tasks[t.ID] = t
	return nil
}

func (r *fakeApprovalRepo) Count(_ context.Context) (int, error) {
	return len(r.tasks), nil
}

func (r *fakeApprovalRepo) pendingTask() *approvaldomain.Task {
	for _, t := range r.tasks {
		if !t.Decided() {
			return t
		}
	}
	return nil
}

type testEnv struct {
	router       *gin.Engine
	purchaseRepo *fakePurchaseRepo
	approvalRepo *fakeApprovalRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	purchaseRepo := newFakePurchaseRepo()
	approvalRepo := newFakeApprovalRepo()
	appLogger := logger.NewLogger()

	poController := controller.NewPurchaseOrderController(purchaseRepo, approvalRepo, numeric.FromInt(10000), appLogger)
	approvalController := controller.NewApprovalController(approvalRepo, purchaseRepo, appLogger)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/purchase-orders/:id/send", poController.Send)
	api.POST("/purchase-orders/:id/lines/:lineId/receive", poController.ReceiveLine)
	api.GET("/approvals/pending", approvalController.ListPending)
	api.GET("/approvals/:id", approvalController.Get)
	api.POST("/approvals/:id/approve", approvalController.Approve)
	api.POST("/approvals/:id/reject", approvalController.Reject)

	return &testEnv{router: router, purchaseRepo: purchaseRepo, approvalRepo: approvalRepo}
}

func (e *testEnv) seedOrder(t *testing.T, unitPrice numeric.Amount) *purchasedomain.PurchaseOrder {
	t.Helper()
	po, err := purchasedomain.NewPurchaseOrder("Distribuidora Central", "compras@central.com", "admin", []purchasedomain.LineInput{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: unitPrice},
	})
	require.NoError(t, err)
	require.NoError(t, e.purchaseRepo.Create(context.Background(), po))
	return po
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestSendBelowThresholdCreatesNoTask(t *testing.T) {
	env := newTestEnv(t)
	po := env.seedOrder(t, numeric.FromInt(5000))

	rec := env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/send", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.PurchaseOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ACCEPTED", resp.Status)
	assert.Equal(t, status.PurchaseApproved, resp.CanonicalStatus)
	assert.Nil(t, env.approvalRepo.pendingTask(), "abaixo do limite não gera tarefa")
}

func TestSendAboveThresholdCreatesPendingTask(t *testing.T) {
	env := newTestEnv(t)
	po := env.seedOrder(t, numeric.FromInt(15000))

	rec := env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/send", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.PurchaseOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SENT", resp.Status)

	task := env.approvalRepo.pendingTask()
	require.NotNil(t, task)
	assert.Equal(t, po.ID, task.PurchaseOrderID)
}

func TestSendTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	po := env.seedOrder(t, numeric.FromInt(5000))

	require.Equal(t, http.StatusOK, env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/send", nil).Code)
	assert.Equal(t, http.StatusConflict, env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/send", nil).Code)
}

func TestSendUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(t, http.MethodPost, "/api/purchase-orders/nao-existe/send", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApproveTaskAcceptsOrder(t *testing.T) {
	env := newTestEnv(t)
	po := env.seedOrder(t, numeric.FromInt(15000))
	env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/send", nil)
	task := env.approvalRepo.pendingTask()
	require.NotNil(t, task)

	rec := env.request(t, http.MethodPost, "/api/approvals/"+task.ID+"/approve", dto.ApprovalDecisionRequest{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, approvaldomain.StatusApproved, task.Status)
	assert.Equal(t, purchasedomain.StatusAccepted, po.Status)
}

func TestSecondDecisionConflicts(t *testing.T) {
	env := newTestEnv(t)
	po := env.seedOrder(t, numeric.FromInt(15000))
	env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/send", nil)
	task := env.approvalRepo.pendingTask()
	require.NotNil(t, task)

	require.Equal(t, http.StatusOK, env.request(t, http.MethodPost, "/api/approvals/"+task.ID+"/approve", dto.ApprovalDecisionRequest{}).Code)

	rec := env.request(t, http.MethodPost, "/api/approvals/"+task.ID+"/approve", dto.ApprovalDecisionRequest{})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/approvals/"+task.ID+"/reject", dto.ApprovalDecisionRequest{Comment: "mudei de ideia"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRejectRequiresCommentHTTP(t *testing.T) {
	env := newTestEnv(t)
	po := env.seedOrder(t, numeric.FromInt(15000))
	env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/send", nil)
	task := env.approvalRepo.pendingTask()
	require.NotNil(t, task)

	rec := env.request(t, http.MethodPost, "/api/approvals/"+task.ID+"/reject", dto.ApprovalDecisionRequest{Comment: "  "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, task.Decided(), "rejeição inválida não decide a tarefa")
	assert.Equal(t, purchasedomain.StatusSent, po.Status)
}

func TestRejectTaskRejectsOrder(t *testing.T) {
	env := newTestEnv(t)
	po := env.seedOrder(t, numeric.FromInt(15000))
	env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/send", nil)
	task := env.approvalRepo.pendingTask()
	require.NotNil(t, task)

	rec := env.request(t, http.MethodPost, "/api/approvals/"+task.ID+"/reject", dto.ApprovalDecisionRequest{Comment: "preço acima do orçado"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, approvaldomain.StatusRejected, task.Status)
	assert.Equal(t, purchasedomain.StatusRejected, po.Status)
	assert.Equal(t, "preço acima do orçado", po.RejectionReason)
}

func TestListApprovalsReturnsAllStatuses(t *testing.T) {
	env := newTestEnv(t)

	first := env.seedOrder(t, numeric.FromInt(15000))
	env.request(t, http.MethodPost, "/api/purchase-orders/"+first.ID+"/send", nil)
	decided := env.approvalRepo.pendingTask()
	require.NotNil(t, decided)
	require.Equal(t, http.StatusOK, env.request(t, http.MethodPost, "/api/approvals/"+decided.ID+"/approve", dto.ApprovalDecisionRequest{}).Code)

	second := env.seedOrder(t, numeric.FromInt(20000))
	env.request(t, http.MethodPost, "/api/purchase-orders/"+second.ID+"/send", nil)

	rec := env.request(t, http.MethodGet, "/api/approvals/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ApprovalTaskListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Tarefas decididas continuam na listagem; quem filtra é o consumidor
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Total)

	statuses := map[approvaldomain.Status]bool{}
	for _, item := range resp.Items {
		statuses[item.Status] = true
		require.NotNil(t, item.PurchaseOrder, "pedido associado embutido")
	}
	assert.True(t, statuses[approvaldomain.StatusApproved])
	assert.True(t, statuses[approvaldomain.StatusPending])
}

func TestGetTaskWithoutOrderIsUnprocessable(t *testing.T) {
	env := newTestEnv(t)
	task, err := approvaldomain.NewTask("pedido-apagado")
	require.NoError(t, err)
	require.NoError(t, env.approvalRepo.Create(context.Background(), task))

	rec := env.request(t, http.MethodGet, "/api/approvals/"+task.ID, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReceiveLineFlow(t *testing.T) {
	env := newTestEnv(t)
	po := env.seedOrder(t, numeric.FromInt(5000))
	env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/send", nil)
	lineID := po.Lines[0].ID

	t.Run("quantidade acima do saldo", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/lines/"+lineID+"/receive", dto.ReceiveLineRequest{Quantity: 5})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("linha inexistente", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/lines/nao-existe/receive", dto.ReceiveLineRequest{Quantity: 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("recebimento total encerra o pedido", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/lines/"+lineID+"/receive", dto.ReceiveLineRequest{Quantity: 1})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.PurchaseOrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "CLOSED", resp.Status)
		assert.Equal(t, status.PurchaseReceived, resp.CanonicalStatus)
	})

	t.Run("receber depois de encerrado conflita", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/lines/"+lineID+"/receive", dto.ReceiveLineRequest{Quantity: 1})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
