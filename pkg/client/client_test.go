package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejotech/backoffice-api/internal/adapter/api/dto"
	"github.com/varejotech/backoffice-api/internal/domain/status"
)

func TestLoginInstallsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"user": {"id": "u-1", "name": "Maria", "email": "maria@exemplo.com", "role": "ADMIN", "active": true},
			"access_token": "access-1",
			"refresh_token": "refresh-1",
			"expires_at": "2026-08-29T12:00:00Z"
		}`))
	}))
	defer server.Close()

	c := New(server.URL)
	session, err := c.Login(context.Background(), "maria@exemplo.com", "senha123")

	require.NoError(t, err)
	assert.Equal(t, "access-1", session.AccessToken)
	assert.Equal(t, "refresh-1", session.RefreshToken)
	assert.Equal(t, "Maria", session.User.Name)
	assert.Same(t, session, c.Session())
}

func TestAuthenticatedCallWithoutSession(t *testing.T) {
	c := New("http://127.0.0.1:0")

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestUnauthorizedTriggersSingleRefresh(t *testing.T) {
	var refreshes, meHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/refresh":
			atomic.AddInt32(&refreshes, 1)
			w.Write([]byte(`{"access_token": "access-2", "refresh_token": "refresh-2", "expires_at": "2026-08-29T12:00:00Z"}`))
		case "/auth/me":
			atomic.AddInt32(&meHits, 1)
			if r.Header.Get("Authorization") != "Bearer access-2" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"code": 401, "message": "Token expirado"}`))
				return
			}
			w.Write([]byte(`{"id": "u-1", "name": "Maria", "email": "maria@exemplo.com", "role": "ADMIN", "active": true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL, WithSession(&Session{AccessToken: "expirado", RefreshToken: "refresh-1"}))

	me, err := c.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Maria", me.Name)
	assert.Equal(t, int32(1), refreshes, "exatamente uma renovação")
	assert.Equal(t, int32(2), meHits, "a requisição original é repetida uma única vez")
	assert.Equal(t, "access-2", c.Session().AccessToken)
	assert.Equal(t, "refresh-2", c.Session().RefreshToken)
}

func TestFailedRefreshClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code": 401, "message": "Token inválido"}`))
	}))
	defer server.Close()

	c := New(server.URL, WithSession(&Session{AccessToken: "expirado", RefreshToken: "revogado"}))

	_, err := c.Me(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, c.Session(), "sessão é descartada quando a renovação falha")
}

func TestUnauthorizedAfterRefreshClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/refresh" {
			w.Write([]byte(`{"access_token": "access-2", "refresh_token": "refresh-2", "expires_at": "2026-08-29T12:00:00Z"}`))
			return
		}
		// Mesmo com o token novo o servidor continua recusando
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code": 401, "message": "Usuário desativado"}`))
	}))
	defer server.Close()

	c := New(server.URL, WithSession(&Session{AccessToken: "expirado", RefreshToken: "refresh-1"}))

	_, err := c.Me(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, c.Session())
}

func TestLogout(t *testing.T) {
	c := New("http://127.0.0.1:0", WithSession(&Session{AccessToken: "token"}))

	c.Logout()
	assert.Nil(t, c.Session())
}

func TestRejectTaskRequiresComment(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	c := New(server.URL, WithSession(&Session{AccessToken: "token"}))

	_, err := c.RejectTask(context.Background(), "task-1", "   ")

	assert.ErrorIs(t, err, ErrBlankRejectReason)
	assert.Equal(t, int32(0), hits, "a pré-condição falha antes de qualquer chamada de rede")
}

func TestReceiveLinePreconditions(t *testing.T) {
	var receives int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			w.Write([]byte(`{
				"id": "po-1",
				"order_number": "PC-000001",
				"status": "ACCEPTED",
				"lines": [
					{"id": "line-1", "product_id": "prod-1", "quantity": 5, "received_quantity": 3, "remaining": 2}
				]
			}`))
			return
		}
		atomic.AddInt32(&receives, 1)
		w.Write([]byte(`{"id": "po-1", "status": "PARTIALLY_RECEIVED", "lines": []}`))
	}))
	defer server.Close()

	c := New(server.URL, WithSession(&Session{AccessToken: "token"}))

	t.Run("quantidade zero falha sem rede", func(t *testing.T) {
		_, err := c.ReceiveLine(context.Background(), "po-1", "line-1", 0)
		assert.ErrorIs(t, err, ErrInvalidReceiveQuantity)
	})

	t.Run("quantidade acima do saldo falha antes da escrita", func(t *testing.T) {
		_, err := c.ReceiveLine(context.Background(), "po-1", "line-1", 3)
		assert.ErrorIs(t, err, ErrInvalidReceiveQuantity)
		assert.Equal(t, int32(0), receives)
	})

	t.Run("linha inexistente", func(t *testing.T) {
		_, err := c.ReceiveLine(context.Background(), "po-1", "line-9", 1)
		assert.ErrorIs(t, err, ErrLineNotFound)
		assert.Equal(t, int32(0), receives)
	})

	t.Run("quantidade dentro do saldo é enviada", func(t *testing.T) {
		po, err := c.ReceiveLine(context.Background(), "po-1", "line-1", 2)
		require.NoError(t, err)
		assert.Equal(t, int32(1), receives)
		assert.Equal(t, status.PurchaseApproved, po.CanonicalStatus)
	})
}

func TestGetPurchaseOrderAttachesCanonicalStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// O backend devolve apenas o vocabulário nativo
		w.Write([]byte(`{"id": "po-1", "order_number": "PC-000001", "status": "CLOSED", "lines": []}`))
	}))
	defer server.Close()

	c := New(server.URL, WithSession(&Session{AccessToken: "token"}))

	po, err := c.GetPurchaseOrder(context.Background(), "po-1")

	require.NoError(t, err)
	assert.Equal(t, "CLOSED", po.Status)
	assert.Equal(t, status.PurchaseReceived, po.CanonicalStatus)
	assert.Equal(t, "Recebido", po.StatusLabel)
	assert.Equal(t, "blue", po.StatusColor)
}

func TestGetSaleAttachesDisplayStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "sale-1", "customer_name": "Maria", "status": "DELIVERED", "items": []}`))
	}))
	defer server.Close()

	c := New(server.URL, WithSession(&Session{AccessToken: "token"}))

	s, err := c.GetSale(context.Background(), "sale-1")

	require.NoError(t, err)
	assert.Equal(t, status.SaleDelivered, s.Status)
	assert.Equal(t, "Entregue", s.StatusLabel)
	assert.Equal(t, "blue", s.StatusColor)
}

func TestFilterPending(t *testing.T) {
	tasks := []dto.ApprovalTaskResponse{
		{ID: "t-1", Status: "PENDING"},
		{ID: "t-2", Status: "APPROVED"},
		{ID: "t-3", Status: "PENDING"},
		{ID: "t-4", Status: "REJECTED"},
	}

	pending := FilterPending(tasks)

	require.Len(t, pending, 2)
	assert.Equal(t, "t-1", pending[0].ID)
	assert.Equal(t, "t-3", pending[1].ID)
}

func TestSendPurchaseOrderQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "po-1", "order_number": "PC-000001", "status": "SENT", "lines": []}`))
	}))
	defer server.Close()

	c := New(server.URL, WithSession(&Session{AccessToken: "token"}))

	po, err := c.SendPurchaseOrder(context.Background(), "po-1", "maria")

	require.NoError(t, err)
	assert.Equal(t, status.PurchaseSent, po.CanonicalStatus)
	assert.Contains(t, gotQuery, "username=maria")
}

func TestSaleTransitionQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "sale-1", "status": "CONFIRMED", "items": []}`))
	}))
	defer server.Close()

	c := New(server.URL, WithSession(&Session{AccessToken: "token"}))

	s, err := c.ConfirmSale(context.Background(), "sale-1", "loja-centro", "maria")

	require.NoError(t, err)
	assert.Equal(t, status.SaleConfirmed, s.Status)
	assert.Contains(t, gotQuery, "location=loja-centro")
	assert.Contains(t, gotQuery, "username=maria")
}
