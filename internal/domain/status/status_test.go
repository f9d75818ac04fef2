package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/varejotech/backoffice-api/internal/domain/status"
)

func TestNormalizePurchase(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected status.PurchaseStatus
	}{
		{name: "rascunho atravessa inalterado", raw: "DRAFT", expected: status.PurchaseDraft},
		{name: "enviado atravessa inalterado", raw: "SENT", expected: status.PurchaseSent},
		{name: "aprovado atravessa inalterado", raw: "APPROVED", expected: status.PurchaseApproved},
		{name: "rejeitado atravessa inalterado", raw: "REJECTED", expected: status.PurchaseRejected},
		{name: "recebido atravessa inalterado", raw: "RECEIVED", expected: status.PurchaseReceived},
		{name: "aceito dobra em aprovado", raw: "ACCEPTED", expected: status.PurchaseApproved},
		{name: "parcialmente recebido dobra em aprovado", raw: "PARTIALLY_RECEIVED", expected: status.PurchaseApproved},
		{name: "encerrado dobra em recebido", raw: "CLOSED", expected: status.PurchaseReceived},
		{name: "cancelado dobra em rejeitado", raw: "CANCELLED", expected: status.PurchaseRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, status.NormalizePurchase(tt.raw))
		})
	}
}

func TestNormalizePurchaseUnknownToken(t *testing.T) {
	// Um backend mais novo pode emitir tokens ainda não mapeados
	got := status.NormalizePurchase("ON_HOLD")

	assert.Equal(t, status.PurchaseStatus("ON_HOLD"), got)
	assert.False(t, got.Known())
	assert.Equal(t, "ON_HOLD", got.Label())
	assert.Equal(t, "gray", got.Color())
}

func TestNormalizePurchaseCaseSensitive(t *testing.T) {
	// A dobra é literal, sem normalização de caixa
	got := status.NormalizePurchase("accepted")

	assert.Equal(t, status.PurchaseStatus("accepted"), got)
	assert.False(t, got.Known())
}

func TestPurchaseStatusLabels(t *testing.T) {
	assert.Equal(t, "Rascunho", status.PurchaseDraft.Label())
	assert.Equal(t, "Enviado", status.PurchaseSent.Label())
	assert.Equal(t, "Aprovado", status.PurchaseApproved.Label())
	assert.Equal(t, "Rejeitado", status.PurchaseRejected.Label())
	assert.Equal(t, "Recebido", status.PurchaseReceived.Label())
}

func TestPurchaseStatusColors(t *testing.T) {
	assert.Equal(t, "gray", status.PurchaseDraft.Color())
	assert.Equal(t, "yellow", status.PurchaseSent.Color())
	assert.Equal(t, "green", status.PurchaseApproved.Color())
	assert.Equal(t, "red", status.PurchaseRejected.Color())
	assert.Equal(t, "blue", status.PurchaseReceived.Color())
}

func TestNormalizeSale(t *testing.T) {
	tests := []struct {
		raw      string
		expected status.SaleStatus
	}{
		{raw: "DRAFT", expected: status.SaleDraft},
		{raw: "CONFIRMED", expected: status.SaleConfirmed},
		{raw: "SHIPPED", expected: status.SaleShipped},
		{raw: "RESERVED", expected: status.SaleReserved},
		{raw: "PAID", expected: status.SalePaid},
		{raw: "DELIVERED", expected: status.SaleDelivered},
		{raw: "CANCELLED", expected: status.SaleCancelled},
		{raw: "RETURNED", expected: status.SaleReturned},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := status.NormalizeSale(tt.raw)
			assert.Equal(t, tt.expected, got)
			assert.True(t, got.Known())
		})
	}
}

func TestNormalizeSaleUnknownToken(t *testing.T) {
	got := status.NormalizeSale("AWAITING_PICKUP")

	assert.Equal(t, status.SaleStatus("AWAITING_PICKUP"), got)
	assert.False(t, got.Known())
	assert.Equal(t, "AWAITING_PICKUP", got.Label())
	assert.Equal(t, "gray", got.Color())
}

func TestSaleStatusDisplay(t *testing.T) {
	assert.Equal(t, "Confirmada", status.SaleConfirmed.Label())
	assert.Equal(t, "Entregue", status.SaleDelivered.Label())
	assert.Equal(t, "yellow", status.SaleReserved.Color())
	assert.Equal(t, "green", status.SalePaid.Color())
	assert.Equal(t, "red", status.SaleReturned.Color())
}
