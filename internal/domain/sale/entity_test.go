package sale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejotech/backoffice-api/internal/domain/sale"
	"github.com/varejotech/backoffice-api/internal/domain/status"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

func newDraftSale(t *testing.T) *sale.Sale {
	t.Helper()
	s, err := sale.NewSale("Maria Silva", "maria@exemplo.com", "11999990000", "vendedor", []sale.ItemInput{
		{ProductID: "prod-1", VariantID: "var-1", Quantity: 2, UnitPrice: numeric.FromFloat(49.90)},
		{ProductID: "prod-2", Quantity: 1, UnitPrice: numeric.FromFloat(10.20)},
	})
	require.NoError(t, err)
	return s
}

func TestNewSale(t *testing.T) {
	s := newDraftSale(t)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, status.SaleDraft, s.Status)
	assert.Len(t, s.Items, 2)
	assert.True(t, numeric.FromFloat(110.00).Equal(s.Total), "total deve ser derivado dos itens")
	assert.False(t, s.SaleDate.IsZero())
}

func TestNewSaleValidation(t *testing.T) {
	validItems := []sale.ItemInput{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: numeric.FromInt(10)},
	}

	tests := []struct {
		name     string
		customer string
		items    []sale.ItemInput
		expected error
	}{
		{name: "cliente vazio", customer: " ", items: validItems, expected: sale.ErrEmptyCustomer},
		{name: "sem itens", customer: "Maria", items: nil, expected: sale.ErrNoItems},
		{
			name:     "item sem produto",
			customer: "Maria",
			items:    []sale.ItemInput{{ProductID: "", Quantity: 1, UnitPrice: numeric.FromInt(10)}},
			expected: sale.ErrEmptyProduct,
		},
		{
			name:     "quantidade inválida",
			customer: "Maria",
			items:    []sale.ItemInput{{ProductID: "prod-1", Quantity: -1, UnitPrice: numeric.FromInt(10)}},
			expected: sale.ErrInvalidQuantity,
		},
		{
			name:     "preço unitário inválido",
			customer: "Maria",
			items:    []sale.ItemInput{{ProductID: "prod-1", Quantity: 1, UnitPrice: numeric.Zero()}},
			expected: sale.ErrInvalidUnitPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sale.NewSale(tt.customer, "", "", "vendedor", tt.items)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestConfirm(t *testing.T) {
	s := newDraftSale(t)

	require.NoError(t, s.Confirm("loja-centro", "maria"))

	assert.Equal(t, status.SaleConfirmed, s.Status)
	assert.Equal(t, "loja-centro", s.Location)
	assert.Equal(t, "maria", s.Actor)
}

func TestConfirmDefaultsActor(t *testing.T) {
	s := newDraftSale(t)

	require.NoError(t, s.Confirm("loja-centro", "  "))

	assert.Equal(t, sale.DefaultActor, s.Actor)
}

func TestConfirmRequiresDraft(t *testing.T) {
	s := newDraftSale(t)
	require.NoError(t, s.Confirm("loja", "maria"))

	assert.ErrorIs(t, s.Confirm("loja", "maria"), sale.ErrInvalidTransition)
}

func TestShip(t *testing.T) {
	s := newDraftSale(t)
	require.NoError(t, s.Confirm("loja", "maria"))

	require.NoError(t, s.Ship("expedicao", "joao"))

	assert.Equal(t, status.SaleShipped, s.Status)
	assert.Equal(t, "expedicao", s.Location)
	assert.Equal(t, "joao", s.Actor)
}

func TestShipRequiresConfirmed(t *testing.T) {
	s := newDraftSale(t)
	assert.ErrorIs(t, s.Ship("expedicao", "joao"), sale.ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	t.Run("de rascunho", func(t *testing.T) {
		s := newDraftSale(t)
		require.NoError(t, s.Cancel("loja", "maria"))
		assert.Equal(t, status.SaleCancelled, s.Status)
	})

	t.Run("de confirmada", func(t *testing.T) {
		s := newDraftSale(t)
		require.NoError(t, s.Confirm("loja", "maria"))
		require.NoError(t, s.Cancel("loja", "maria"))
		assert.Equal(t, status.SaleCancelled, s.Status)
	})

	t.Run("de enviada falha", func(t *testing.T) {
		s := newDraftSale(t)
		require.NoError(t, s.Confirm("loja", "maria"))
		require.NoError(t, s.Ship("expedicao", "joao"))
		assert.ErrorIs(t, s.Cancel("loja", "maria"), sale.ErrInvalidTransition)
	})
}
