package purchase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejotech/backoffice-api/internal/domain/purchase"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

func newDraftOrder(t *testing.T, lines []purchase.LineInput) *purchase.PurchaseOrder {
	t.Helper()
	po, err := purchase.NewPurchaseOrder("Distribuidora Central", "compras@central.com", "admin", lines)
	require.NoError(t, err)
	return po
}

func twoLines() []purchase.LineInput {
	return []purchase.LineInput{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: numeric.FromInt(100)},
		{ProductID: "prod-2", Quantity: 1, UnitPrice: numeric.FromInt(50)},
	}
}

func TestNewPurchaseOrder(t *testing.T) {
	po := newDraftOrder(t, twoLines())

	assert.NotEmpty(t, po.ID)
	assert.Equal(t, purchase.StatusDraft, po.Status)
	assert.Len(t, po.Lines, 2)
	assert.True(t, numeric.FromInt(250).Equal(po.Total), "total deve ser derivado das linhas")
	assert.True(t, numeric.FromInt(200).Equal(po.Lines[0].Total))
	assert.True(t, numeric.FromInt(50).Equal(po.Lines[1].Total))
}

func TestNewPurchaseOrderValidation(t *testing.T) {
	tests := []struct {
		name     string
		supplier string
		lines    []purchase.LineInput
		expected error
	}{
		{name: "fornecedor vazio", supplier: "  ", lines: twoLines(), expected: purchase.ErrEmptySupplier},
		{name: "sem linhas", supplier: "Fornecedor", lines: nil, expected: purchase.ErrNoLines},
		{
			name:     "linha sem produto",
			supplier: "Fornecedor",
			lines:    []purchase.LineInput{{ProductID: " ", Quantity: 1, UnitPrice: numeric.FromInt(10)}},
			expected: purchase.ErrEmptyProduct,
		},
		{
			name:     "quantidade zero",
			supplier: "Fornecedor",
			lines:    []purchase.LineInput{{ProductID: "prod-1", Quantity: 0, UnitPrice: numeric.FromInt(10)}},
			expected: purchase.ErrInvalidQuantity,
		},
		{
			name:     "preço unitário zero",
			supplier: "Fornecedor",
			lines:    []purchase.LineInput{{ProductID: "prod-1", Quantity: 1, UnitPrice: numeric.Zero()}},
			expected: purchase.ErrInvalidUnitPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := purchase.NewPurchaseOrder(tt.supplier, "", "admin", tt.lines)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestSendBelowThresholdAutoAccepts(t *testing.T) {
	po := newDraftOrder(t, twoLines())

	needsApproval, err := po.Send(numeric.FromInt(10000))

	require.NoError(t, err)
	assert.False(t, needsApproval)
	assert.Equal(t, purchase.StatusAccepted, po.Status)
}

func TestSendAtThresholdAutoAccepts(t *testing.T) {
	// Total exatamente no limite não exige aprovação
	po := newDraftOrder(t, []purchase.LineInput{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: numeric.FromInt(10000)},
	})

	needsApproval, err := po.Send(numeric.FromInt(10000))

	require.NoError(t, err)
	assert.False(t, needsApproval)
	assert.Equal(t, purchase.StatusAccepted, po.Status)
}

func TestSendAboveThresholdAwaitsApproval(t *testing.T) {
	po := newDraftOrder(t, []purchase.LineInput{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: numeric.FromFloat(10000.01)},
	})

	needsApproval, err := po.Send(numeric.FromInt(10000))

	require.NoError(t, err)
	assert.True(t, needsApproval)
	assert.Equal(t, purchase.StatusSent, po.Status)
}

func TestSendRequiresDraft(t *testing.T) {
	po := newDraftOrder(t, twoLines())
	_, err := po.Send(numeric.FromInt(10000))
	require.NoError(t, err)

	_, err = po.Send(numeric.FromInt(10000))
	assert.ErrorIs(t, err, purchase.ErrInvalidTransition)
}

func TestApprove(t *testing.T) {
	po := newDraftOrder(t, []purchase.LineInput{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: numeric.FromInt(20000)},
	})
	_, err := po.Send(numeric.FromInt(10000))
	require.NoError(t, err)

	require.NoError(t, po.Approve())
	assert.Equal(t, purchase.StatusAccepted, po.Status)

	assert.ErrorIs(t, po.Approve(), purchase.ErrInvalidTransition)
}

func TestApproveRequiresSent(t *testing.T) {
	po := newDraftOrder(t, twoLines())
	assert.ErrorIs(t, po.Approve(), purchase.ErrInvalidTransition)
}

func TestReject(t *testing.T) {
	po := newDraftOrder(t, []purchase.LineInput{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: numeric.FromInt(20000)},
	})
	_, err := po.Send(numeric.FromInt(10000))
	require.NoError(t, err)

	require.NoError(t, po.Reject("preço acima do orçado"))
	assert.Equal(t, purchase.StatusRejected, po.Status)
	assert.Equal(t, "preço acima do orçado", po.RejectionReason)
}

func TestRejectRequiresReason(t *testing.T) {
	po := newDraftOrder(t, []purchase.LineInput{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: numeric.FromInt(20000)},
	})
	_, err := po.Send(numeric.FromInt(10000))
	require.NoError(t, err)

	assert.ErrorIs(t, po.Reject("   "), purchase.ErrEmptyRejectionReason)
	assert.Equal(t, purchase.StatusSent, po.Status, "rejeição inválida não altera o status")
}

func TestCancel(t *testing.T) {
	po := newDraftOrder(t, twoLines())
	require.NoError(t, po.Cancel())
	assert.Equal(t, purchase.StatusCancelled, po.Status)
}

func TestCancelAfterAcceptFails(t *testing.T) {
	po := newDraftOrder(t, twoLines())
	_, err := po.Send(numeric.FromInt(10000))
	require.NoError(t, err)

	assert.ErrorIs(t, po.Cancel(), purchase.ErrInvalidTransition)
}

func TestReceiveLinePartialThenClose(t *testing.T) {
	po := newDraftOrder(t, twoLines())
	_, err := po.Send(numeric.FromInt(10000))
	require.NoError(t, err)

	require.NoError(t, po.ReceiveLine(po.Lines[0].ID, 1))
	assert.Equal(t, purchase.StatusPartiallyReceived, po.Status)
	assert.Equal(t, 1, po.Lines[0].Remaining())

	require.NoError(t, po.ReceiveLine(po.Lines[0].ID, 1))
	assert.Equal(t, purchase.StatusPartiallyReceived, po.Status, "segunda linha ainda pendente")
	assert.True(t, po.Lines[0].FullyReceived())

	require.NoError(t, po.ReceiveLine(po.Lines[1].ID, 1))
	assert.Equal(t, purchase.StatusClosed, po.Status)
}

func TestReceiveLineValidation(t *testing.T) {
	po := newDraftOrder(t, twoLines())
	_, err := po.Send(numeric.FromInt(10000))
	require.NoError(t, err)

	t.Run("quantidade zero", func(t *testing.T) {
		assert.ErrorIs(t, po.ReceiveLine(po.Lines[0].ID, 0), purchase.ErrReceiveQuantityInvalid)
	})

	t.Run("quantidade negativa", func(t *testing.T) {
		assert.ErrorIs(t, po.ReceiveLine(po.Lines[0].ID, -1), purchase.ErrReceiveQuantityInvalid)
	})

	t.Run("linha inexistente", func(t *testing.T) {
		assert.ErrorIs(t, po.ReceiveLine("nao-existe", 1), purchase.ErrLineNotFound)
	})

	t.Run("quantidade acima do saldo", func(t *testing.T) {
		assert.ErrorIs(t, po.ReceiveLine(po.Lines[0].ID, 3), purchase.ErrReceiveExceedsOrdered)
	})
}

func TestReceiveLineRequiresAccepted(t *testing.T) {
	po := newDraftOrder(t, twoLines())
	assert.ErrorIs(t, po.ReceiveLine(po.Lines[0].ID, 1), purchase.ErrInvalidTransition)
}

func TestRequiresApproval(t *testing.T) {
	po := newDraftOrder(t, []purchase.LineInput{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: numeric.FromInt(10000)},
	})

	assert.False(t, po.RequiresApproval(numeric.FromInt(10000)), "no limite não exige aprovação")
	assert.True(t, po.RequiresApproval(numeric.FromFloat(9999.99)))
}
