package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejotech/backoffice-api/internal/domain/product"
	"github.com/varejotech/backoffice-api/pkg/numeric"
)

func newProduct(t *testing.T) *product.Product {
	t.Helper()
	p, err := product.NewProduct("Café Torrado 500g", "Café torrado e moído", "Mercearia", numeric.FromFloat(24.90))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	p := newProduct(t)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, product.StatusActive, p.Status)
	assert.False(t, p.IsDeleted())
	assert.Empty(t, p.Variations)
}

func TestNewProductRequiresName(t *testing.T) {
	_, err := product.NewProduct("  ", "", "", numeric.Zero())
	assert.ErrorIs(t, err, product.ErrEmptyName)
}

func TestUpdate(t *testing.T) {
	p := newProduct(t)

	err := p.Update("Café Torrado 1kg", "Embalagem maior", "Mercearia", product.StatusInactive, numeric.FromFloat(44.90), "")
	require.NoError(t, err)

	assert.Equal(t, "Café Torrado 1kg", p.Name)
	assert.Equal(t, product.StatusInactive, p.Status)
	assert.True(t, numeric.FromFloat(44.90).Equal(p.DefaultPrice))
}

func TestUpdateKeepsStatusWhenBlank(t *testing.T) {
	p := newProduct(t)

	err := p.Update("Café Torrado 500g", "", "Mercearia", "", numeric.FromFloat(24.90), "")
	require.NoError(t, err)

	assert.Equal(t, product.StatusActive, p.Status)
}

func TestAddVariation(t *testing.T) {
	p := newProduct(t)

	v, err := p.AddVariation("Moagem fina", "CAFE-500-FINA", numeric.FromFloat(24.90), 30)
	require.NoError(t, err)

	assert.NotEmpty(t, v.ID)
	assert.Len(t, p.Variations, 1)
	assert.Equal(t, 30, v.Available())
}

func TestAddVariationRequiresSKU(t *testing.T) {
	p := newProduct(t)

	_, err := p.AddVariation("Moagem fina", " ", numeric.FromFloat(24.90), 30)
	assert.ErrorIs(t, err, product.ErrEmptySKU)
}

func TestVariationAvailable(t *testing.T) {
	v := product.Variation{Quantity: 10, ReservedQuantity: 4}
	assert.Equal(t, 6, v.Available())
}

func TestSoftDelete(t *testing.T) {
	p := newProduct(t)

	require.NoError(t, p.SoftDelete("admin"))

	assert.True(t, p.IsDeleted())
	assert.Equal(t, "admin", p.DeletedBy)
	assert.Equal(t, product.StatusArchived, p.Status)
	require.NotNil(t, p.DeletedAt)
}

func TestSoftDeleteTwiceFails(t *testing.T) {
	p := newProduct(t)
	require.NoError(t, p.SoftDelete("admin"))

	assert.ErrorIs(t, p.SoftDelete("outro"), product.ErrAlreadyDeleted)
	assert.Equal(t, "admin", p.DeletedBy, "marcador original é preservado")
}

func TestActivateDeactivate(t *testing.T) {
	p := newProduct(t)

	p.Deactivate()
	assert.Equal(t, product.StatusInactive, p.Status)

	p.Activate()
	assert.Equal(t, product.StatusActive, p.Status)
}
