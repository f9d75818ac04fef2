package numeric_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejotech/backoffice-api/pkg/numeric"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected numeric.Amount
	}{
		{name: "nulo vira zero", input: nil, expected: numeric.Zero()},
		{name: "float", input: 12.5, expected: numeric.FromFloat(12.5)},
		{name: "inteiro", input: 3, expected: numeric.FromInt(3)},
		{name: "string numérica", input: "99.90", expected: numeric.FromFloat(99.90)},
		{name: "string inválida vira zero", input: "abc", expected: numeric.Zero()},
		{name: "tipo não numérico vira zero", input: struct{}{}, expected: numeric.Zero()},
		{name: "booleano vira zero", input: true, expected: numeric.Zero()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(numeric.Parse(tt.input)))
		})
	}
}

func TestSafeMultiply(t *testing.T) {
	tests := []struct {
		name     string
		a        interface{}
		b        interface{}
		expected numeric.Amount
	}{
		{name: "dois números", a: 2, b: 100.0, expected: numeric.FromInt(200)},
		{name: "operando nulo vira zero", a: nil, b: 100.0, expected: numeric.Zero()},
		{name: "operando string numérica", a: "3", b: 1.5, expected: numeric.FromFloat(4.5)},
		{name: "operando inválido vira zero", a: "lixo", b: 100.0, expected: numeric.Zero()},
		{name: "ambos inválidos", a: nil, b: struct{}{}, expected: numeric.Zero()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := numeric.SafeMultiply(tt.a, tt.b)
			assert.True(t, tt.expected.Equal(got), "esperado %s, obtido %s", tt.expected, got)
		})
	}
}

func TestAmountUnmarshalLenient(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected numeric.Amount
	}{
		{name: "número", payload: `{"total": 150.75}`, expected: numeric.FromFloat(150.75)},
		{name: "string com aspas", payload: `{"total": "42.10"}`, expected: numeric.FromFloat(42.10)},
		{name: "nulo vira zero", payload: `{"total": null}`, expected: numeric.Zero()},
		{name: "campo ausente vira zero", payload: `{}`, expected: numeric.Zero()},
		{name: "lixo vira zero sem erro", payload: `{"total": "n/a"}`, expected: numeric.Zero()},
		{name: "booleano vira zero sem erro", payload: `{"total": true}`, expected: numeric.Zero()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Total numeric.Amount `json:"total"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &doc))
			assert.True(t, tt.expected.Equal(doc.Total), "esperado %s, obtido %s", tt.expected, doc.Total)
		})
	}
}

func TestAmountMarshalAsNumber(t *testing.T) {
	doc := struct {
		Total numeric.Amount `json:"total"`
	}{Total: numeric.FromFloat(99.9)}

	payload, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 99.9}`, string(payload))
}

func TestAmountArithmetic(t *testing.T) {
	a := numeric.FromInt(100)
	b := numeric.FromFloat(0.5)

	assert.True(t, numeric.FromInt(50).Equal(a.Mul(b)))
	assert.True(t, numeric.FromFloat(100.5).Equal(a.Add(b)))
	assert.True(t, a.GreaterThan(b))
	assert.False(t, b.GreaterThan(a))
	assert.True(t, b.IsPositive())
	assert.False(t, numeric.Zero().IsPositive())
}
