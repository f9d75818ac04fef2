package numeric

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount representa um valor monetário tolerante a payloads defeituosos.
// Valores ausentes, nulos ou não numéricos são tratados como zero em vez de
// propagar erro ou NaN para o restante do sistema.
type Amount struct {
	decimal.Decimal
}

// Zero retorna um Amount com valor zero
func Zero() Amount {
	return Amount{decimal.Zero}
}

// FromDecimal cria um Amount a partir de um decimal
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d}
}

// FromFloat cria um Amount a partir de um float64
func FromFloat(f float64) Amount {
	return Amount{decimal.NewFromFloat(f)}
}

// FromInt cria um Amount a partir de um inteiro
func FromInt(i int64) Amount {
	return Amount{decimal.NewFromInt(i)}
}

// Parse interpreta um valor arbitrário (número, string numérica ou nulo) como
// Amount. Qualquer entrada inválida resulta em zero.
func Parse(v interface{}) Amount {
	switch t := v.(type) {
	case nil:
		return Zero()
	case decimal.Decimal:
		return Amount{t}
	case Amount:
		return t
	case float64:
		return FromFloat(t)
	case float32:
		return FromFloat(float64(t))
	case int:
		return FromInt(int64(t))
	case int64:
		return FromInt(t)
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return Zero()
		}
		return Amount{d}
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return Zero()
		}
		return Amount{d}
	default:
		return Zero()
	}
}

// UnmarshalJSON aceita números, strings numéricas (com ou sem aspas) e null.
// Entradas que não podem ser interpretadas viram zero, nunca erro.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}

	unquoted := bytes.Trim(trimmed, `"`)
	d, err := decimal.NewFromString(string(unquoted))
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}

	a.Decimal = d
	return nil
}

// MarshalJSON serializa o Amount como número JSON
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// SafeMultiply multiplica dois valores arbitrários tratando operandos
// ausentes ou inválidos como zero. O resultado nunca é NaN.
func SafeMultiply(a, b interface{}) Amount {
	return Amount{Parse(a).Decimal.Mul(Parse(b).Decimal)}
}

// Mul multiplica dois Amounts
func (a Amount) Mul(b Amount) Amount {
	return Amount{a.Decimal.Mul(b.Decimal)}
}

// Add soma dois Amounts
func (a Amount) Add(b Amount) Amount {
	return Amount{a.Decimal.Add(b.Decimal)}
}

// GreaterThan verifica se o Amount é maior que outro
func (a Amount) GreaterThan(b Amount) bool {
	return a.Decimal.GreaterThan(b.Decimal)
}

// IsPositive verifica se o Amount é estritamente positivo
func (a Amount) IsPositive() bool {
	return a.Decimal.IsPositive()
}

// Equal compara dois Amounts por valor
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}
