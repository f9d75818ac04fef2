// Package status traduz o vocabulário de ciclo de vida do backend para o
// vocabulário canônico exibido pela interface. A tradução é pura e
// determinística: tokens desconhecidos atravessam inalterados para que uma
// versão mais nova do backend nunca derrube a exibição.
package status

// PurchaseStatus é o status canônico de um pedido de compra
type PurchaseStatus string

// Vocabulário canônico de pedidos de compra
const (
	PurchaseDraft    PurchaseStatus = "DRAFT"
	PurchaseSent     PurchaseStatus = "SENT"
	PurchaseApproved PurchaseStatus = "APPROVED"
	PurchaseRejected PurchaseStatus = "REJECTED"
	PurchaseReceived PurchaseStatus = "RECEIVED"
)

// Sinônimos nativos do backend que precisam ser dobrados no vocabulário
// canônico
const (
	RawAccepted          = "ACCEPTED"
	RawPartiallyReceived = "PARTIALLY_RECEIVED"
	RawClosed            = "CLOSED"
	RawCancelled         = "CANCELLED"
)

var purchaseFolding = map[string]PurchaseStatus{
	string(PurchaseDraft):    PurchaseDraft,
	string(PurchaseSent):     PurchaseSent,
	string(PurchaseApproved): PurchaseApproved,
	string(PurchaseRejected): PurchaseRejected,
	string(PurchaseReceived): PurchaseReceived,
	RawAccepted:              PurchaseApproved,
	RawPartiallyReceived:     PurchaseApproved,
	RawClosed:                PurchaseReceived,
	RawCancelled:             PurchaseRejected,
}

// NormalizePurchase dobra um token de status do backend no vocabulário
// canônico. Tokens não reconhecidos atravessam inalterados.
func NormalizePurchase(raw string) PurchaseStatus {
	if s, ok := purchaseFolding[raw]; ok {
		return s
	}
	return PurchaseStatus(raw)
}

// Known verifica se o status pertence ao vocabulário canônico
func (s PurchaseStatus) Known() bool {
	switch s {
	case PurchaseDraft, PurchaseSent, PurchaseApproved, PurchaseRejected, PurchaseReceived:
		return true
	}
	return false
}

// Label retorna o rótulo de exibição em português. Para um status fora do
// vocabulário o próprio token é devolvido em vez de quebrar a exibição.
func (s PurchaseStatus) Label() string {
	switch s {
	case PurchaseDraft:
		return "Rascunho"
	case PurchaseSent:
		return "Enviado"
	case PurchaseApproved:
		return "Aprovado"
	case PurchaseRejected:
		return "Rejeitado"
	case PurchaseReceived:
		return "Recebido"
	}
	return string(s)
}

// Color retorna o token de cor usado pela interface
func (s PurchaseStatus) Color() string {
	switch s {
	case PurchaseDraft:
		return "gray"
	case PurchaseSent:
		return "yellow"
	case PurchaseApproved:
		return "green"
	case PurchaseRejected:
		return "red"
	case PurchaseReceived:
		return "blue"
	}
	return "gray"
}

// SaleStatus é o status canônico de uma venda
type SaleStatus string

// Vocabulário canônico de vendas. A interface só dispara transições até
// SHIPPED, mas os demais estados do backend são exibidos fielmente.
const (
	SaleDraft     SaleStatus = "DRAFT"
	SaleConfirmed SaleStatus = "CONFIRMED"
	SaleShipped   SaleStatus = "SHIPPED"
	SaleReserved  SaleStatus = "RESERVED"
	SalePaid      SaleStatus = "PAID"
	SaleDelivered SaleStatus = "DELIVERED"
	SaleCancelled SaleStatus = "CANCELLED"
	SaleReturned  SaleStatus = "RETURNED"
)

var saleVocabulary = map[string]SaleStatus{
	string(SaleDraft):     SaleDraft,
	string(SaleConfirmed): SaleConfirmed,
	string(SaleShipped):   SaleShipped,
	string(SaleReserved):  SaleReserved,
	string(SalePaid):      SalePaid,
	string(SaleDelivered): SaleDelivered,
	string(SaleCancelled): SaleCancelled,
	string(SaleReturned):  SaleReturned,
}

// NormalizeSale traduz um token de status de venda do backend. Tokens não
// reconhecidos atravessam inalterados.
func NormalizeSale(raw string) SaleStatus {
	if s, ok := saleVocabulary[raw]; ok {
		return s
	}
	return SaleStatus(raw)
}

// Known verifica se o status pertence ao vocabulário canônico
func (s SaleStatus) Known() bool {
	_, ok := saleVocabulary[string(s)]
	return ok
}

// Label retorna o rótulo de exibição em português
func (s SaleStatus) Label() string {
	switch s {
	case SaleDraft:
		return "Rascunho"
	case SaleConfirmed:
		return "Confirmada"
	case SaleShipped:
		return "Enviada"
	case SaleReserved:
		return "Reservada"
	case SalePaid:
		return "Paga"
	case SaleDelivered:
		return "Entregue"
	case SaleCancelled:
		return "Cancelada"
	case SaleReturned:
		return "Devolvida"
	}
	return string(s)
}

// Color retorna o token de cor usado pela interface
func (s SaleStatus) Color() string {
	switch s {
	case SaleDraft:
		return "gray"
	case SaleConfirmed, SaleReserved:
		return "yellow"
	case SalePaid:
		return "green"
	case SaleShipped, SaleDelivered:
		return "blue"
	case SaleCancelled, SaleReturned:
		return "red"
	}
	return "gray"
}
