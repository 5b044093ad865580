package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivingAccount representa un destino de fondos (cuenta bancaria, caja, etc.)
type ReceivingAccount struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Kind implementa Record
func (ReceivingAccount) Kind() Kind { return KindReceivingAccount }

// AccountReceivable representa un valor a cobrar de un cliente, originado en una venta.
// Los pares id+nombre son copias desnormalizadas para visualización, no joins.
type AccountReceivable struct {
	ID                   string              `json:"id" db:"id"`
	SaleID               string              `json:"saleId" db:"sale_id"`
	SaleNumber           string              `json:"saleNumber" db:"sale_number"`
	CustomerName         string              `json:"customerName" db:"customer_name"`
	PaymentMethodName    string              `json:"paymentMethodName" db:"payment_method_name"`
	ReceivingAccountID   Optional[string]    `json:"receivingAccountId" db:"receiving_account_id"`
	ReceivingAccountName Optional[string]    `json:"receivingAccountName" db:"receiving_account_name"`
	OriginalAmount       decimal.Decimal     `json:"originalAmount" db:"original_amount"`
	InterestPenalty      decimal.Decimal     `json:"interestPenalty" db:"interest_penalty"`
	FinalAmount          decimal.Decimal     `json:"finalAmount" db:"final_amount"`
	Status               ReceivableStatus    `json:"status" db:"status"`
	ReceiptDate          Optional[time.Time] `json:"receiptDate" db:"receipt_date"`
	ReceiptURL           Optional[string]    `json:"receiptUrl" db:"receipt_url"`
	CreatedAt            time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time           `json:"updatedAt" db:"updated_at"`
}

// Kind implementa Record
func (AccountReceivable) Kind() Kind { return KindAccountReceivable }

// IsReceived retorna true si la cuenta ya fue recibida (estado terminal)
func (a *AccountReceivable) IsReceived() bool {
	return a.Status == ReceivableStatusReceived
}

// ExpectedFinalAmount retorna el valor final esperado: original + interés/multa
func (a *AccountReceivable) ExpectedFinalAmount() decimal.Decimal {
	return a.OriginalAmount.Add(a.InterestPenalty)
}

// ReceiptUploadResponse representa la respuesta al subir un comprobante
type ReceiptUploadResponse struct {
	ReceiptURL string `json:"receiptUrl"`
}
