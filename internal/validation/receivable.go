package validation

import (
	"fmt"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

// ReceivingAccount valida un payload de cuenta de cobro. Campo requerido: name.
func (v *Validator) ReceivingAccount(p Payload) (*models.ReceivingAccount, Warnings, error) {
	c := newChecker(p, v.strict)

	account := models.ReceivingAccount{
		ID:        c.optionalString("id").OrElse(""),
		Name:      c.requiredString("name"),
		Active:    c.boolOrDefault("active", true),
		CreatedAt: c.timeOrNow("createdAt", v.now),
	}

	if err := c.err(); err != nil {
		return nil, c.warnings, err
	}
	return &account, c.warnings, nil
}

// Receivable valida un payload de cuenta por cobrar.
// Un registro con status recebido debe traer receiptDate; finalAmount debe ser originalAmount + interestPenalty.
func (v *Validator) Receivable(p Payload) (*models.AccountReceivable, Warnings, error) {
	c := newChecker(p, v.strict)

	r := models.AccountReceivable{
		ID:                   c.optionalString("id").OrElse(""),
		SaleID:               c.requiredString("saleId"),
		SaleNumber:           c.requiredString("saleNumber"),
		CustomerName:         c.requiredString("customerName"),
		PaymentMethodName:    c.requiredString("paymentMethodName"),
		ReceivingAccountID:   c.optionalString("receivingAccountId"),
		ReceivingAccountName: c.optionalString("receivingAccountName"),
	}
	original, originalOK := c.requiredDecimal("originalAmount", true)
	interest, interestOK := c.requiredDecimal("interestPenalty", false)
	final, finalOK := c.requiredDecimal("finalAmount", true)
	r.OriginalAmount, r.InterestPenalty, r.FinalAmount = original, interest, final

	var statusOK bool
	r.Status, statusOK = requiredEnum(c, "status", models.ParseReceivableStatus, models.ReceivableStatusLiterals())
	r.ReceiptDate = c.optionalTime("receiptDate")
	r.ReceiptURL = c.optionalString("receiptUrl")
	// vacío o solo espacios cuenta como ausente
	if statusOK && r.IsReceived() && !r.ReceiptDate.IsPresent() && !c.failed("receiptDate") {
		c.fail(phaseRequired, "receiptDate", "is required when status is recebido")
	}
	if statusOK && r.Status == models.ReceivableStatusPending {
		if r.ReceiptDate.IsPresent() {
			c.warn("receiptDate", "only meaningful when status is recebido")
		}
		if r.ReceiptURL.IsPresent() {
			c.warn("receiptUrl", "only meaningful when status is recebido")
		}
	}

	r.CreatedAt = c.timeOrNow("createdAt", v.now)
	r.UpdatedAt = c.optionalTime("updatedAt").OrElse(r.CreatedAt)

	if originalOK && interestOK && finalOK {
		expected := r.ExpectedFinalAmount()
		if !withinTolerance(final, expected, v.tolerance) {
			c.inconsistent("finalAmount", fmt.Sprintf("expected %s (originalAmount + interestPenalty), got %s", expected, final))
		}
	}
	if r.UpdatedAt.Before(r.CreatedAt) {
		c.inconsistent("updatedAt", "must not be before createdAt")
	}

	if err := c.err(); err != nil {
		return nil, c.warnings, err
	}
	return &r, c.warnings, nil
}
