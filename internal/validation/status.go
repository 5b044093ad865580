package validation

import (
	"fmt"

	"github.com/qmuntal/stateless"

	"github.com/hypernova-labs/backoffice-service/internal/models"
)

const triggerReceive = "receive"

func newStatusMachine(initial models.ReceivableStatus) *stateless.StateMachine {
	machine := stateless.NewStateMachine(initial)

	machine.Configure(models.ReceivableStatusPending).
		Permit(triggerReceive, models.ReceivableStatusReceived)

	// recebido es terminal: no hay reapertura ni reverso
	machine.Configure(models.ReceivableStatusReceived)

	return machine
}

// Receive aplica la transición pendente → recebido sobre una cuenta existente.
// El payload debe traer receiptDate; puede traer receiptUrl, receivingAccountId y receivingAccountName.
// El registro actual no se modifica; se retorna una copia con updatedAt = ahora.
func (v *Validator) Receive(current *models.AccountReceivable, p Payload) (*models.AccountReceivable, Warnings, error) {
	c := newChecker(p, v.strict)
	if current == nil {
		c.fail(phaseRequired, "id", "receivable is required")
		return nil, nil, c.err()
	}

	receiptDate := c.optionalTime("receiptDate")
	if !receiptDate.IsPresent() && !c.failed("receiptDate") {
		c.fail(phaseRequired, "receiptDate", "is required to mark as recebido")
	}
	receiptURL := c.optionalString("receiptUrl")
	accountID := c.optionalString("receivingAccountId")
	accountName := c.optionalString("receivingAccountName")

	machine := newStatusMachine(current.Status)
	if ok, _ := machine.CanFire(triggerReceive); !ok {
		c.fail(phaseConsistency, "status", fmt.Sprintf("cannot transition from %s to %s", current.Status, models.ReceivableStatusReceived))
	}

	if err := c.err(); err != nil {
		return nil, c.warnings, err
	}
	if err := machine.Fire(triggerReceive); err != nil {
		c.fail(phaseConsistency, "status", err.Error())
		return nil, c.warnings, c.err()
	}

	next := *current
	next.Status = machine.MustState().(models.ReceivableStatus)
	next.ReceiptDate = receiptDate
	if receiptURL.IsPresent() {
		next.ReceiptURL = receiptURL
	}
	if accountID.IsPresent() {
		next.ReceivingAccountID = accountID
		next.ReceivingAccountName = accountName
	} else if accountName.IsPresent() {
		next.ReceivingAccountName = accountName
	}
	next.UpdatedAt = v.now().UTC()
	if next.UpdatedAt.Before(next.CreatedAt) {
		next.UpdatedAt = next.CreatedAt
	}
	return &next, c.warnings, nil
}
