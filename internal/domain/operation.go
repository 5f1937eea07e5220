package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationKind names the variant of an Operation.
type OperationKind string

// Constants for all operation kinds.
const (
	OperationDeposit    OperationKind = "deposit"
	OperationWithdrawal OperationKind = "withdrawal"
)

// Operation is an immutable record of a single balance movement.
//
// The set of implementations is closed: Deposit and Withdrawal.
type Operation interface {
	ID() uuid.UUID
	Date() time.Time
	Amount() decimal.Decimal
	Kind() OperationKind
	// Counterparty returns the source of a deposit or the destination of a withdrawal.
	Counterparty() string
	Display() string

	isOperation()
}

type movement struct {
	id     uuid.UUID
	date   time.Time
	amount decimal.Decimal
}

// newMovement assumes amount has already been validated as positive by the owning account.
func newMovement(amount decimal.Decimal) movement {
	return movement{
		id:     uuid.New(),
		date:   time.Now().UTC(),
		amount: amount,
	}
}

func (m movement) ID() uuid.UUID           { return m.id }
func (m movement) Date() time.Time         { return m.date }
func (m movement) Amount() decimal.Decimal { return m.amount }

// Deposit adds money to an account.
type Deposit struct {
	movement
	source string
}

// Source returns the label of where the money came from.
func (d Deposit) Source() string { return d.source }

// Kind implements Operation.
func (d Deposit) Kind() OperationKind { return OperationDeposit }

// Counterparty implements Operation.
func (d Deposit) Counterparty() string { return d.source }

// Display implements Operation.
func (d Deposit) Display() string {
	return fmt.Sprintf("Deposit    | Amount: %s | Source: %s | Date: %s",
		d.amount, d.source, d.date.Format(time.RFC3339))
}

func (Deposit) isOperation() {}

// Withdrawal takes money out of an account.
type Withdrawal struct {
	movement
	destination string
}

// Destination returns the label of where the money went.
func (w Withdrawal) Destination() string { return w.destination }

// Kind implements Operation.
func (w Withdrawal) Kind() OperationKind { return OperationWithdrawal }

// Counterparty implements Operation.
func (w Withdrawal) Counterparty() string { return w.destination }

// Display implements Operation.
func (w Withdrawal) Display() string {
	return fmt.Sprintf("Withdrawal | Amount: %s | Destination: %s | Date: %s",
		w.amount, w.destination, w.date.Format(time.RFC3339))
}

func (Withdrawal) isOperation() {}

// OperationRecord is the read-only, JSON friendly representation of an Operation.
type OperationRecord struct {
	ID           uuid.UUID       `json:"id"`
	Kind         OperationKind   `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty string          `json:"counterparty"`
	Date         time.Time       `json:"date"`
}

// NewOperationRecord converts op into its record form.
func NewOperationRecord(op Operation) OperationRecord {
	return OperationRecord{
		ID:           op.ID(),
		Kind:         op.Kind(),
		Amount:       op.Amount(),
		Counterparty: op.Counterparty(),
		Date:         op.Date(),
	}
}

// SignedAmount returns the effect of op on a balance: positive for deposits, negative for withdrawals.
func SignedAmount(op Operation) decimal.Decimal {
	switch op.(type) {
	case Deposit:
		return op.Amount()
	case Withdrawal:
		return op.Amount().Neg()
	default:
		panic(fmt.Sprintf("domain: unknown operation type %T", op))
	}
}

// Replay folds ops over initial and returns the resulting balance.
func Replay(initial decimal.Decimal, ops []Operation) decimal.Decimal {
	balance := initial
	for _, op := range ops {
		balance = balance.Add(SignedAmount(op))
	}

	return balance
}
