package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidTransfer indicates that the source and destination accounts are the same.
var ErrInvalidTransfer = errors.New("source and destination must differ")

// Transfer labels recorded on the two legs.
const (
	transferToLabel   = "Transfer to "
	transferFromLabel = "Transfer from "
)

// TransferResult is the result of a completed transfer.
type TransferResult struct {
	ID         uuid.UUID       `json:"id"`
	FromCode   string          `json:"from_code"`
	ToCode     string          `json:"to_code"`
	Amount     decimal.Decimal `json:"amount"`
	Withdrawal OperationRecord `json:"withdrawal"`
	Deposit    OperationRecord `json:"deposit"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Transfer withdraws amount from `from` and deposits it into `to`.
//
// Both accounts stay locked for the whole withdraw-then-deposit pair, acquired in
// ascending code order. If the withdrawal is rejected neither account changes.
func Transfer(from, to Account, amount decimal.Decimal) (TransferResult, error) {
	if from.Code() == to.Code() {
		return TransferResult{}, ErrInvalidTransfer
	}

	if err := validatePositive(amount); err != nil {
		return TransferResult{}, err
	}

	first, second := from.base(), to.base()
	if second.code < first.code {
		first, second = second, first
	}

	first.mu.Lock()
	defer first.mu.Unlock()

	second.mu.Lock()
	defer second.mu.Unlock()

	if err := from.withdraw(amount, transferToLabel+to.Code()); err != nil {
		return TransferResult{}, err
	}

	if err := to.base().deposit(amount, transferFromLabel+from.Code()); err != nil {
		return TransferResult{}, err
	}

	return TransferResult{
		ID:         uuid.New(),
		FromCode:   from.Code(),
		ToCode:     to.Code(),
		Amount:     amount,
		Withdrawal: NewOperationRecord(from.base().last()),
		Deposit:    NewOperationRecord(to.base().last()),
		CreatedAt:  time.Now().UTC(),
	}, nil
}
