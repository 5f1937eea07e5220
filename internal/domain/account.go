// Package domain provides definitions of all ledger entities and their business rules.
package domain

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates that the amount is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be > 0")
	// ErrOverdraftExceeded indicates that a withdrawal would take a current account below its overdraft limit.
	ErrOverdraftExceeded = errors.New("withdrawal exceeds overdraft limit")
	// ErrInsufficientFunds indicates that a savings account balance does not cover the withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountNotFound indicates that no account is registered under the given code.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNotSavingsAccount indicates that interest was requested for an account that does not earn it.
	ErrNotSavingsAccount = errors.New("not a savings account")
)

// AccountKind names the variant of an Account.
type AccountKind string

// Constants for all account kinds.
const (
	AccountCurrent AccountKind = "current"
	AccountSavings AccountKind = "savings"
)

// Account holds a balance and its append-only operation history.
//
// The set of implementations is closed: *CurrentAccount and *SavingsAccount.
// Accounts are live references; a change made through one holder is visible to all of them.
type Account interface {
	Code() string
	Kind() AccountKind
	Balance() decimal.Decimal
	// Operations returns a copy of the history in chronological order.
	Operations() []Operation
	Deposit(amount decimal.Decimal, source string) error
	Withdraw(amount decimal.Decimal, destination string) error
	// CalcInterest never mutates the account.
	CalcInterest() decimal.Decimal
	Details() string
	View() AccountView

	base() *ledger
	// withdraw applies the variant rule; the caller must hold the account lock.
	withdraw(amount decimal.Decimal, destination string) error
}

// AccountView is a point in time snapshot of an Account.
type AccountView struct {
	Code           string           `json:"code"`
	Kind           AccountKind      `json:"kind"`
	Balance        decimal.Decimal  `json:"balance"`
	OverdraftLimit *decimal.Decimal `json:"overdraft_limit,omitempty"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ledger is the state and deposit rule shared by every account kind.
type ledger struct {
	mu         sync.Mutex
	code       string
	balance    decimal.Decimal
	operations []Operation
	createdAt  time.Time
}

func (l *ledger) init(code string, initial decimal.Decimal) {
	l.code = code
	l.balance = initial
	l.operations = []Operation{}
	l.createdAt = time.Now().UTC()
}

func (l *ledger) base() *ledger { return l }

// Code returns the account code assigned at creation.
func (l *ledger) Code() string { return l.code }

// CreatedAt returns the account creation time.
func (l *ledger) CreatedAt() time.Time { return l.createdAt }

// Balance returns the current balance.
func (l *ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balance
}

// Operations returns a copy of the operation history.
func (l *ledger) Operations() []Operation {
	l.mu.Lock()
	defer l.mu.Unlock()

	ops := make([]Operation, len(l.operations))
	copy(ops, l.operations)

	return ops
}

// Deposit increases the balance by amount and records source.
func (l *ledger) Deposit(amount decimal.Decimal, source string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.deposit(amount, source)
}

func (l *ledger) deposit(amount decimal.Decimal, source string) error {
	if err := validatePositive(amount); err != nil {
		return err
	}

	l.balance = l.balance.Add(amount)
	l.operations = append(l.operations, Deposit{movement: newMovement(amount), source: source})

	return nil
}

// commitWithdrawal stores an already validated withdrawal.
func (l *ledger) commitWithdrawal(newBalance, amount decimal.Decimal, destination string) {
	l.balance = newBalance
	l.operations = append(l.operations, Withdrawal{movement: newMovement(amount), destination: destination})
}

func (l *ledger) last() Operation {
	return l.operations[len(l.operations)-1]
}

func validatePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	return nil
}

// CurrentAccount may go negative down to its overdraft limit and earns no interest.
type CurrentAccount struct {
	ledger
	overdraftLimit decimal.Decimal // 500 allows a balance of -500
}

// NewCurrentAccount returns a current account with the given code.
func NewCurrentAccount(code string, overdraftLimit, initialBalance decimal.Decimal) *CurrentAccount {
	a := &CurrentAccount{overdraftLimit: overdraftLimit}
	a.init(code, initialBalance)

	return a
}

// OverdraftLimit returns how far below zero the balance may go.
func (a *CurrentAccount) OverdraftLimit() decimal.Decimal { return a.overdraftLimit }

// Kind implements Account.
func (a *CurrentAccount) Kind() AccountKind { return AccountCurrent }

// Withdraw decreases the balance unless it would drop below -OverdraftLimit.
// A resulting balance equal to -OverdraftLimit is allowed.
func (a *CurrentAccount) Withdraw(amount decimal.Decimal, destination string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.withdraw(amount, destination)
}

func (a *CurrentAccount) withdraw(amount decimal.Decimal, destination string) error {
	if err := validatePositive(amount); err != nil {
		return err
	}

	newBalance := a.balance.Sub(amount)
	if newBalance.LessThan(a.overdraftLimit.Neg()) {
		return ErrOverdraftExceeded
	}

	a.commitWithdrawal(newBalance, amount, destination)

	return nil
}

// CalcInterest implements Account. Current accounts earn nothing.
func (a *CurrentAccount) CalcInterest() decimal.Decimal { return decimal.Zero }

// Details implements Account.
func (a *CurrentAccount) Details() string {
	return fmt.Sprintf("CurrentAccount: %s | Balance: %s | Overdraft: %s",
		a.code, a.Balance(), a.overdraftLimit)
}

// View implements Account.
func (a *CurrentAccount) View() AccountView {
	limit := a.overdraftLimit

	return AccountView{
		Code:           a.code,
		Kind:           AccountCurrent,
		Balance:        a.Balance(),
		OverdraftLimit: &limit,
		CreatedAt:      a.createdAt,
	}
}

// SavingsAccount never goes negative and earns interest at a fixed rate.
type SavingsAccount struct {
	ledger
	interestRate decimal.Decimal // 0.05 is 5%
}

// NewSavingsAccount returns a savings account with the given code.
func NewSavingsAccount(code string, initialBalance, interestRate decimal.Decimal) *SavingsAccount {
	a := &SavingsAccount{interestRate: interestRate}
	a.init(code, initialBalance)

	return a
}

// InterestRate returns the rate applied by CalcInterest.
func (a *SavingsAccount) InterestRate() decimal.Decimal { return a.interestRate }

// Kind implements Account.
func (a *SavingsAccount) Kind() AccountKind { return AccountSavings }

// Withdraw decreases the balance if it covers amount. Withdrawing the whole balance is allowed.
func (a *SavingsAccount) Withdraw(amount decimal.Decimal, destination string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.withdraw(amount, destination)
}

func (a *SavingsAccount) withdraw(amount decimal.Decimal, destination string) error {
	if err := validatePositive(amount); err != nil {
		return err
	}

	if a.balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.commitWithdrawal(a.balance.Sub(amount), amount, destination)

	return nil
}

// CalcInterest returns balance * interest rate.
func (a *SavingsAccount) CalcInterest() decimal.Decimal {
	return a.Balance().Mul(a.interestRate)
}

// Details implements Account.
func (a *SavingsAccount) Details() string {
	return fmt.Sprintf("SavingsAccount: %s | Balance: %s | Rate: %s",
		a.code, a.Balance(), a.interestRate)
}

// View implements Account.
func (a *SavingsAccount) View() AccountView {
	rate := a.interestRate

	return AccountView{
		Code:         a.code,
		Kind:         AccountSavings,
		Balance:      a.Balance(),
		InterestRate: &rate,
		CreatedAt:    a.createdAt,
	}
}
