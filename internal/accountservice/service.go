// Package accountservice manages the account registry and its business operations.
package accountservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/codepkg"
)

// CodeGenerator allocates account codes.
type CodeGenerator interface {
	Next() string
}

// Service is the sole owner of all accounts for the process lifetime.
//
// Accounts it returns are live references: changes made through any of them are visible to all
// holders. Codes are never reused.
type Service struct {
	codes CodeGenerator

	mu       sync.RWMutex
	accounts map[string]domain.Account
	order    []domain.Account
}

// New returns account service struct with an empty registry.
func New(codes CodeGenerator) *Service {
	if codes == nil {
		codes = codepkg.New(codepkg.DefaultPrefix, codepkg.DefaultWidth)
	}

	return &Service{
		codes:    codes,
		accounts: make(map[string]domain.Account),
	}
}

func (s *Service) register(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[a.Code()] = a
	s.order = append(s.order, a)
}

// CreateCurrent creates and registers a current account.
func (s *Service) CreateCurrent(ctx context.Context, overdraftLimit, initialBalance decimal.Decimal) *domain.CurrentAccount {
	a := domain.NewCurrentAccount(s.codes.Next(), overdraftLimit, initialBalance)
	s.register(a)

	zerolog.Ctx(ctx).Info().
		Str("code", a.Code()).
		Stringer("overdraft_limit", overdraftLimit).
		Stringer("balance", initialBalance).
		Msg("current account created")

	return a
}

// CreateSavings creates and registers a savings account.
func (s *Service) CreateSavings(ctx context.Context, initialBalance, interestRate decimal.Decimal) *domain.SavingsAccount {
	a := domain.NewSavingsAccount(s.codes.Next(), initialBalance, interestRate)
	s.register(a)

	zerolog.Ctx(ctx).Info().
		Str("code", a.Code()).
		Stringer("balance", initialBalance).
		Stringer("interest_rate", interestRate).
		Msg("savings account created")

	return a
}

// Find returns the account registered under code.
func (s *Service) Find(ctx context.Context, code string) (domain.Account, error) {
	s.mu.RLock()
	a, ok := s.accounts[code]
	s.mu.RUnlock()

	if !ok {
		zerolog.Ctx(ctx).Info().Str("code", code).Msg("account not found")
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, code)
	}

	return a, nil
}

// All returns every account in creation order.
func (s *Service) All(ctx context.Context) []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.Account, len(s.order))
	copy(accounts, s.order)

	return accounts
}

// Deposit credits amount to the account and returns it.
func (s *Service) Deposit(ctx context.Context, code string, amount decimal.Decimal, source string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := s.Find(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := a.Deposit(amount, source); err != nil {
		l.Info().Err(err).Str("code", code).Stringer("amount", amount).Send()
		return nil, err
	}

	l.Debug().Str("code", code).Stringer("amount", amount).Str("source", source).Msg("deposit")

	return a, nil
}

// Withdraw debits amount from the account and returns it.
func (s *Service) Withdraw(ctx context.Context, code string, amount decimal.Decimal, destination string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := s.Find(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := a.Withdraw(amount, destination); err != nil {
		l.Info().Err(err).Str("code", code).Stringer("amount", amount).Send()
		return nil, err
	}

	l.Debug().Str("code", code).Stringer("amount", amount).Str("destination", destination).Msg("withdrawal")

	return a, nil
}

// Operations returns the operation history of the account.
func (s *Service) Operations(ctx context.Context, code string) ([]domain.Operation, error) {
	a, err := s.Find(ctx, code)
	if err != nil {
		return nil, err
	}

	return a.Operations(), nil
}

// Interest returns the interest a savings account would earn on its current balance.
func (s *Service) Interest(ctx context.Context, code string) (decimal.Decimal, error) {
	a, err := s.Find(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}

	switch acc := a.(type) {
	case *domain.SavingsAccount:
		return acc.CalcInterest(), nil
	case *domain.CurrentAccount:
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrNotSavingsAccount, code)
	default:
		err := fmt.Errorf("unknown account type %T", a)
		zerolog.Ctx(ctx).Error().Err(err).Str("code", code).Send()

		return decimal.Zero, err
	}
}
