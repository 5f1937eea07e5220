// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// AccountService provides account lookup needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type AccountService interface {
	Find(ctx context.Context, code string) (domain.Account, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	accountService AccountService
}

// New returns transfer service struct to manage transfer business logic.
func New(as AccountService) *Service {
	return &Service{
		accountService: as,
	}
}

func (s *Service) validRequest(ctx context.Context, fromCode, toCode string) (from, to domain.Account, err error) {
	l := zerolog.Ctx(ctx)

	if fromCode == toCode {
		l.Info().Str("code", fromCode).Msg("transfer to the same account")
		return nil, nil, domain.ErrInvalidTransfer
	}

	from, err = s.accountService.Find(ctx, fromCode)
	if err != nil {
		return nil, nil, err
	}

	to, err = s.accountService.Find(ctx, toCode)
	if err != nil {
		return nil, nil, err
	}

	return from, to, nil
}

// Transfer moves amount between two distinct accounts.
//
// It fails with domain.ErrInvalidTransfer before any lookup when the codes are equal.
func (s *Service) Transfer(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	from, to, err := s.validRequest(ctx, fromCode, toCode)
	if err != nil {
		return domain.TransferResult{}, err
	}

	result, err := domain.Transfer(from, to, amount)
	if err != nil {
		l.Info().Err(err).
			Str("from_code", fromCode).
			Str("to_code", toCode).
			Stringer("amount", amount).
			Msg("transfer rejected")

		return domain.TransferResult{}, err
	}

	l.Info().
		Str("transfer_id", result.ID.String()).
		Str("from_code", fromCode).
		Str("to_code", toCode).
		Stringer("amount", amount).
		Msg("transfer completed")

	return result, nil
}
