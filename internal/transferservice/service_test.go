package transferservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/codepkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

func testContext() context.Context {
	l := zerolog.New(io.Discard)
	return l.WithContext(context.Background())
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireBalance(t *testing.T, want string, a domain.Account) {
	t.Helper()
	require.Truef(t, a.Balance().Equal(d(want)), "%s balance = %s, want %s", a.Code(), a.Balance(), want)
}

func TestTransferLookup(t *testing.T) {
	from := domain.NewCurrentAccount("CPT-00001", decimal.Zero, d("100"))
	to := domain.NewSavingsAccount("CPT-00002", decimal.Zero, d("0.01"))
	errUnexpected := errors.New("unexpected")

	testCases := []struct {
		name          string
		fromCode      string
		toCode        string
		buildStubs    func(accountService *MockAccountService)
		checkResponse func(t *testing.T, res domain.TransferResult, err error)
	}{
		{
			name:     "OK",
			fromCode: from.Code(),
			toCode:   to.Code(),
			buildStubs: func(accountService *MockAccountService) {
				accountService.EXPECT().Find(gomock.Any(), gomock.Eq(from.Code())).Times(1).Return(from, nil)
				accountService.EXPECT().Find(gomock.Any(), gomock.Eq(to.Code())).Times(1).Return(to, nil)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.NoError(t, err)
				require.Equal(t, from.Code(), res.FromCode)
				require.Equal(t, to.Code(), res.ToCode)
				require.True(t, res.Amount.Equal(d("10")))
			},
		},
		{
			name:     "SameCode",
			fromCode: from.Code(),
			toCode:   from.Code(),
			buildStubs: func(accountService *MockAccountService) {
				accountService.EXPECT().Find(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidTransfer)
				require.Empty(t, res)
			},
		},
		{
			name:     "SourceNotFound",
			fromCode: "CPT-00404",
			toCode:   to.Code(),
			buildStubs: func(accountService *MockAccountService) {
				accountService.EXPECT().
					Find(gomock.Any(), gomock.Eq("CPT-00404")).
					Times(1).
					Return(nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, "CPT-00404"))
				accountService.EXPECT().Find(gomock.Any(), gomock.Eq(to.Code())).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
				require.Empty(t, res)
			},
		},
		{
			name:     "DestinationLookupFails",
			fromCode: from.Code(),
			toCode:   to.Code(),
			buildStubs: func(accountService *MockAccountService) {
				accountService.EXPECT().Find(gomock.Any(), gomock.Eq(from.Code())).Times(1).Return(from, nil)
				accountService.EXPECT().Find(gomock.Any(), gomock.Eq(to.Code())).Times(1).Return(nil, errUnexpected)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.ErrorIs(t, err, errUnexpected)
				require.Empty(t, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountService := NewMockAccountService(ctrl)
			tc.buildStubs(accountService)

			res, err := New(accountService).Transfer(testContext(), tc.fromCode, tc.toCode, d("10"))
			tc.checkResponse(t, res, err)
		})
	}

	requireBalance(t, "90", from)
	requireBalance(t, "10", to)
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	s := accountservice.New(codepkg.New("CPT", 5))
	ts := New(s)
	a := s.CreateCurrent(ctx, decimal.Zero, decimal.Zero)
	b := s.CreateSavings(ctx, decimal.Zero, d("0.02"))

	_, err := s.Deposit(ctx, a.Code(), d("100"), "cash")
	require.NoError(t, err)

	res, err := ts.Transfer(ctx, a.Code(), b.Code(), d("100"))
	require.NoError(t, err)
	requireBalance(t, "0", a)
	requireBalance(t, "100", b)

	require.Equal(t, a.Code(), res.FromCode)
	require.Equal(t, b.Code(), res.ToCode)
	require.True(t, res.Amount.Equal(d("100")))
	require.NotEqual(t, res.Withdrawal.ID, res.Deposit.ID)

	aOps, err := s.Operations(ctx, a.Code())
	require.NoError(t, err)
	require.Len(t, aOps, 2)
	require.Equal(t, "Transfer to "+b.Code(), aOps[1].Counterparty())

	bOps, err := s.Operations(ctx, b.Code())
	require.NoError(t, err)
	require.Len(t, bOps, 1)
	require.Equal(t, "Transfer from "+a.Code(), bOps[0].Counterparty())

	_, err = ts.Transfer(ctx, a.Code(), b.Code(), d("1"))
	require.ErrorIs(t, err, domain.ErrOverdraftExceeded)
	requireBalance(t, "0", a)
	requireBalance(t, "100", b)

	_, err = ts.Transfer(ctx, b.Code(), a.Code(), d("100.01"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	requireBalance(t, "0", a)
	requireBalance(t, "100", b)
}

func TestTransferErrors(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	s := accountservice.New(codepkg.New("CPT", 5))
	ts := New(s)
	a := s.CreateCurrent(ctx, d("1000"), d("1000"))
	b := s.CreateSavings(ctx, d("10"), decimal.Zero)

	testCases := []struct {
		name    string
		from    string
		to      string
		amount  string
		wantErr error
	}{
		{name: "SameAccount", from: a.Code(), to: a.Code(), amount: "50", wantErr: domain.ErrInvalidTransfer},
		{name: "SameUnknownAccount", from: "NOPE", to: "NOPE", amount: "50", wantErr: domain.ErrInvalidTransfer},
		{name: "UnknownSource", from: "NOPE", to: b.Code(), amount: "50", wantErr: domain.ErrAccountNotFound},
		{name: "UnknownDestination", from: a.Code(), to: "NOPE", amount: "50", wantErr: domain.ErrAccountNotFound},
		{name: "ZeroAmount", from: a.Code(), to: b.Code(), amount: "0", wantErr: domain.ErrInvalidAmount},
		{name: "NegativeAmount", from: b.Code(), to: a.Code(), amount: "-1", wantErr: domain.ErrInvalidAmount},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			res, err := ts.Transfer(ctx, tc.from, tc.to, d(tc.amount))
			require.ErrorIs(t, err, tc.wantErr)
			require.Empty(t, res)

			requireBalance(t, "1000", a)
			requireBalance(t, "10", b)
			require.Empty(t, a.Operations())
			require.Empty(t, b.Operations())
		})
	}
}

func TestTransferConservesTotal(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	s := accountservice.New(codepkg.New("CPT", 5))
	ts := New(s)
	a := s.CreateCurrent(ctx, d("500"), d("250"))
	b := s.CreateSavings(ctx, d("250"), d("0.01"))
	total := a.Balance().Add(b.Balance())

	for i := 0; i < 100; i++ {
		amount := randompkg.AmountBetween(d("0.01"), d("400"))

		from, to := a.Code(), b.Code()
		if i%2 == 1 {
			from, to = to, from
		}

		_, _ = ts.Transfer(ctx, from, to, amount)

		require.True(t, a.Balance().Add(b.Balance()).Equal(total))
		require.False(t, a.Balance().LessThan(d("-500")))
		require.False(t, b.Balance().IsNegative())
	}
}

func TestConcurrentOperations(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	s := accountservice.New(codepkg.New("CPT", 5))
	ts := New(s)

	accounts := []domain.Account{
		s.CreateCurrent(ctx, d("50"), d("100")),
		s.CreateSavings(ctx, d("100"), d("0.05")),
		s.CreateCurrent(ctx, decimal.Zero, d("100")),
	}

	const n = 300

	var wg sync.WaitGroup

	wg.Add(n)

	for i := 0; i < n; i++ {
		i := i

		go func() {
			defer wg.Done()

			from := accounts[i%3].Code()
			to := accounts[(i+1)%3].Code()
			_, _ = ts.Transfer(ctx, from, to, d("7"))
		}()
	}

	wg.Wait()

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance())
		require.True(t, a.Balance().Equal(domain.Replay(d("100"), a.Operations())))
	}

	require.True(t, total.Equal(d("300")), "total = %s", total)
	require.False(t, accounts[0].Balance().LessThan(d("-50")))
	require.False(t, accounts[1].Balance().IsNegative())
	require.False(t, accounts[2].Balance().IsNegative())
}
