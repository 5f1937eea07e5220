package amountpkg

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/pkg/web"
)

func TestValidations(t *testing.T) {
	t.Parallel()

	v := validator.New()
	require.NoError(t, RegisterValidations(v))

	type payload struct {
		Amount string `validate:"amount"`
		Limit  string `validate:"decimal"`
	}

	testCases := []struct {
		name    string
		payload payload
		wantErr string
	}{
		{name: "OK", payload: payload{Amount: "10.25", Limit: "0"}},
		{name: "SmallAmount", payload: payload{Amount: "0.0001", Limit: "100"}},
		{name: "ZeroAmount", payload: payload{Amount: "0", Limit: "1"}, wantErr: "Amount must be a decimal number greater than 0"},
		{name: "NegativeAmount", payload: payload{Amount: "-1", Limit: "1"}, wantErr: "Amount must be a decimal number greater than 0"},
		{name: "GarbageAmount", payload: payload{Amount: "!@#", Limit: "1"}, wantErr: "Amount must be a decimal number greater than 0"},
		{name: "EmptyAmount", payload: payload{Amount: "", Limit: "1"}, wantErr: "Amount must be a decimal number greater than 0"},
		{name: "HugeExponentAmount", payload: payload{Amount: "1e1000000", Limit: "1"}, wantErr: "Amount must be a decimal number greater than 0"},
		{name: "TinyExponentAmount", payload: payload{Amount: "1e-1000000", Limit: "1"}, wantErr: "Amount must be a decimal number greater than 0"},
		{name: "HugeExponentLimit", payload: payload{Amount: "1", Limit: "1e1000000"}, wantErr: "Limit must be a non-negative decimal number"},
		{name: "LongFraction", payload: payload{Amount: "0.0000000000000000001", Limit: "1"}, wantErr: "Amount must be a decimal number greater than 0"},
		{name: "LargestScale", payload: payload{Amount: "0.000000000000000001", Limit: "1e18"}},
		{name: "NegativeLimit", payload: payload{Amount: "1", Limit: "-0.5"}, wantErr: "Limit must be a non-negative decimal number"},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := v.Struct(tc.payload)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Equal(t, tc.wantErr, web.BindError(err).Error)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	require.Equal(t, "12.5", Parse("12.5").String())
	require.True(t, Parse("oops").IsZero())
	require.True(t, Parse("1e2000000000").IsZero())
}

func TestParseBounded(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "Plain", in: "1500.75", want: "1500.75"},
		{name: "SmallExponent", in: "2e3", want: "2000"},
		{name: "MaxDigits", in: "12345678901234567890123456789012345678", want: "12345678901234567890123456789012345678"},
		{name: "TooManyDigits", in: "123456789012345678901234567890123456789", wantErr: ErrOutOfRange},
		{name: "HugeExponent", in: "1e2000000000", wantErr: ErrOutOfRange},
		{name: "TinyExponent", in: "1e-2000000000", wantErr: ErrOutOfRange},
		{name: "NegativeHugeExponent", in: "-1e1000000", wantErr: ErrOutOfRange},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseBounded(tc.in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got.String())
		})
	}

	_, err := ParseBounded("ten")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrOutOfRange)
}
