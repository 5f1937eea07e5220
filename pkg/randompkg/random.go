// Package randompkg generates random ledger test data.
package randompkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

var counterparties = []string{"salary", "cash", "rent", "groceries", "atm", "refund"}

// Int64n returns a uniform random integer in [0, n) using crypto/rand.
func Int64n(n int64) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// String generates a random lowercase string of length n.
func String(n int) string {
	var sb strings.Builder

	sb.Grow(n)

	for i := 0; i < n; i++ {
		_ = sb.WriteByte(alphabet[Int64n(int64(len(alphabet)))]) // always nil
	}

	return sb.String()
}

// Label generates a random deposit source or withdrawal destination.
func Label() string {
	return counterparties[Int64n(int64(len(counterparties)))] + "-" + String(4)
}

// AmountBetween generates a random amount in cents between min and max inclusive.
func AmountBetween(min, max decimal.Decimal) decimal.Decimal {
	lo, hi := min.Shift(2).Ceil().IntPart(), max.Shift(2).Floor().IntPart()
	return decimal.New(lo+Int64n(hi-lo+1), -2)
}

// Amount generates a random positive amount up to 10000.
func Amount() decimal.Decimal {
	return AmountBetween(decimal.New(1, -2), decimal.NewFromInt(10_000))
}

// Rate generates a random interest rate between 0.0001 and 0.2 in basis points.
func Rate() decimal.Decimal {
	return decimal.New(1+Int64n(2000), -4)
}
