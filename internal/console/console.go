// Package console implements the interactive text menu over the account service.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/amountpkg"
)

// AccountService provides account operations needed by the console.
type AccountService interface {
	CreateCurrent(ctx context.Context, overdraftLimit, initialBalance decimal.Decimal) *domain.CurrentAccount
	CreateSavings(ctx context.Context, initialBalance, interestRate decimal.Decimal) *domain.SavingsAccount
	Find(ctx context.Context, code string) (domain.Account, error)
	All(ctx context.Context) []domain.Account
	Deposit(ctx context.Context, code string, amount decimal.Decimal, source string) (domain.Account, error)
	Withdraw(ctx context.Context, code string, amount decimal.Decimal, destination string) (domain.Account, error)
	Operations(ctx context.Context, code string) ([]domain.Operation, error)
	Interest(ctx context.Context, code string) (decimal.Decimal, error)
}

// TransferService provides transfers needed by the console.
type TransferService interface {
	Transfer(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (domain.TransferResult, error)
}

const menu = `
--- Bank Menu ---
1) Create Current Account
2) Create Savings Account
3) Deposit
4) Withdraw
5) Transfer
6) Show Account Details
7) List All Accounts
8) Show Account Operations
9) Calculate Interest (Savings)
0) Exit
`

// Console reads menu choices from in and writes results to out.
type Console struct {
	accounts  AccountService
	transfers TransferService
	in        *bufio.Reader
	out       io.Writer
	readErr   error
}

// New returns a console bound to the given input and output.
func New(accounts AccountService, transfers TransferService, in io.Reader, out io.Writer) *Console {
	return &Console{
		accounts:  accounts,
		transfers: transfers,
		in:        bufio.NewReader(in),
		out:       out,
	}
}

// Run serves the menu until the user exits or input ends.
//
// Failed operations are reported as "Error: <msg>" and the session continues. Only an
// input read failure is returned.
func (c *Console) Run(ctx context.Context) error {
	l := zerolog.Ctx(ctx)

	for {
		fmt.Fprint(c.out, menu)

		choice, err := c.readInt("Choose: ")
		if err != nil {
			return c.inputErr(err)
		}

		var action func(ctx context.Context) error

		switch choice {
		case 0:
			fmt.Fprintln(c.out, "Bye!")
			return nil
		case 1:
			action = c.createCurrent
		case 2:
			action = c.createSavings
		case 3:
			action = c.deposit
		case 4:
			action = c.withdraw
		case 5:
			action = c.transfer
		case 6:
			action = c.showAccount
		case 7:
			action = c.listAll
		case 8:
			action = c.showOperations
		case 9:
			action = c.calcInterest
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
			continue
		}

		if err := action(ctx); err != nil {
			if c.isInputErr(err) {
				return c.inputErr(err)
			}

			l.Debug().Err(err).Int("choice", choice).Send()
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

func (c *Console) isInputErr(err error) bool {
	return errors.Is(err, io.EOF) || c.readErr != nil
}

// inputErr turns end of input into a clean exit.
func (c *Console) inputErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

// readLine returns the next trimmed line. Lines have no length limit; a final line
// without a newline is still returned.
func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	line, err := c.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		return "", io.EOF
	default:
		c.readErr = err
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (c *Console) readInt(prompt string) (int, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(s)
		if err == nil {
			return n, nil
		}

		fmt.Fprintln(c.out, "Invalid integer.")
	}
}

func (c *Console) readDecimal(prompt string) (decimal.Decimal, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}

		d, err := amountpkg.ParseBounded(s)
		if err == nil {
			return d, nil
		}

		fmt.Fprintln(c.out, "Invalid number.")
	}
}

func (c *Console) createCurrent(ctx context.Context) error {
	overdraft, err := c.readDecimal("Overdraft limit: ")
	if err != nil {
		return err
	}

	initial, err := c.readDecimal("Initial balance: ")
	if err != nil {
		return err
	}

	a := c.accounts.CreateCurrent(ctx, overdraft, initial)
	fmt.Fprintln(c.out, "Created Current Account:", a.Code())

	return nil
}

func (c *Console) createSavings(ctx context.Context) error {
	initial, err := c.readDecimal("Initial balance: ")
	if err != nil {
		return err
	}

	rate, err := c.readDecimal("Interest rate (e.g. 0.05): ")
	if err != nil {
		return err
	}

	a := c.accounts.CreateSavings(ctx, initial, rate)
	fmt.Fprintln(c.out, "Created Savings Account:", a.Code())

	return nil
}

func (c *Console) deposit(ctx context.Context) error {
	code, err := c.readLine("Account code: ")
	if err != nil {
		return err
	}

	amount, err := c.readDecimal("Amount to deposit: ")
	if err != nil {
		return err
	}

	source, err := c.readLine("Source: ")
	if err != nil {
		return err
	}

	a, err := c.accounts.Deposit(ctx, code, amount, source)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Deposit OK. New balance:", a.Balance())

	return nil
}

func (c *Console) withdraw(ctx context.Context) error {
	code, err := c.readLine("Account code: ")
	if err != nil {
		return err
	}

	amount, err := c.readDecimal("Amount to withdraw: ")
	if err != nil {
		return err
	}

	destination, err := c.readLine("Destination: ")
	if err != nil {
		return err
	}

	a, err := c.accounts.Withdraw(ctx, code, amount, destination)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Withdrawal OK. New balance:", a.Balance())

	return nil
}

func (c *Console) transfer(ctx context.Context) error {
	from, err := c.readLine("From account: ")
	if err != nil {
		return err
	}

	to, err := c.readLine("To account: ")
	if err != nil {
		return err
	}

	amount, err := c.readDecimal("Amount: ")
	if err != nil {
		return err
	}

	if _, err := c.transfers.Transfer(ctx, from, to, amount); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Transfer complete.")

	return nil
}

func (c *Console) showAccount(ctx context.Context) error {
	code, err := c.readLine("Account code: ")
	if err != nil {
		return err
	}

	a, err := c.accounts.Find(ctx, code)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, a.Details())

	return nil
}

func (c *Console) listAll(ctx context.Context) error {
	accounts := c.accounts.All(ctx)
	if len(accounts) == 0 {
		fmt.Fprintln(c.out, "No accounts.")
		return nil
	}

	for _, a := range accounts {
		fmt.Fprintln(c.out, a.Details())
	}

	return nil
}

func (c *Console) showOperations(ctx context.Context) error {
	code, err := c.readLine("Account code: ")
	if err != nil {
		return err
	}

	ops, err := c.accounts.Operations(ctx, code)
	if err != nil {
		return err
	}

	if len(ops) == 0 {
		fmt.Fprintln(c.out, "No operations.")
		return nil
	}

	for _, op := range ops {
		fmt.Fprintln(c.out, op.Display())
	}

	return nil
}

func (c *Console) calcInterest(ctx context.Context) error {
	code, err := c.readLine("Savings account code: ")
	if err != nil {
		return err
	}

	interest, err := c.accounts.Interest(ctx, code)
	switch {
	case errors.Is(err, domain.ErrNotSavingsAccount):
		fmt.Fprintln(c.out, "Not a savings account.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(c.out, "Interest:", interest)

	return nil
}
