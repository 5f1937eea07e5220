// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/amountpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	CreateCurrent(ctx context.Context, overdraftLimit, initialBalance decimal.Decimal) *domain.CurrentAccount
	CreateSavings(ctx context.Context, initialBalance, interestRate decimal.Decimal) *domain.SavingsAccount
	Find(ctx context.Context, code string) (domain.Account, error)
	All(ctx context.Context) []domain.Account
	Deposit(ctx context.Context, code string, amount decimal.Decimal, source string) (domain.Account, error)
	Withdraw(ctx context.Context, code string, amount decimal.Decimal, destination string) (domain.Account, error)
	Operations(ctx context.Context, code string) ([]domain.Operation, error)
	Interest(ctx context.Context, code string) (decimal.Decimal, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type accountData struct {
	Account domain.AccountView `json:"account"`
}

type accountsData struct {
	Accounts []domain.AccountView `json:"accounts"`
}

type operationsData struct {
	Code       string                   `json:"code"`
	Operations []domain.OperationRecord `json:"operations"`
}

type interestData struct {
	Code     string          `json:"code"`
	Interest decimal.Decimal `json:"interest"`
}

var statuses = errorspkg.StatusMap{
	domain.ErrAccountNotFound:   http.StatusNotFound,
	domain.ErrInvalidAmount:     http.StatusBadRequest,
	domain.ErrNotSavingsAccount: http.StatusBadRequest,
	domain.ErrOverdraftExceeded: http.StatusUnprocessableEntity,
	domain.ErrInsufficientFunds: http.StatusUnprocessableEntity,
}

func writeError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	status, resErr := statuses.Resolve(err)
	if status == http.StatusInternalServerError {
		l.Error().Err(err).Send()
	}

	gctx.JSON(status, web.Error(resErr))
}

func bindError(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.BindError(err))
}

type createCurrentRequest struct {
	OverdraftLimit string `json:"overdraft_limit" binding:"omitempty,decimal"`
	InitialBalance string `json:"initial_balance" binding:"omitempty,decimal"`
}

// CreateCurrent handles http request to create a current account.
func (h *Handler) CreateCurrent(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createCurrentRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	account := h.service.CreateCurrent(ctx, amountpkg.Parse(req.OverdraftLimit), amountpkg.Parse(req.InitialBalance))

	gctx.JSON(http.StatusCreated, web.Response{Data: accountData{account.View()}})
}

type createSavingsRequest struct {
	InitialBalance string `json:"initial_balance" binding:"omitempty,decimal"`
	InterestRate   string `json:"interest_rate" binding:"required,decimal"`
}

// CreateSavings handles http request to create a savings account.
func (h *Handler) CreateSavings(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createSavingsRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	account := h.service.CreateSavings(ctx, amountpkg.Parse(req.InitialBalance), amountpkg.Parse(req.InterestRate))

	gctx.JSON(http.StatusCreated, web.Response{Data: accountData{account.View()}})
}

type codeURI struct {
	Code string `uri:"code" binding:"required"`
}

// Get handles http request to get an account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri codeURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	account, err := h.service.Find(ctx, uri.Code)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account.View()}})
}

// List handles http request to list all accounts in creation order.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	accounts := h.service.All(ctx)

	views := make([]domain.AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, a.View())
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountsData{views}})
}

type depositRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
	Source string `json:"source" binding:"max=140"`
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri codeURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req depositRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	account, err := h.service.Deposit(ctx, uri.Code, amountpkg.Parse(req.Amount), req.Source)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account.View()}})
}

type withdrawRequest struct {
	Amount      string `json:"amount" binding:"required,amount"`
	Destination string `json:"destination" binding:"max=140"`
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri codeURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req withdrawRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	account, err := h.service.Withdraw(ctx, uri.Code, amountpkg.Parse(req.Amount), req.Destination)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account.View()}})
}

// Operations handles http request to list the operation history of an account.
func (h *Handler) Operations(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri codeURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	ops, err := h.service.Operations(ctx, uri.Code)
	if err != nil {
		writeError(gctx, err)
		return
	}

	records := make([]domain.OperationRecord, 0, len(ops))
	for _, op := range ops {
		records = append(records, domain.NewOperationRecord(op))
	}

	gctx.JSON(http.StatusOK, web.Response{Data: operationsData{Code: uri.Code, Operations: records}})
}

// Interest handles http request to calculate the interest of a savings account.
func (h *Handler) Interest(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri codeURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	interest, err := h.service.Interest(ctx, uri.Code)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: interestData{Code: uri.Code, Interest: interest}})
}
