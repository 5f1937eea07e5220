// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

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

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (domain.TransferResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type request struct {
	FromCode string `json:"from_code" binding:"required"`
	ToCode   string `json:"to_code" binding:"required"`
	Amount   string `json:"amount" binding:"required,amount"`
}

type data struct {
	Transfer domain.TransferResult `json:"transfer"`
}

var statuses = errorspkg.StatusMap{
	domain.ErrAccountNotFound:   http.StatusNotFound,
	domain.ErrInvalidAmount:     http.StatusBadRequest,
	domain.ErrInvalidTransfer:   http.StatusBadRequest,
	domain.ErrOverdraftExceeded: http.StatusUnprocessableEntity,
	domain.ErrInsufficientFunds: http.StatusUnprocessableEntity,
}

// Create handles http request to create a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	result, err := h.service.Transfer(ctx, req.FromCode, req.ToCode, amountpkg.Parse(req.Amount))
	if err != nil {
		status, resErr := statuses.Resolve(err)
		if status == http.StatusInternalServerError {
			l.Error().Err(err).Send()
		}

		gctx.JSON(status, web.Error(resErr))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{result}})
}
