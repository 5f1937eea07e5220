// Package httpserver manages server creation and api routing.
package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/transferdelivery"
	"github.com/go-petr/pet-ledger/internal/transferservice"
	"github.com/go-petr/pet-ledger/pkg/amountpkg"
	"github.com/go-petr/pet-ledger/pkg/codepkg"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Server holds the account registry, handlers router and configuration.
type Server struct {
	Accounts  *accountservice.Service
	Transfers *transferservice.Service
	Engine    *gin.Engine
	Config    configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	if err := amountpkg.Register(); err != nil {
		return nil, fmt.Errorf("cannot register amount validators: %w", err)
	}

	codes := codepkg.New(config.AccountCodePrefix, config.AccountCodeWidth)
	accountService := accountservice.New(codes)
	transferService := transferservice.New(accountService)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"status": "ok"}})
	})

	accounts := engine.Group("/accounts")
	accounts.POST("/current", accountHandler.CreateCurrent)
	accounts.POST("/savings", accountHandler.CreateSavings)
	accounts.GET("", accountHandler.List)
	accounts.GET("/:code", accountHandler.Get)
	accounts.POST("/:code/deposits", accountHandler.Deposit)
	accounts.POST("/:code/withdrawals", accountHandler.Withdraw)
	accounts.GET("/:code/operations", accountHandler.Operations)
	accounts.GET("/:code/interest", accountHandler.Interest)

	engine.POST("/transfers", transferHandler.Create)

	server := &Server{
		Accounts:  accountService,
		Transfers: transferService,
		Engine:    engine,
		Config:    config,
	}

	return server, nil
}
