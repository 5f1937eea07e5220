// Package main runs the interactive ledger menu on stdin and stdout.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/console"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/transferservice"
	"github.com/go-petr/pet-ledger/pkg/codepkg"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Keep the menu readable: only warnings and above reach stderr.
	logger := middleware.GetLogger(config).Level(zerolog.WarnLevel)
	ctx := logger.WithContext(context.Background())

	accountService := accountservice.New(codepkg.New(config.AccountCodePrefix, config.AccountCodeWidth))
	transferService := transferservice.New(accountService)

	if err := console.New(accountService, transferService, os.Stdin, os.Stdout).Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("cannot read input")
	}
}
