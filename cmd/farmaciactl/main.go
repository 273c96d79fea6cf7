package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/bootstrap"
	"github.com/jhoicas/farmacia-pos/internal/cli"
	"github.com/jhoicas/farmacia-pos/pkg/config"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.App.LogLevel,
		Output: os.Stderr,
	})
	decimal.MarshalJSONWithoutQuotes = true

	env := &cli.Env{
		Open: func(ctx context.Context) (*bootstrap.Container, error) {
			ctr, _, err := bootstrap.Start(ctx, cfg, log)
			return ctr, err
		},
		Currency: cfg.Cash.Currency,
		Out:      os.Stdout,
		Err:      os.Stderr,
	}
	flag.BoolVar(&env.Raw, "raw", false, "imprimir markdown sin formato de terminal")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cli.Commands(env) {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
