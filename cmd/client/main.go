package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/ledgerkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/ledgerkeeper/internal/client/cli"
	"github.com/dmitrijs2005/ledgerkeeper/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.LoadConfig()
	cli.NewApp(cfg).Run(ctx)

}
