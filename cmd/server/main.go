package main

import (
	"os"

	"github.com/dmitrijs2005/ledgerkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)
	os.Exit(server.Main())
}
