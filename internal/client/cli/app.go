package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/ledgerkeeper/internal/client/api"
	"github.com/dmitrijs2005/ledgerkeeper/internal/client/config"
	"github.com/dmitrijs2005/ledgerkeeper/internal/filex"
	"github.com/dmitrijs2005/ledgerkeeper/internal/netx"
)

// ledgerAPI is the server surface the CLI needs; *api.Client satisfies it.
type ledgerAPI interface {
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	LoggedIn() bool
	SetToken(token string)
	CreateTransaction(ctx context.Context, in api.TransactionInput) (string, error)
	ListTransactions(ctx context.Context) ([]api.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*api.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in api.TransactionInput) error
	DeleteTransaction(ctx context.Context, id string) error
	Summary(ctx context.Context) (*api.Summary, error)
	Export(ctx context.Context) (*api.ExportResult, error)
	ExportHistory(ctx context.Context) ([]api.ExportRecord, error)
	Ping(ctx context.Context) error
}

type App struct {
	config   *config.Config
	api      ledgerAPI
	reader   *bufio.Reader
	out      io.Writer
	userName string

	download func(ctx context.Context, url string) ([]byte, error)
	save     func(dir, name string, data []byte) (string, error)
}

func NewApp(c *config.Config) *App {
	return &App{
		config:   c,
		api:      api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		download: netx.DownloadPresignedURL,
		save:     filex.SaveInSubdDir,
	}
}

// Run greets the user, checks the server and starts the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the ledger CLI (type 'help' for commands)")
	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: server %s is not reachable: %v\n", a.config.ServerEndpointAddr, err)
	}
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
