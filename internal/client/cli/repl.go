package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Get(ctx context.Context, id string) error
	Update(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) error
	Export(ctx context.Context) error
	History(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: add, (l)ist, get <id>, update <id>, delete <id>, summary, export, history, logout, help, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// Errors from commands are printed and the loop continues. The loop exits
// on EOF or on "exit"/"quit".
//
// Commands that need a transaction id take it as the first argument:
//
//	get 6b0c...   update 6b0c...   delete 6b0c...
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "ledger %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "add":
			cmdErr = a.Add(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "summary":
			cmdErr = a.Summary(ctx)
		case "export":
			cmdErr = a.Export(ctx)
		case "history":
			cmdErr = a.History(ctx)

		case "get", "update", "delete":
			if len(args) == 0 {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				continue
			}
			switch cmd {
			case "get":
				cmdErr = a.Get(ctx, args[0])
			case "update":
				cmdErr = a.Update(ctx, args[0])
			default:
				cmdErr = a.Delete(ctx, args[0])
			}

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", describe(cmdErr))
		}
	}
}
