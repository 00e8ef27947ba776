// Package cli provides the interactive ledger command-line client.
//
// It wires configuration, the HTTP API client and a REPL. Typical flow:
// register or log in, then add, list, edit and summarize transactions.
//
// Commands:
//   - register / login / logout
//   - add, list, get <id>, update <id>, delete <id>
//   - summary, export, history
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
