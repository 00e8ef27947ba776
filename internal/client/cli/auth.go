package cli

import (
	"context"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for name, email and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, name, email, password); err != nil {
		return err
	}

	a.printf("Registered %s, you can log in now\n", email)
	return nil
}

// Login prompts for credentials and keeps the session token in the API client.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, password); err != nil {
		return err
	}

	a.userName = email
	a.printf("Login successful\n")
	return nil
}

// Logout forgets the session token. Tokens are stateless, so nothing is sent
// to the server.
func (a *App) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.userName = ""
	a.printf("Logged out\n")
	return nil
}
