package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/common"
)

// getSimpleText, getPassword and getEdit are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getEdit       = GetEdit
	getMultiline  = GetMultiline
)

// Register prompts for a username, an email and a password and creates an
// account. A successful registration also logs the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Register(ctx, username, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Username)
	return nil
}

// Login prompts for an email and a password and authenticates. The session
// is persisted, so the next start of the client is already logged in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", user.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the session as derived from the stored token.
func (a *App) WhoAmI(context.Context) error {
	s := a.authService.Session()
	fmt.Fprintf(a.out, "user: %s\nlogged in: %t\nexpired: %t\n", s.Username, s.LoggedIn, s.Expired)
	return nil
}
