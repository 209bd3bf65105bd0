package cli

import (
	"context"

	"github.com/dmitrijs2005/docwatch/internal/common"
)

// getSimpleText, getPassword and getSigners are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getSigners    = GetSigners
)

// Login prompts the user for credentials, authenticates and loads the
// document list. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		a.log.Warn(ctx, "login failed", "user", userName, "error", err)
		return err
	}
	a.userName = userName
	printlnFn("Login successful")

	return a.Reload(ctx)
}

// Reload fetches documents and companies again and reconnects the list
// channel. It is the manual retry after a load failure or a lost channel.
func (a *App) Reload(ctx context.Context) error {
	a.listService.Close()
	if err := a.listService.Load(ctx); err != nil {
		return err
	}
	st, err := a.listService.Status(ctx)
	if err != nil {
		return err
	}
	printlnFn("Loaded", st.Documents, "documents")

	return a.listService.OpenRealtime(ctx)
}

// Logout closes both channels and forgets the session tokens.
func (a *App) Logout(ctx context.Context) error {
	a.detailService.Close()
	a.listService.Close()
	a.authService.Logout(ctx)
	a.userName = ""
	printlnFn("Logged out")
	return nil
}
