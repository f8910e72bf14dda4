package cli

import (
	"context"
	"errors"
	"os"

	"github.com/anandk87/filetrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and tries to authenticate. Bad credentials
// are reported as a form-level error without scheduling a retry; anything
// else is surfaced generically. The password bytes are wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, username, string(password)); err != nil {
		if errors.Is(err, common.ErrAuthFailure) {
			printlnFn("Invalid credentials.")
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	printlnFn("Login successful.")

	if dest := a.guard.PendingDestination(); dest != "" {
		// The destination recorded before the redirect is kept for a
		// "return to where you were" flow; today the user always lands
		// on the dashboard.
		a.log.Debug(ctx, "pending destination not consumed", "route", dest)
		a.guard.ClearPendingDestination()
	}
	return nil
}

// Logout ends the session. Safe to repeat; logging out twice is a no-op.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}
