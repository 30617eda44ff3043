package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophgarage/internal/client/client"
	"github.com/dmitrijs2005/gophgarage/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, an email and a password, creates the
// account and logs the new user in.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
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
	defer wipe(password)

	if _, err := a.auth.Register(ctx, userName, email, string(password)); err != nil {
		if errors.Is(err, client.ErrConflict) {
			return errors.New("username or email already taken")
		}
		return err
	}

	printlnFn("Success! Logged in as", userName)
	return nil
}

// Login prompts for credentials. The auth service falls back to the offline
// verifier when the server is unreachable, so a user who logged in on this
// device before can work without a connection.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	s, err := a.auth.Login(ctx, userName, string(password))
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return errors.New("invalid username or password")
	case errors.Is(err, services.ErrNoOfflineAccount):
		return err
	case err != nil:
		a.logger.Error(ctx, "login failed", "error", err)
		return err
	}

	printlnFn("Logged in as", s.Username)
	return nil
}

// Logout ends the session. The user's cached data stays on this device.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}
