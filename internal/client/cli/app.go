// Package cli is a small command client for the auth service: register,
// login, whoami and change-password against the HTTP API. Tokens live only
// for the lifetime of the process.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/travelguru/travelguru/internal/client/api"
)

// getSimpleText and getPassword are indirections for the interactive input
// helpers, swappable in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

type App struct {
	api         *api.Client
	reader      *bufio.Reader
	out         io.Writer
	accessToken string
}

func NewApp(serverURL string) *App {
	return &App{
		api:    api.NewClient(serverURL),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run executes one command and returns its error.
func (a *App) Run(ctx context.Context, command string) error {
	switch command {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "change-password":
		return a.ChangePassword(ctx)
	default:
		return fmt.Errorf("unknown command %q (want register, login, whoami or change-password)", command)
	}
}

func (a *App) Register(ctx context.Context) error {
	req := &api.RegisterRequest{Role: "user"}

	var err error
	if req.UserName, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if req.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if req.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone (10 digits)", a.out); err != nil {
		return err
	}
	if req.Password, err = getPassword(a.out, "Password"); err != nil {
		return err
	}
	if req.ConfirmPassword, err = getPassword(a.out, "Confirm password"); err != nil {
		return err
	}

	if err := a.api.Register(ctx, req); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}

	pair, err := a.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.accessToken = pair.AccessToken

	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.ensureLoggedIn(ctx); err != nil {
		return err
	}

	identity, err := a.api.Validate(ctx, a.accessToken)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", identity.UserName, identity.Role)
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	if err := a.ensureLoggedIn(ctx); err != nil {
		return err
	}

	oldPassword, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	newPassword, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	confirmPassword, err := getPassword(a.out, "Confirm new password")
	if err != nil {
		return err
	}

	if err := a.api.UpdatePassword(ctx, a.accessToken, oldPassword, newPassword, confirmPassword); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password updated.")
	return nil
}

// ensureLoggedIn prompts for credentials when the process has no token yet.
func (a *App) ensureLoggedIn(ctx context.Context) error {
	if a.accessToken != "" {
		return nil
	}
	return a.Login(ctx)
}
