package cli

import (
	"context"
	"fmt"
)

// Prompt helpers, swappable in tests.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getYesNo           = GetYesNo
	getPassword        = GetPassword
)

func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, name, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registration successful! Please login to continue.")
	return nil
}

// Login pre-fills the email remembered by an earlier login, if any, and then
// defaults "remember me" to yes.
func (a *App) Login(ctx context.Context) error {
	remembered, err := a.authService.RememberedEmail(ctx)
	if err != nil {
		return err
	}

	email, err := getTextWithDefault(a.reader, "Enter email", remembered, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	remember, err := getYesNo(a.reader, "Remember me?", remembered != "", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, email, password, remember); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
