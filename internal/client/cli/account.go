package cli

import (
	"context"
	"fmt"
)

func (a *App) Profile(ctx context.Context) error {
	u, err := a.accountService.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\n", u.Name, u.Email)
	return nil
}

func (a *App) Rename(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New name", a.out)
	if err != nil {
		return err
	}
	u, err := a.accountService.Rename(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Name updated to %s\n", u.Name)
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	if err := a.accountService.ChangePassword(ctx, current, next); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password updated successfully")
	return nil
}
