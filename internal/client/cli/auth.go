package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/daastan/internal/client/models"
	"github.com/dmitrijs2005/daastan/internal/client/session"
)

func (a *App) Register(ctx context.Context) error {
	username, err := GetRequiredText(a.reader, "Username:", a.out)
	if err != nil {
		return err
	}
	email, err := GetRequiredText(a.reader, "Email:", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Full name (optional):", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}

	resp, err := a.shop.Register(ctx, models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		Name:     name,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, messageOr(resp.Message, "Registered. You can now login."))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetRequiredText(a.reader, "Username or email:", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}

	resp, err := a.shop.Login(ctx, username, password)
	if err != nil {
		return err
	}
	who := username
	if resp.User != nil {
		who = displayName(resp.User)
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", who)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.shop.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	u, err := a.shop.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", displayName(u), u.Email, u.Role)
	if c, err := session.ParseClaims(a.shop.Session().AccessToken(ctx)); err == nil && !c.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Access token valid until %s\n", c.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

func displayName(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
