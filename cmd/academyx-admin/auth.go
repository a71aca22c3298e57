// ABOUTME: Session commands: login, logout, status and whoami
// ABOUTME: Login prompts for missing credentials and reads the password without echo

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/2389/academyx-admin/internal/academyx"
	"github.com/2389/academyx-admin/internal/session"
)

const envPassword = "ACADEMYX_PASSWORD"

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	p := parseArgs(args)
	email := p.get("--email", "-e")
	password := p.get("--password", "-p")
	if password == "" {
		password = os.Getenv(envPassword)
	}

	reader := bufio.NewReader(a.in)
	if email == "" {
		v, err := a.prompt(reader, "Email: ")
		if err != nil {
			return err
		}
		email = v
	}
	if password == "" {
		v, err := a.readPassword(reader)
		if err != nil {
			return err
		}
		password = v
	}
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}

	res, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("signing in: %w", err)
	}

	a.logger.Info("signed in", "email", res.User.Email, "role", res.User.Role)
	a.success("Signed in as %s", displayName(res.User))
	a.field("Role", res.User.Role)
	if res.User.Role == academyx.RoleCompanyAdmin {
		a.field("Company", res.User.CompanyID)
	}
	return nil
}

func (a *app) prompt(r *bufio.Reader, label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo from a terminal, or a plain line otherwise.
func (a *app) readPassword(r *bufio.Reader) (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.out, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	return a.prompt(r, "Password: ")
}

func (a *app) cmdLogout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	a.success("Signed out")
	return nil
}

func (a *app) cmdStatus(ctx context.Context) error {
	cyan.Fprint(a.out, banner)
	fmt.Fprintln(a.out)

	green.Fprint(a.out, "  API:      ")
	fmt.Fprintln(a.out, a.client.BaseURL())

	tokens, err := a.session.Tokens(ctx)
	if err != nil {
		yellow.Fprint(a.out, "  Session:  ")
		red.Fprintf(a.out, "unreadable (%v)\n", err)
		return nil
	}
	if tokens == nil {
		yellow.Fprint(a.out, "  Session:  ")
		fmt.Fprintln(a.out, "(not logged in)")
		fmt.Fprintln(a.out)
		return nil
	}

	green.Fprint(a.out, "  Session:  ")
	if claims, err := session.Inspect(tokens.AccessToken); err == nil {
		fmt.Fprintf(a.out, "%s (%s)", claims.Email, claims.Role)
		if exp := claims.Expiry(); !exp.IsZero() {
			if claims.Expired(time.Now()) {
				yellow.Fprintf(a.out, " access token expired %s", exp.Local().Format("Jan 02 15:04"))
			} else {
				gray.Fprintf(a.out, " valid until %s", exp.Local().Format("Jan 02 15:04"))
			}
		}
		fmt.Fprintln(a.out)
	} else {
		fmt.Fprintln(a.out, "stored (opaque token)")
	}
	if tokens.RefreshToken == "" {
		yellow.Fprintln(a.out, "            no refresh token; you will need to sign in when it expires")
	}
	if saved, err := a.session.TokensSavedAt(ctx); err == nil && !saved.IsZero() {
		green.Fprint(a.out, "  Saved:    ")
		fmt.Fprintln(a.out, saved.Local().Format("Jan 02 15:04:05"))
	}

	if company, _ := a.session.ActiveCompany(ctx); company != "" {
		green.Fprint(a.out, "  Company:  ")
		fmt.Fprintln(a.out, company)
	}

	me, err := a.api.Me(ctx)
	if err != nil {
		yellow.Fprint(a.out, "  Identity: ")
		red.Fprintf(a.out, "unavailable (%v)\n", err)
	} else {
		green.Fprint(a.out, "  Identity: ")
		fmt.Fprintln(a.out, displayName(*me))
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	me, err := a.api.Me(ctx)
	if err != nil {
		return fmt.Errorf("fetching profile: %w", err)
	}

	a.title("Identity")
	a.field("ID", me.ID)
	a.field("Name", me.FullName())
	a.field("Email", me.Email)
	green.Fprintf(a.out, "  %-14s %s\n", "Role:", me.Role)
	if me.CompanyRole != "" {
		a.field("Company role", me.CompanyRole)
	}
	if me.Company != nil {
		a.field("Company", me.Company.Name)
	} else if me.CompanyID != "" {
		a.field("Company", me.CompanyID)
	}
	a.field("Member since", formatTime(me.CreatedAt))
	fmt.Fprintln(a.out)
	return nil
}

func displayName(u academyx.User) string {
	name := u.FullName()
	switch {
	case name == "":
		return u.Email
	case u.Email == "":
		return name
	}
	return fmt.Sprintf("%s <%s>", name, u.Email)
}
