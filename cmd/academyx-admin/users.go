// ABOUTME: User listing and personnel management commands
// ABOUTME: Supports search, role filter and sorting like the web admin's user table

package main

import (
	"context"
	"fmt"

	"github.com/2389/academyx-admin/internal/academyx"
)

func (a *app) cmdUsers(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	p := parseArgs(args, "--desc")

	users, err := a.api.Users(ctx)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}
	return a.printUsers("Users", users, p)
}

// printUsers filters, sorts and prints users per the --search, --role,
// --sort and --desc flags in p.
func (a *app) printUsers(heading string, users []academyx.User, p parsedArgs) error {
	users = academyx.FilterUsers(users, p.get("--search", "-s"), p.get("--role"))
	academyx.SortUsers(users, academyx.ParseSortField(p.get("--sort")), p.has("--desc"))

	a.title(heading)
	if len(users) == 0 {
		fmt.Fprintln(a.out, "  (no users)")
		fmt.Fprintln(a.out)
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "  ID\tNAME\tEMAIL\tROLE\tCOMPANY\tCREATED")
	fmt.Fprintln(w, "  --\t----\t-----\t----\t-------\t-------")
	for _, u := range users {
		company := "-"
		if u.Company != nil {
			company = truncate(u.Company.Name, 20)
		}
		role := u.Role
		if u.CompanyRole != "" {
			role += "/" + u.CompanyRole
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(u.ID, 12), truncate(u.FullName(), 24), truncate(u.Email, 32),
			role, company, formatTime(u.CreatedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	gray.Fprintf(a.out, "  %d user(s)\n", len(users))
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) cmdPersonnel(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	sub, args := subcommand(args, "list")
	switch sub {
	case "list", "ls":
		p := parseArgs(args, "--desc")
		users, err := a.api.MyPersonnel(ctx, p.get("--company"))
		if err != nil {
			return fmt.Errorf("listing personnel: %w", err)
		}
		return a.printUsers("Personnel", users, p)
	case "add", "create":
		return a.cmdPersonnelAdd(ctx, args)
	case "update", "edit":
		return a.cmdPersonnelUpdate(ctx, args)
	case "delete", "rm", "remove":
		p := parseArgs(args)
		id := p.arg(0)
		if id == "" {
			return fmt.Errorf("usage: personnel delete <personnel-id>")
		}
		if err := a.api.DeletePersonnel(ctx, id); err != nil {
			return fmt.Errorf("deleting personnel: %w", err)
		}
		a.success("Deleted personnel: %s", id)
		return nil
	default:
		return fmt.Errorf("unknown personnel subcommand: %s (use list, add, update, delete)", sub)
	}
}

func personnelInput(p parsedArgs) academyx.PersonnelInput {
	return academyx.PersonnelInput{
		Email:       p.get("--email", "-e"),
		FirstName:   p.get("--first", "--first-name"),
		LastName:    p.get("--last", "--last-name"),
		Password:    p.get("--password"),
		CompanyRole: p.get("--role"),
	}
}

func (a *app) cmdPersonnelAdd(ctx context.Context, args []string) error {
	p := parseArgs(args)
	in := personnelInput(p)
	if in.Email == "" || in.FirstName == "" || in.LastName == "" {
		return fmt.Errorf("usage: personnel add --email <e> --first <name> --last <name> [--role <r>] [--password <p>] [--company <id>]")
	}

	generated := false
	if in.Password == "" {
		pw, err := academyx.GeneratePassword()
		if err != nil {
			return err
		}
		in.Password = pw
		generated = true
	}

	var (
		u   *academyx.User
		err error
	)
	if company := p.get("--company"); company != "" {
		u, err = a.api.AddCompanyUser(ctx, company, in)
	} else {
		u, err = a.api.AddMyPersonnel(ctx, in)
	}
	if err != nil {
		return fmt.Errorf("adding personnel: %w", err)
	}

	a.success("Added personnel: %s", displayName(*u))
	a.field("ID", u.ID)
	if generated {
		yellow.Fprintf(a.out, "  %-14s %s\n", "Password:", in.Password)
		gray.Fprintln(a.out, "  Share this password securely; it is not shown again.")
	}
	return nil
}

func (a *app) cmdPersonnelUpdate(ctx context.Context, args []string) error {
	p := parseArgs(args)
	id := p.arg(0)
	if id == "" {
		return fmt.Errorf("usage: personnel update <personnel-id> [--email <e>] [--first <name>] [--last <name>] [--role <r>]")
	}
	u, err := a.api.UpdatePersonnel(ctx, id, personnelInput(p))
	if err != nil {
		return fmt.Errorf("updating personnel: %w", err)
	}
	a.success("Updated personnel: %s", displayName(*u))
	return nil
}
