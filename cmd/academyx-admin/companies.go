// ABOUTME: Company commands for system admins and the active-company commands for company admins
// ABOUTME: companies manages every company; company works on the one stored in the session

package main

import (
	"context"
	"fmt"

	"github.com/2389/academyx-admin/internal/academyx"
)

func (a *app) cmdCompanies(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	sub, args := subcommand(args, "list")
	switch sub {
	case "list", "ls":
		return a.cmdCompaniesList(ctx, parseArgs(args, "--desc"))
	case "show", "get":
		id := parseArgs(args).arg(0)
		if id == "" {
			return fmt.Errorf("usage: companies show <company-id>")
		}
		c, err := a.api.Company(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching company: %w", err)
		}
		a.printCompany(c)
		return nil
	case "create", "add":
		return a.cmdCompaniesCreate(ctx, parseArgs(args, "--inactive"))
	case "delete", "rm", "remove":
		id := parseArgs(args).arg(0)
		if id == "" {
			return fmt.Errorf("usage: companies delete <company-id>")
		}
		if err := a.api.DeleteCompany(ctx, id); err != nil {
			return fmt.Errorf("deleting company: %w", err)
		}
		a.success("Deleted company: %s", id)
		return nil
	case "users":
		p := parseArgs(args, "--desc")
		id := p.arg(0)
		if id == "" {
			return fmt.Errorf("usage: companies users <company-id>")
		}
		users, err := a.api.CompanyUsers(ctx, id)
		if err != nil {
			return fmt.Errorf("listing company users: %w", err)
		}
		return a.printUsers("Company Users", users, p)
	case "surveys":
		id := parseArgs(args).arg(0)
		if id == "" {
			return fmt.Errorf("usage: companies surveys <company-id>")
		}
		surveys, err := a.api.CompanySurveys(ctx, id)
		if err != nil {
			return fmt.Errorf("listing company surveys: %w", err)
		}
		return a.printCustomSurveys("Company Surveys", surveys)
	case "status":
		p := parseArgs(args)
		id, state := p.arg(0), p.arg(1)
		if id == "" || state == "" {
			return fmt.Errorf("usage: companies status <company-id> on|off")
		}
		active, err := parseOnOff(state)
		if err != nil {
			return err
		}
		if err := a.api.SetCompanyStatus(ctx, id, active); err != nil {
			return fmt.Errorf("updating company status: %w", err)
		}
		a.success("Company %s is now %s", id, activeLabel(active))
		return nil
	default:
		return fmt.Errorf("unknown companies subcommand: %s (use list, show, create, delete, users, surveys, status)", sub)
	}
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func (a *app) cmdCompaniesList(ctx context.Context, p parsedArgs) error {
	companies, err := a.api.Companies(ctx)
	if err != nil {
		return fmt.Errorf("listing companies: %w", err)
	}
	companies = academyx.FilterCompanies(companies, p.get("--search", "-s"))
	academyx.SortCompanies(companies, academyx.ParseSortField(p.get("--sort")), p.has("--desc"))

	a.title("Companies")
	if len(companies) == 0 {
		fmt.Fprintln(a.out, "  (no companies)")
		fmt.Fprintln(a.out)
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "  ID\tNAME\tSECTOR\tSIZE\tACTIVE\tCREATED")
	fmt.Fprintln(w, "  --\t----\t------\t----\t------\t-------")
	for _, c := range companies {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(c.ID, 12), truncate(c.Name, 28), truncate(c.Sector, 16), c.Size,
			yesNo(c.IsActive), formatTime(c.CreatedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return nil
}

func companyInput(p parsedArgs) academyx.CompanyInput {
	return academyx.CompanyInput{
		Name:     p.get("--name", "-n"),
		Sector:   p.get("--sector"),
		Size:     p.get("--size"),
		Email:    p.get("--email", "-e"),
		Phone:    p.get("--phone"),
		Address:  p.get("--address"),
		IsActive: !p.has("--inactive"),
	}
}

func (a *app) cmdCompaniesCreate(ctx context.Context, p parsedArgs) error {
	in := companyInput(p)
	if in.Name == "" {
		return fmt.Errorf("usage: companies create --name <name> [--sector <s>] [--size <s>] [--email <e>] [--phone <p>] [--address <a>] [--inactive]")
	}
	c, err := a.api.CreateCompany(ctx, in)
	if err != nil {
		return fmt.Errorf("creating company: %w", err)
	}
	a.success("Created company: %s", c.ID)
	a.field("Name", c.Name)
	return nil
}

func (a *app) printCompany(c *academyx.Company) {
	a.title(c.Name)
	a.field("ID", c.ID)
	a.field("Sector", c.Sector)
	a.field("Size", c.Size)
	a.field("Email", c.Email)
	a.field("Phone", c.Phone)
	a.field("Address", c.Address)
	if c.IsActive {
		green.Fprintf(a.out, "  %-14s %s\n", "Status:", "active")
	} else {
		yellow.Fprintf(a.out, "  %-14s %s\n", "Status:", "inactive")
	}
	a.field("Created", formatTime(c.CreatedAt))
	fmt.Fprintln(a.out)
}

// cmdCompany works on the active company, the scope of a company admin.
func (a *app) cmdCompany(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "show")
	p := parseArgs(args, "--desc")

	switch sub {
	case "use":
		id := p.arg(0)
		if id == "" {
			return fmt.Errorf("usage: company use <company-id>")
		}
		if err := a.session.SetActiveCompany(ctx, id); err != nil {
			return fmt.Errorf("saving active company: %w", err)
		}
		a.success("Active company: %s", id)
		return nil
	case "show", "get":
		if err := a.requireLogin(ctx); err != nil {
			return err
		}
		c, err := a.api.MyCompany(ctx, p.arg(0))
		if err != nil {
			return fmt.Errorf("fetching company: %w", err)
		}
		a.printCompany(c)
		return nil
	case "update", "edit":
		if err := a.requireLogin(ctx); err != nil {
			return err
		}
		in := companyInput(p)
		if in.Name == "" {
			return fmt.Errorf("usage: company update --name <name> [--sector <s>] [--size <s>] [--email <e>] [--phone <p>] [--address <a>]")
		}
		c, err := a.api.UpdateMyCompany(ctx, p.arg(0), in)
		if err != nil {
			return fmt.Errorf("updating company: %w", err)
		}
		a.success("Updated company: %s", c.Name)
		return nil
	case "surveys":
		if err := a.requireLogin(ctx); err != nil {
			return err
		}
		surveys, err := a.api.MySurveys(ctx, p.arg(0))
		if err != nil {
			return fmt.Errorf("listing surveys: %w", err)
		}
		return a.printCustomSurveys("Company Surveys", surveys)
	case "survey":
		if err := a.requireLogin(ctx); err != nil {
			return err
		}
		id := p.arg(0)
		if id == "" {
			return fmt.Errorf("usage: company survey <custom-survey-id>")
		}
		cs, err := a.api.AssignedSurvey(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching survey: %w", err)
		}
		a.printCustomSurvey(cs)
		return nil
	default:
		return fmt.Errorf("unknown company subcommand: %s (use use, show, update, surveys, survey)", sub)
	}
}
