// ABOUTME: Survey template and custom survey commands
// ABOUTME: List, inspect, create, delete, assign to companies and show results

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/2389/academyx-admin/internal/academyx"
	"github.com/2389/academyx-admin/internal/report"
)

func (a *app) cmdSurveys(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	sub, args := subcommand(args, "list")
	switch sub {
	case "list", "ls":
		return a.cmdSurveysList(ctx, parseArgs(args, "--desc"))
	case "show", "get":
		return a.cmdSurveysShow(ctx, parseArgs(args))
	case "create", "add":
		return a.cmdSurveysCreate(ctx, parseArgs(args))
	case "delete", "rm", "remove":
		id := parseArgs(args).arg(0)
		if id == "" {
			return fmt.Errorf("usage: surveys delete <survey-id>")
		}
		if err := a.api.DeleteSurvey(ctx, id); err != nil {
			return fmt.Errorf("deleting survey: %w", err)
		}
		a.success("Deleted survey: %s", id)
		return nil
	case "results":
		return a.cmdSurveysResults(ctx, parseArgs(args, "--mine"))
	case "assign":
		return a.cmdSurveysAssign(ctx, parseArgs(args))
	default:
		return fmt.Errorf("unknown surveys subcommand: %s (use list, show, create, delete, results, assign)", sub)
	}
}

func (a *app) cmdSurveysList(ctx context.Context, p parsedArgs) error {
	surveys, err := a.api.Surveys(ctx)
	if err != nil {
		return fmt.Errorf("listing surveys: %w", err)
	}
	surveys = academyx.FilterSurveys(surveys, p.get("--search", "-s"))
	academyx.SortSurveys(surveys, academyx.ParseSortField(p.get("--sort")), p.has("--desc"))

	a.title("Surveys")
	if len(surveys) == 0 {
		fmt.Fprintln(a.out, "  (no surveys)")
		fmt.Fprintln(a.out)
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "  ID\tTITLE\tQUESTIONS\tCREATED")
	fmt.Fprintln(w, "  --\t-----\t---------\t-------")
	for _, s := range surveys {
		fmt.Fprintf(w, "  %s\t%s\t%d\t%s\n",
			truncate(s.ID, 12), truncate(s.Title, 40), len(s.Questions), formatTime(s.CreatedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) cmdSurveysShow(ctx context.Context, p parsedArgs) error {
	id := p.arg(0)
	if id == "" {
		return fmt.Errorf("usage: surveys show <survey-id>")
	}
	s, err := a.api.Survey(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching survey: %w", err)
	}

	a.title(s.Title)
	a.field("ID", s.ID)
	a.field("Description", s.Description)
	a.field("Created", formatTime(s.CreatedAt))
	a.printQuestions(s.Questions)
	return nil
}

func (a *app) printQuestions(qs []academyx.Question) {
	fmt.Fprintln(a.out)
	if len(qs) == 0 {
		fmt.Fprintln(a.out, "  (no questions)")
		fmt.Fprintln(a.out)
		return
	}
	for i, q := range qs {
		bold.Fprintf(a.out, "  %d. %s\n", i+1, q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(a.out, "     %c) %s\n", 'a'+rune(j), opt)
		}
	}
	fmt.Fprintln(a.out)
}

func (a *app) cmdSurveysCreate(ctx context.Context, p parsedArgs) error {
	in := academyx.SurveyInput{
		Title:       p.get("--title", "-t"),
		Description: p.get("--description", "-d"),
	}
	if in.Title == "" {
		return fmt.Errorf("usage: surveys create --title <title> [--description <text>]")
	}
	s, err := a.api.CreateSurvey(ctx, in)
	if err != nil {
		return fmt.Errorf("creating survey: %w", err)
	}
	a.success("Created survey: %s", s.ID)
	a.field("Title", s.Title)
	return nil
}

func (a *app) cmdSurveysAssign(ctx context.Context, p parsedArgs) error {
	in := academyx.AssignmentInput{
		Title:     p.get("--title", "-t"),
		SurveyID:  p.get("--survey"),
		CompanyID: p.get("--company"),
		DueDate:   p.get("--due"),
	}
	if in.SurveyID == "" || in.CompanyID == "" || in.Title == "" {
		return fmt.Errorf("usage: surveys assign --survey <id> --company <id> --title <title> [--due YYYY-MM-DD]")
	}
	cs, err := a.api.AssignSurvey(ctx, in)
	if err != nil {
		return fmt.Errorf("assigning survey: %w", err)
	}
	a.success("Assigned survey: %s", cs.ID)
	a.field("Company", in.CompanyID)
	a.field("Due", formatDate(cs.DueDate))
	return nil
}

func (a *app) cmdSurveysResults(ctx context.Context, p parsedArgs) error {
	id := p.arg(0)
	if id == "" {
		return fmt.Errorf("usage: surveys results <custom-survey-id> [--mine]")
	}

	var (
		res *academyx.SurveyResult
		err error
	)
	if p.has("--mine") {
		res, err = a.api.MySurveyResults(ctx, id)
	} else {
		res, err = a.api.SurveyResults(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("fetching results: %w", err)
	}

	a.title("Results")
	status := res.ReportStatus
	switch status {
	case academyx.ReportCompleted:
		green.Fprintf(a.out, "  %-14s %s\n", "Report:", status)
	case "":
		a.field("Report", "")
	default:
		yellow.Fprintf(a.out, "  %-14s %s\n", "Report:", status)
	}
	fmt.Fprintln(a.out)

	for i, q := range res.Responses {
		bold.Fprintf(a.out, "  %d. %s\n", i+1, q.Question)
		total := 0
		for _, r := range q.Responses {
			total += r.ResponseCount
		}
		w := newTable(a.out)
		for _, r := range q.Responses {
			pct := 0
			if total > 0 {
				pct = r.ResponseCount * 100 / total
			}
			fmt.Fprintf(w, "     %s\t%s\t%3d%%\t(%d)\n",
				truncate(r.Option, 40), report.Bar(pct, 20), pct, r.ResponseCount)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if len(res.Responses) == 0 {
		fmt.Fprintln(a.out, "  (no responses yet)")
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) cmdCustom(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	sub, args := subcommand(args, "list")
	p := parseArgs(args)
	switch sub {
	case "list", "ls":
		surveys, err := a.api.CustomSurveys(ctx)
		if err != nil {
			return fmt.Errorf("listing custom surveys: %w", err)
		}
		return a.printCustomSurveys("Custom Surveys", surveys)
	case "show", "get":
		id := p.arg(0)
		if id == "" {
			return fmt.Errorf("usage: custom show <custom-survey-id>")
		}
		cs, err := a.api.CustomSurvey(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching custom survey: %w", err)
		}
		a.printCustomSurvey(cs)
		return nil
	case "update", "edit":
		return a.cmdCustomUpdate(ctx, p)
	case "delete", "rm", "remove":
		id := p.arg(0)
		if id == "" {
			return fmt.Errorf("usage: custom delete <custom-survey-id>")
		}
		if err := a.api.DeleteCustomSurvey(ctx, id); err != nil {
			return fmt.Errorf("deleting custom survey: %w", err)
		}
		a.success("Deleted custom survey: %s", id)
		return nil
	default:
		return fmt.Errorf("unknown custom subcommand: %s (use list, show, update, delete)", sub)
	}
}

// cmdCustomUpdate changes the flags given and keeps the rest of the
// assignment as it is.
func (a *app) cmdCustomUpdate(ctx context.Context, p parsedArgs) error {
	id := p.arg(0)
	title, company, due := p.get("--title", "-t"), p.get("--company"), p.get("--due")
	if id == "" || (title == "" && company == "" && due == "") {
		return fmt.Errorf("usage: custom update <custom-survey-id> [--title <title>] [--company <id>] [--due YYYY-MM-DD]")
	}

	current, err := a.api.CustomSurvey(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching custom survey: %w", err)
	}
	in := academyx.AssignmentInput{
		Title:     current.Title,
		CompanyID: current.CompanyID,
		DueDate:   current.DueDate,
	}
	if title != "" {
		in.Title = title
	}
	if company != "" {
		in.CompanyID = company
	}
	if due != "" {
		in.DueDate = due
	}

	cs, err := a.api.UpdateCustomSurvey(ctx, id, in)
	if err != nil {
		return fmt.Errorf("updating custom survey: %w", err)
	}
	a.success("Updated custom survey: %s", cs.ID)
	a.field("Title", cs.Title)
	a.field("Due", formatDate(cs.DueDate))
	return nil
}

func (a *app) printCustomSurveys(heading string, surveys []academyx.CustomSurvey) error {
	a.title(heading)
	if len(surveys) == 0 {
		fmt.Fprintln(a.out, "  (no surveys)")
		fmt.Fprintln(a.out)
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "  ID\tTITLE\tCOMPANY\tQUESTIONS\tDUE")
	fmt.Fprintln(w, "  --\t-----\t-------\t---------\t---")
	for _, s := range surveys {
		company := s.CompanyID
		if s.Company != nil {
			company = s.Company.Name
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d\t%s\n",
			truncate(s.ID, 12), truncate(s.Title, 36), truncate(company, 20),
			len(s.Questions), formatDate(s.DueDate))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) printCustomSurvey(cs *academyx.CustomSurvey) {
	a.title(cs.Title)
	a.field("ID", cs.ID)
	a.field("Description", cs.Description)
	if cs.Company != nil {
		a.field("Company", cs.Company.Name)
	} else {
		a.field("Company", cs.CompanyID)
	}
	a.field("Due", formatDate(cs.DueDate))

	qs := make([]academyx.Question, len(cs.Questions))
	for i, q := range cs.Questions {
		qs[i] = academyx.Question{ID: q.ID, Text: q.Text, Options: q.Options}
	}
	a.printQuestions(qs)
}

// parseOnOff reads an activation switch.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "active", "enable", "enabled", "true", "yes":
		return true, nil
	case "off", "inactive", "disable", "disabled", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
