// ABOUTME: Report and password commands
// ABOUTME: Prints a generated survey report with an optional outline and percentage bars

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/2389/academyx-admin/internal/academyx"
	"github.com/2389/academyx-admin/internal/report"
)

func (a *app) cmdReport(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	p := parseArgs(args, "--toc", "--bars")
	id := p.arg(0)
	if id == "" {
		return fmt.Errorf("usage: report <custom-survey-id> [--toc] [--bars]")
	}

	r, err := a.api.Report(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching report: %w", err)
	}
	content := r.Report.Content
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("report %s has no content yet", id)
	}

	company, survey := "-", "-"
	if r.Company != nil {
		company = r.Company.Name
	}
	if r.Survey != nil {
		survey = r.Survey.Title
	}
	a.title(company + " - " + survey)
	a.field("Generated", formatTime(r.Report.GeneratedAt))
	a.field("Participants", fmt.Sprint(r.Report.Participants))
	fmt.Fprintln(a.out)

	if p.has("--toc") {
		a.printOutline(report.Outline(content))
	}

	return report.RenderText(a.out, content, report.Options{
		Heading: headingStyle,
		Bars:    p.has("--bars"),
	})
}

func headingStyle(level int, text string) string {
	switch level {
	case 1:
		return bold.Sprint(cyan.Sprint(strings.ToUpper(text)))
	case 2:
		return cyan.Sprint(text)
	default:
		return bold.Sprint(text)
	}
}

func (a *app) printOutline(headings []report.Heading) {
	if len(headings) == 0 {
		return
	}
	yellow.Fprintln(a.out, "  Contents")
	for _, h := range headings {
		indent := strings.Repeat("  ", h.Level)
		fmt.Fprintf(a.out, "%s%s ", indent, h.Text)
		gray.Fprintf(a.out, "#%s\n", h.Anchor)
	}
	fmt.Fprintln(a.out)
}

func cmdPassword(out io.Writer, args []string) error {
	n := 1
	if v := parseArgs(args).get("--count", "-n"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n < 1 {
			return fmt.Errorf("--count must be a positive number")
		}
	}
	for range n {
		pw, err := academyx.GeneratePassword()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, pw)
	}
	return nil
}
