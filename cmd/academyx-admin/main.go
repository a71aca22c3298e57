// ABOUTME: Admin CLI for the AcademyX assessment platform
// ABOUTME: Signs in once, then manages users, companies, surveys and reports over the REST API

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/academyx-admin/internal/client"
	"github.com/2389/academyx-admin/internal/config"
)

const banner = `
                     _
  __ _  ___ __ _  __| | ___ _ __ ___  _   ___  __
 / _' |/ __/ _' |/ _' |/ _ \ '_ ' _ \| | | \ \/ /
| (_| | (_| (_| | (_| |  __/ | | | | | |_| |>  <
 \__,_|\___\__,_|\__,_|\___|_| |_| |_|\__, /_/\_\
                                      |___/
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, client.ErrSessionExpired) {
			fmt.Fprintln(os.Stderr, "Sign in again with: academyx-admin login")
		}
		os.Exit(1)
	}
}

// run executes one command. It is main without the process exit.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	var opts globalOptions
flags:
	for len(args) > 0 {
		switch args[0] {
		case "--config", "-c":
			if len(args) < 2 {
				return fmt.Errorf("%s needs a path", args[0])
			}
			opts.configPath = args[1]
			args = args[2:]
		case "--debug", "-v":
			opts.debug = true
			args = args[1:]
		default:
			break flags
		}
	}

	if len(args) == 0 {
		printUsage(out)
		return errors.New("no command given")
	}

	cmd, args := args[0], args[1:]

	// Commands that need no configuration.
	switch cmd {
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	case "password":
		return cmdPassword(out, args)
	}

	a, err := newApp(opts, in, out, errOut)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)
	case "status":
		return a.cmdStatus(ctx)
	case "whoami", "me":
		return a.cmdWhoami(ctx)
	case "users":
		return a.cmdUsers(ctx, args)
	case "surveys":
		return a.cmdSurveys(ctx, args)
	case "custom":
		return a.cmdCustom(ctx, args)
	case "companies":
		return a.cmdCompanies(ctx, args)
	case "personnel":
		return a.cmdPersonnel(ctx, args)
	case "company":
		return a.cmdCompany(ctx, args)
	case "report":
		return a.cmdReport(ctx, args)
	default:
		printUsage(errOut)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printUsage(w io.Writer) {
	cyan.Fprint(w, banner)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: academyx-admin [--config <path>] [--debug] <command> [args]")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Session:")
	fmt.Fprintln(w, "  login [--email <e>] [--password <p>]   Sign in and store the session")
	fmt.Fprintln(w, "  logout                                 Forget the stored session")
	fmt.Fprintln(w, "  status                                 Show API, session and identity")
	fmt.Fprintln(w, "  whoami                                 Show the signed-in user")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Administration:")
	fmt.Fprintln(w, "  users [--search <q>] [--role <r>] [--sort <field>] [--desc]")
	fmt.Fprintln(w, "  surveys [list|show <id>|create|delete <id>|results <id>|assign]")
	fmt.Fprintln(w, "  custom [list|show <id>|update <id>|delete <id>]")
	fmt.Fprintln(w, "  companies [list|show <id>|create|delete <id>|users <id>|surveys <id>|status <id> on|off]")
	fmt.Fprintln(w, "  personnel [list|add|update <id>|delete <id>]")
	fmt.Fprintln(w, "  company [use <id>|show|update|surveys|survey <id>]   Manage the active company")
	fmt.Fprintln(w, "  report <custom-survey-id> [--toc] [--bars]")
	fmt.Fprintln(w, "  password                               Generate a personnel password")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-20s Config file (default %s)\n", config.EnvConfigPath, config.DefaultPath())
	fmt.Fprintf(w, "  %-20s API base URL, overrides the config file\n", config.EnvAPIURL)
	fmt.Fprintf(w, "  %-20s Password for non-interactive login\n", envPassword)
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  academyx-admin login --email admin@example.com")
	fmt.Fprintln(w, "  academyx-admin companies list --search acme")
	fmt.Fprintln(w, "  academyx-admin report 6f1c... --toc --bars")
	fmt.Fprintln(w)
}
