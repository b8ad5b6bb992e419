// Package cmd implements the weatherdo command line.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/weatherdo/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the weatherdo CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("weatherdo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a := newApp(cws, stdin, stdout, stderr)
	defer func() {
		if cerr := a.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, stdout)
		return nil
	}
	subcommand, rest := remaining[0], remaining[1:]

	switch subcommand {
	case "login":
		return a.loginCommand(ctx, rest)
	case "logout":
		return a.logoutCommand(rest)
	case "whoami":
		return a.whoamiCommand(rest)
	case "add":
		return a.addCommand(ctx, rest)
	case "ls", "list":
		return a.lsCommand(rest)
	case "toggle":
		return a.toggleCommand(rest)
	case "rm", "delete":
		return a.rmCommand(rest)
	case "priority":
		return a.priorityCommand(rest)
	case "refresh":
		return a.refreshCommand(ctx, rest)
	case "clear":
		return a.clearCommand(rest)
	case "export":
		return a.exportCommand(rest)
	case "tui":
		return a.tuiCommand(ctx, rest)
	case "doctor":
		return a.doctorCommand(rest)
	case "config":
		return a.configCommand(rest)
	case "init":
		return a.initCommand(rest)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "weatherdo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "weatherdo - A to-do list with weather for every place you need to be")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  weatherdo [global options] <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Session:")
	fmt.Fprintln(w, "  login -u <user> [-p <password>]  Sign in (password is read from stdin if omitted)")
	fmt.Fprintln(w, "  logout                           Sign out")
	fmt.Fprintln(w, "  whoami [-v]                      Show the signed-in user")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tasks (require a signed-in session; ids may be any unique prefix):")
	fmt.Fprintln(w, "  add [-priority p] [-location l] <text...>  Add a task")
	fmt.Fprintln(w, "  ls [-filter f] [-sort s] [-v]              List tasks")
	fmt.Fprintln(w, "  toggle <id>                                Toggle completed")
	fmt.Fprintln(w, "  rm <id>                                    Delete a task")
	fmt.Fprintln(w, "  priority <id> <low|medium|high>            Change priority")
	fmt.Fprintln(w, "  refresh <id> | -all [-concurrency n]       Refresh weather readings")
	fmt.Fprintln(w, "  clear                                      Delete all tasks")
	fmt.Fprintln(w, "  export [-format json|yaml] [-filter f] [-sort s]  Write tasks to stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  tui              Launch terminal UI")
	fmt.Fprintln(w, "  doctor [-v]      Check config, state file and saved tasks")
	fmt.Fprintln(w, "  config           Show effective configuration and where each value came from")
	fmt.Fprintln(w, "  init [-user] [-force]  Write an example weatherdo.toml")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Filters: all, active, completed")
	fmt.Fprintln(w, "Sort orders: newest, oldest, priority-high, priority-low")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
