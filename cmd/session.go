package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/nibzard/weatherdo/internal/ui"
)

func (a *app) loginCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	username := fs.String("u", "", "Username")
	password := fs.String("p", "", "Password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if *username == "" && len(rest) > 0 {
		*username, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	if *password == "" && *username != "" {
		var err error
		if *password, err = a.readPassword(); err != nil {
			return err
		}
	}

	if err := a.open(); err != nil {
		return err
	}
	sess, err := a.sessions.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", sess.Username())
	return nil
}

// readPassword reads one line from stdin.
func (a *app) readPassword() (string, error) {
	fmt.Fprint(a.errOut, "Password: ")
	scanner := bufio.NewScanner(a.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", nil
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}

func (a *app) logoutCommand(args []string) error {
	if _, err := parseArgs(a.newFlagSet("logout"), args, "", 0); err != nil {
		return err
	}
	if err := a.open(); err != nil {
		return err
	}
	if !a.sessions.Current().Authenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	name := a.sessions.Current().Username()
	if err := a.sessions.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintf(a.out, "Logged out %s\n", name)
	return nil
}

func (a *app) whoamiCommand(args []string) error {
	fs := a.newFlagSet("whoami")
	verbose := fs.Bool("v", false, "Show user id and token details")
	if _, err := parseArgs(fs, args, "[-v]", 0); err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	sess := a.sessions.Current()
	fmt.Fprintln(a.out, sess.Username())
	if !*verbose {
		return nil
	}
	fmt.Fprintf(a.out, "  ID: %s\n", sess.User.ID)
	if a.cfg.Session.Secret == "" {
		fmt.Fprintln(a.out, "  Token: not verifiable (no session.secret configured)")
		return nil
	}
	claims, err := a.sessions.VerifyToken(sess.User.Token)
	if err != nil {
		fmt.Fprintf(a.out, "  Token: invalid (%v)\n", err)
		return nil
	}
	issued := ui.InvalidDate
	if claims.IssuedAt != nil {
		issued = ui.FormatCreated(claims.IssuedAt.Time)
	}
	fmt.Fprintf(a.out, "  Token: valid, issued %s\n", issued)
	return nil
}
