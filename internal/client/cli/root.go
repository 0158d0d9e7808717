package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return fmt.Sprintf("(%s)", a.config.Subject)
	}
	return ""
}

// Root runs the interactive command loop until exit or EOF.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "indexkeeper admin console (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "ik %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: list, show <id>, create, update <id>, delete <id> [keep], logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, exit")
			}
		case "login":
			if err := a.Login(); err != nil {
				fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
			}
		case "logout":
			a.Logout()
		case "list":
			a.list(ctx)
		case "show":
			a.show(ctx, args)
		case "create":
			a.create(ctx)
		case "update":
			a.update(ctx, args)
		case "delete":
			a.delete(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

// requireLogin prints a hint and reports false when no token is attached.
func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in, type 'login' first")
		return false
	}
	return true
}
