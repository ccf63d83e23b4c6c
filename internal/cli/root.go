package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
)

func (a *App) status() string {
	s := ""
	if u, ok := a.accounts.Current(); ok {
		s = u.Name + " "
	}
	if a.view != "" {
		s += "@ " + a.view
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", strings.TrimSpace(s))
	}
	return s
}

// repl runs the interactive loop: read a line, dispatch the first token as
// the command, repeat. It exits on EOF or "exit"/"quit". Command handlers
// report their own errors to the user; the loop itself never fails.
func (a *App) repl(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to TaskBuddy (type 'help' for commands)")
	a.render(ctx)

	for {
		fmt.Fprintf(a.out, "tb %s> ", a.status())

		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			if err != io.EOF {
				a.log.Error(ctx, "input error", "error", err)
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "signup":
			a.signup(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "open":
			a.open(ctx, args)
		case "add":
			a.addTask(ctx)
		case "l", "list":
			a.list()
		case "show":
			a.show(args)
		case "edit":
			a.edit(ctx, args)
		case "status":
			a.setStatus(ctx, args)
		case "done":
			a.done(ctx, args)
		case "rm":
			a.remove(ctx, args)
		case "export":
			a.export(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: add, (l)ist, show <id>, edit <id>, status <id> <status>, done <id>, rm <id>, open <view>, export, logout, exit")
		fmt.Fprintln(a.out, "Views: dashboard, todo, in-progress, completed")
	} else {
		fmt.Fprintln(a.out, "Available commands: signup, login, exit")
	}
}
