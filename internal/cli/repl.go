package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pageza/recipe-tracker/backend/internal/client"
)

type command struct {
	usage  string
	authed bool
	run    func(ctx context.Context, args []string) error
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"register":    {"register", false, a.register},
		"login":       {"login", false, a.login},
		"logout":      {"logout", true, a.logout},
		"profile":     {"profile", true, a.profile},
		"search":      {"search <query>", true, a.searchRecipes},
		"ingredients": {"ingredients <query>", true, a.searchIngredients},
		"pantry":      {"pantry", true, a.pantry},
		"add":         {"add <id> <name>", true, a.addIngredient},
		"qty":         {"qty <id> <quantity>", true, a.updateQuantity},
		"rm":          {"rm <id>", true, a.removeIngredient},
		"recipe":      {"recipe <id>", true, a.recipe},
		"bookmark":    {"bookmark <id>", true, a.toggleBookmark},
		"bookmarks":   {"bookmarks", true, a.bookmarks},
		"eat":         {"eat <id>", true, a.eat},
		"today":       {"today", true, a.today},
		"history":     {"history [from] [to]", true, a.history},
	}
}

// Run restores any cached session and reads commands until EOF or "exit".
func (a *App) Run(ctx context.Context) error {
	a.session.Restore()
	cmds := a.commands()
	for {
		fmt.Fprintf(a.out, "tracker (%s)> ", a.session.Status().State)
		line, err := a.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name, args := fields[0], fields[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return nil
		case "help":
			a.help(cmds)
			continue
		}

		cmd, ok := cmds[name]
		if !ok {
			fmt.Fprintln(a.out, "Unknown command:", name)
			continue
		}
		if cmd.authed && !a.loggedIn() {
			fmt.Fprintln(a.out, "Please login first.")
			continue
		}
		if err := cmd.run(ctx, args); err != nil {
			a.report(err)
		}
	}
}

func (a *App) help(cmds map[string]command) {
	fmt.Fprintln(a.out, "Commands:")
	for _, name := range sortedKeys(cmds) {
		c := cmds[name]
		if c.authed == a.loggedIn() || !c.authed {
			fmt.Fprintln(a.out, "  "+c.usage)
		}
	}
	fmt.Fprintln(a.out, "  help\n  exit")
}

// report prints err. An expired token signs the user out.
func (a *App) report(err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		_ = a.session.SignOut()
		fmt.Fprintln(a.out, "Session expired, please login again.")
		return
	}
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintln(a.out, "Error:", apiErr.Message)
		return
	}
	fmt.Fprintln(a.out, "Error:", err)
}
