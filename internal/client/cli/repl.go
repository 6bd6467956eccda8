package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Favorite(ctx context.Context) error
	Gallery(ctx context.Context) error
	Stats(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Vehicle(ctx context.Context, vehicle string) error
	Sort(ctx context.Context, key string) error
	ToggleFavoritesOnly(ctx context.Context) error
	Weather(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the triplog client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands while signed out: help, register, login, exit.
// Commands while signed in: list, add, edit, delete, fav, gallery, stats,
// search [term], vehicle <type|all>, sort <date|distance|favorites>,
// favorites, profile, weather, logout, exit.
//
// Errors returned by command handlers are ignored here; handlers print or
// log their own failures. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("triplog %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, edit, delete, fav, gallery, stats,")
				printlnFn("  search [term], vehicle <type|all>, sort <date|distance|favorites>,")
				printlnFn("  favorites, profile, weather, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "fav":
			_ = a.Favorite(ctx)

		case "gallery":
			_ = a.Gallery(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "search":
			// no argument clears the term
			_ = a.Search(ctx, strings.Join(args, " "))

		case "vehicle":
			if len(args) == 0 {
				printlnFn("Usage: vehicle <car|bike|bus|train|motorcycle|all>")
				continue
			}
			_ = a.Vehicle(ctx, args[0])

		case "sort":
			if len(args) == 0 {
				printlnFn("Usage: sort <date|distance|favorites>")
				continue
			}
			_ = a.Sort(ctx, args[0])

		case "favorites":
			_ = a.ToggleFavoritesOnly(ctx)

		case "weather":
			_ = a.Weather(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
