package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Submit(ctx context.Context) error
	ToggleMode(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it. It returns on EOF
// or exit/quit. Handlers report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "cb %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (l)ist, search <term>, add, delete <id>, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, register, mode, submit, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "mode":
			_ = a.ToggleMode(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search", "s":
			_ = a.Search(ctx, args)

		case "add":
			_ = a.Add(ctx)

		case "delete", "rm":
			_ = a.Delete(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}
