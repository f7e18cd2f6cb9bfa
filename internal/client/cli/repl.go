package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Users(ctx context.Context) error
	Me(ctx context.Context) error
	Inbox(ctx context.Context) error
	Outbox(ctx context.Context) error
	Send(ctx context.Context, to string) error
	Show(ctx context.Context, id string) error
	Read(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit". Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("msg%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: users, me, inbox, outbox, send [user], show <id>, read <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "users":
			cmdErr = a.Users(ctx)

		case "me":
			cmdErr = a.Me(ctx)

		case "inbox":
			cmdErr = a.Inbox(ctx)

		case "outbox":
			cmdErr = a.Outbox(ctx)

		case "send":
			to := ""
			if len(args) > 0 {
				to = args[0]
			}
			cmdErr = a.Send(ctx, to)

		case "show", "read":
			if len(args) == 0 {
				printlnFn("Usage:", cmd, "<id>")
				continue
			}
			if cmd == "show" {
				cmdErr = a.Show(ctx, args[0])
			} else {
				cmdErr = a.Read(ctx, args[0])
			}

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
