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
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Tickets(ctx context.Context) error
	CreateTicket(ctx context.Context) error
	ResolveTicket(ctx context.Context, ticketID string) error
	Refresh(ctx context.Context) error
	Impersonate(ctx context.Context, targetID string) error
	StopImpersonation(ctx context.Context) error
	Audit(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("helpdesk %s> ", statusFn()))
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
				printlnFn("Available commands: whoami, tickets, create-ticket, resolve-ticket <id>, refresh, impersonate <id>, stop-impersonation, audit, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "t", "tickets":
			_ = a.Tickets(ctx)

		case "create-ticket":
			_ = a.CreateTicket(ctx)

		case "resolve-ticket":
			if len(args) == 0 {
				printlnFn("Usage: resolve-ticket <ticket-id>")
				continue
			}
			_ = a.ResolveTicket(ctx, args[0])

		case "refresh":
			_ = a.Refresh(ctx)

		case "impersonate":
			if len(args) == 0 {
				printlnFn("Usage: impersonate <user-id>")
				continue
			}
			_ = a.Impersonate(ctx, args[0])

		case "stop-impersonation":
			_ = a.StopImpersonation(ctx)

		case "audit":
			_ = a.Audit(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
