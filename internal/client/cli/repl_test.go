package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Login(context.Context) error {
	s.calls = append(s.calls, "login")
	return nil
}

func (s *stubExec) Logout(context.Context) error {
	s.calls = append(s.calls, "logout")
	return nil
}

func (s *stubExec) Whoami(context.Context) error {
	s.calls = append(s.calls, "whoami")
	return nil
}

func (s *stubExec) Tickets(context.Context) error {
	s.calls = append(s.calls, "tickets")
	return nil
}

func (s *stubExec) CreateTicket(context.Context) error {
	s.calls = append(s.calls, "create-ticket")
	return nil
}

func (s *stubExec) ResolveTicket(_ context.Context, ticketID string) error {
	s.calls = append(s.calls, "resolve-ticket:"+ticketID)
	return nil
}

func (s *stubExec) Refresh(context.Context) error {
	s.calls = append(s.calls, "refresh")
	return nil
}

func (s *stubExec) Impersonate(_ context.Context, targetID string) error {
	s.calls = append(s.calls, "impersonate:"+targetID)
	return nil
}

func (s *stubExec) StopImpersonation(context.Context) error {
	s.calls = append(s.calls, "stop-impersonation")
	return nil
}

func (s *stubExec) Audit(context.Context) error {
	s.calls = append(s.calls, "audit")
	return nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var lines []string
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(args...))
		return 0, nil
	}
	return &lines
}

func runScript(t *testing.T, a execIface, script string) {
	t.Helper()
	runREPL(context.Background(), a, func() string { return "" }, bufio.NewScanner(strings.NewReader(script)))
}

func TestREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)
	_ = out

	stub := &stubExec{loggedIn: true}
	runScript(t, stub, "login\nwhoami\ntickets\ncreate-ticket\nresolve-ticket t-1\nrefresh\nimpersonate user-2\nstop-impersonation\naudit\nlogout\nexit\n")

	assert.Equal(t, []string{
		"login",
		"whoami",
		"tickets",
		"create-ticket",
		"resolve-ticket:t-1",
		"refresh",
		"impersonate:user-2",
		"stop-impersonation",
		"audit",
		"logout",
	}, stub.calls)
}

func TestREPL_ResolveTicketWithoutID_PrintsUsage(t *testing.T) {
	out := captureOutput(t)

	stub := &stubExec{loggedIn: true}
	runScript(t, stub, "resolve-ticket\nexit\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(*out, ""), "Usage: resolve-ticket <ticket-id>")
}

func TestREPL_TicketsAlias(t *testing.T) {
	captureOutput(t)

	stub := &stubExec{loggedIn: true}
	runScript(t, stub, "t\nexit\n")

	assert.Equal(t, []string{"tickets"}, stub.calls)
}

func TestREPL_ImpersonateWithoutTarget_PrintsUsage(t *testing.T) {
	out := captureOutput(t)

	stub := &stubExec{loggedIn: true}
	runScript(t, stub, "impersonate\nexit\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(*out, ""), "Usage: impersonate <user-id>")
}

func TestREPL_UnknownCommand(t *testing.T) {
	out := captureOutput(t)

	stub := &stubExec{}
	runScript(t, stub, "frobnicate\nexit\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(*out, ""), "Unknown command:")
}

func TestREPL_Help_ReflectsLoginState(t *testing.T) {
	out := captureOutput(t)

	runScript(t, &stubExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, strings.Join(*out, ""), "login, exit")

	out2 := captureOutput(t)
	runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(*out2, ""), "impersonate <id>")
}

func TestREPL_EmptyLine_Continues(t *testing.T) {
	captureOutput(t)

	stub := &stubExec{}
	runScript(t, stub, "\n\naudit\nexit\n")

	assert.Equal(t, []string{"audit"}, stub.calls)
}

func TestREPL_EOF_Exits(t *testing.T) {
	captureOutput(t)
	runScript(t, &stubExec{}, "")
}
