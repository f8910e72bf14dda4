package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printfFn are test seams for user-facing output. In tests,
// replace them with stubs.
var printlnFn = fmt.Println
var printfFn = fmt.Printf

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Files(ctx context.Context) error
	Alerts(ctx context.Context) error
	Complete(ctx context.Context) error
	Delete(ctx context.Context) error
	View(ctx context.Context) error
	Upload(ctx context.Context) error
	Report(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the FileTrack CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Every completed line read counts as a user-activity signal (activityFn),
// feeding the session's inactivity watchdog.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, activityFn func(), scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ft> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		activityFn()

		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, (f)iles, alerts, complete, delete, view, upload, report, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "f", "files":
			_ = a.Files(ctx)

		case "alerts":
			_ = a.Alerts(ctx)

		case "complete":
			_ = a.Complete(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "view":
			_ = a.View(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "report":
			_ = a.Report(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
