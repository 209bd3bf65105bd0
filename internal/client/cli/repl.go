package cli

import (
	"bufio"
	"context"
	"errors"
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
	Reload(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Sort(ctx context.Context, column string) error
	Risk(ctx context.Context, level string) error
	Summary(ctx context.Context) error
	Companies(ctx context.Context) error
	Status(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Sync(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Reanalyze(ctx context.Context) error
	PDF(ctx context.Context) error
	CloseDocument(ctx context.Context) error
}

// messenger is implemented by the service errors that carry a text meant
// for the user.
type messenger interface {
	Message() string
}

func errText(err error) string {
	var m messenger
	if errors.As(err, &m) {
		return m.Message()
	}
	return err.Error()
}

func reportError(err error) {
	if err != nil {
		printlnFn("Error:", errText(err))
	}
}

// runREPL starts a simple read–eval–print loop for the docwatch CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                — show available commands
//	  - login               — authenticate and load documents
//	  - exit | quit         — leave the program
//
//	Logged in:
//	  - (l)ist              — show the current view
//	  - search [term]       — filter the view; no term clears it
//	  - sort <column>       — sort by column, again to reverse
//	  - risk [1|2|3|all]    — open documents by age
//	  - summary             — risk counts
//	  - companies           — list companies
//	  - status              — load and live update state
//	  - show <id>           — open a document
//	  - sync <id>           — refresh the signature status
//	  - delete <id>         — delete a document
//	  - add | edit <id>     — create or change a document
//	  - reanalyze | pdf     — act on the open document
//	  - close               — close the open document
//	  - reload              — load again and reconnect live updates
//	  - logout | exit
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dw %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search, sort, risk, summary, companies, status, show, sync, delete, add, edit, reanalyze, pdf, close, reload, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}
			continue
		}
		if cmd != "login" && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		reportError(dispatch(ctx, a, cmd, args))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	withID := func(usage string, fn func(context.Context, string) error) error {
		if len(args) == 0 {
			printlnFn("Usage:", usage)
			return nil
		}
		return fn(ctx, args[0])
	}

	switch cmd {
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "reload":
		return a.Reload(ctx)
	case "l", "list":
		return a.List(ctx)
	case "search":
		return a.Search(ctx, strings.Join(args, " "))
	case "sort":
		return withID("sort <column>", a.Sort)
	case "risk":
		level := ""
		if len(args) > 0 {
			level = args[0]
		}
		return a.Risk(ctx, level)
	case "summary":
		return a.Summary(ctx)
	case "companies":
		return a.Companies(ctx)
	case "status":
		return a.Status(ctx)
	case "show":
		return withID("show <id>", a.Show)
	case "sync":
		return withID("sync <id>", a.Sync)
	case "delete":
		return withID("delete <id>", a.Delete)
	case "add":
		return a.Add(ctx)
	case "edit":
		return withID("edit <id>", a.Edit)
	case "reanalyze":
		return a.Reanalyze(ctx)
	case "pdf":
		return a.PDF(ctx)
	case "close":
		return a.CloseDocument(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
