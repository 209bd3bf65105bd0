package cli

import (
	"bufio"
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Root greets the user, asks for credentials and runs the REPL. Commands
// and prompts share a.reader.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to docwatch CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(a.reader)

	reportError(a.Login(ctx))

	runREPL(ctx, a, a.getStatus, scanner)
}
